package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	c := filepath.Join(dir, "c.csv")

	os.WriteFile(a, []byte("Name,Age\nAnn,30\n"), 0o644)
	os.WriteFile(b, []byte("Name,Age\nAnn,30\n"), 0o644)
	os.WriteFile(c, []byte("Name,Age\nBo,25\n"), 0o644)

	fpA, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if len(fpA) != 32 {
		t.Errorf("Fingerprint = %q, want 32 hex chars", fpA)
	}

	fpB, _ := Fingerprint(b)
	if fpA != fpB {
		t.Errorf("Same content must hash equal: %s != %s", fpA, fpB)
	}

	fpC, _ := Fingerprint(c)
	if fpA == fpC {
		t.Error("Different content must hash different")
	}
}

func TestFingerprint_MissingFile(t *testing.T) {
	if _, err := Fingerprint(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
