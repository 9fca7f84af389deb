package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSource_FormatDispatch(t *testing.T) {
	dir := t.TempDir()
	csvBody := "Name,Age\nAnn,30\n"

	writeFile := func(name string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(csvBody), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name     string
		fileName string
	}{
		{name: "CSV extension", fileName: "people.csv"},
		{name: "TXT extension", fileName: "people.txt"},
		{name: "Uppercase extension", fileName: "PEOPLE.CSV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := readSource(writeFile(tt.fileName), "", ',')
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rs.Records) != 1 {
				t.Errorf("expected 1 record, got %d", len(rs.Records))
			}
			if rs.Records[0]["Name"] != "Ann" {
				t.Errorf("unexpected record: %+v", rs.Records[0])
			}
		})
	}
}

func TestReadSource_UnsupportedFormat(t *testing.T) {
	_, err := readSource("people.parquet", "", ',')
	if err == nil {
		t.Fatal("expected error for an unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported source format") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestOneLine(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected string
	}{
		{
			name:     "Short text unchanged",
			text:     "SELECT 1",
			max:      60,
			expected: "SELECT 1",
		},
		{
			name:     "Whitespace collapsed",
			text:     "SELECT *\n  FROM dbo.Person\n  WHERE age > 18",
			max:      60,
			expected: "SELECT * FROM dbo.Person WHERE age > 18",
		},
		{
			name:     "Long text truncated",
			text:     "SELECT name, age, created FROM dbo.Person ORDER BY name",
			max:      20,
			expected: "SELECT name, age,...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := oneLine(tt.text, tt.max)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
			if len(result) > tt.max {
				t.Errorf("result longer than %d characters: %q", tt.max, result)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "Nil becomes NULL", value: nil, expected: "NULL"},
		{name: "String", value: "Ann", expected: "Ann"},
		{name: "Integer", value: int64(30), expected: "30"},
		{name: "Float", value: 1.5, expected: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := formatValue(tt.value); result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}
