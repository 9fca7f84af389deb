package source

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "B1", "Age")
	f.SetCellValue("Sheet1", "C1", "Notes")

	f.SetCellValue("Sheet1", "A2", "Ann")
	f.SetCellValue("Sheet1", "B2", 30)
	f.SetCellValue("Sheet1", "C2", "x")

	// Bo без возраста, строка 4 совсем пустая.
	f.SetCellValue("Sheet1", "A3", "Bo")
	f.SetCellValue("Sheet1", "C3", "y")

	f.SetCellValue("Sheet1", "A5", "Cy")
	f.SetCellValue("Sheet1", "B5", 41)
	f.SetCellValue("Sheet1", "C5", "z")

	path := filepath.Join(t.TempDir(), "people.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTestWorkbook(t)

	rs, err := ReadXLSX(path, "")
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}

	wantFields := []string{"Name", "Age", "Notes"}
	if len(rs.Fields) != 3 {
		t.Fatalf("Fields = %v, want %v", rs.Fields, wantFields)
	}
	for i, f := range wantFields {
		if rs.Fields[i] != f {
			t.Errorf("Fields[%d] = %q, want %q", i, rs.Fields[i], f)
		}
	}

	if len(rs.Records) != 3 {
		t.Fatalf("Records = %d, want 3 (empty row dropped)", len(rs.Records))
	}
	if rs.Records[0]["Name"] != "Ann" || rs.Records[0]["Age"] != "30" {
		t.Errorf("Record 0 = %v, want Ann/30", rs.Records[0])
	}
	if rs.Records[1]["Age"] != nil {
		t.Errorf("Bo's Age = %v, want nil for the empty cell", rs.Records[1]["Age"])
	}
	if rs.Records[2]["Name"] != "Cy" {
		t.Errorf("Record 2 = %v, want Cy", rs.Records[2])
	}

	if len(rs.Fingerprint) != 32 {
		t.Errorf("Fingerprint = %q, want 32 hex chars", rs.Fingerprint)
	}
}

func TestReadXLSX_NamedSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	f.SetCellValue("Data", "A1", "Code")
	f.SetCellValue("Data", "A2", "X1")

	path := filepath.Join(t.TempDir(), "multi.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}

	rs, err := ReadXLSX(path, "Data")
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if len(rs.Records) != 1 || rs.Records[0]["Code"] != "X1" {
		t.Errorf("Records = %v, want one record from sheet Data", rs.Records)
	}
}

func TestReadXLSX_UnknownSheetListsAvailable(t *testing.T) {
	path := writeTestWorkbook(t)

	_, err := ReadXLSX(path, "Missing")
	if err == nil {
		t.Fatal("Expected an error for an unknown sheet")
	}
	if !strings.Contains(err.Error(), "Sheet1") {
		t.Errorf("Error should list available sheets, got: %v", err)
	}
}

func TestReadXLSX_MissingFile(t *testing.T) {
	if _, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), ""); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestSheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}

	path := filepath.Join(t.TempDir(), "multi.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}

	sheets, err := Sheets(path)
	if err != nil {
		t.Fatalf("Sheets() error = %v", err)
	}
	if len(sheets) != 2 || sheets[0] != "Sheet1" || sheets[1] != "Data" {
		t.Errorf("Sheets = %v, want [Sheet1 Data]", sheets)
	}
}

func TestRecordSet_AllNull(t *testing.T) {
	tests := []struct {
		name     string
		rs       RecordSet
		expected bool
	}{
		{
			name:     "Empty set",
			rs:       RecordSet{Fields: []string{"Name"}},
			expected: true,
		},
		{
			name: "Only nil values",
			rs: RecordSet{
				Fields:  []string{"Name", "Age"},
				Records: []map[string]any{{"Name": nil, "Age": nil}},
			},
			expected: true,
		},
		{
			name: "One real value",
			rs: RecordSet{
				Fields:  []string{"Name", "Age"},
				Records: []map[string]any{{"Name": nil, "Age": nil}, {"Name": "Ann", "Age": nil}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rs.AllNull(); got != tt.expected {
				t.Errorf("AllNull() = %v, want %v", got, tt.expected)
			}
		})
	}
}
