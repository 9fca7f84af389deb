package source

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheets returns the sheet names of a workbook in workbook order.
func Sheets(filePath string) ([]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadXLSX reads one sheet of an Excel workbook. The first row is the
// header, fully empty rows are dropped. An empty sheetName selects the
// first sheet of the workbook.
func ReadXLSX(filePath string, sheetName string) (*RecordSet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q (available: %s): %w",
			sheetName, strings.Join(f.GetSheetList(), ", "), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}

	fields := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		fields = append(fields, strings.TrimSpace(h))
	}

	rs := &RecordSet{Fields: fields}
	for _, row := range rows[1:] {
		if allEmpty(row) {
			continue
		}
		rs.Records = append(rs.Records, toRecord(fields, row))
	}

	fp, err := Fingerprint(filePath)
	if err != nil {
		return nil, err
	}
	rs.Fingerprint = fp
	return rs, nil
}
