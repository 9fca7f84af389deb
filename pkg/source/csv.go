package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ReadCSV reads a delimited text file. A .zst suffix switches on
// transparent zstd decompression. A zero delimiter means comma.
func ReadCSV(filePath string, delimiter rune) (*RecordSet, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(filePath, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to init zstd reader: %w", err)
		}
		defer dec.Close()
		reader = dec
	}

	cr := csv.NewReader(reader)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	// Строки могут быть рваные, добиваем их по заголовку сами.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file %s has no header row", filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := make([]string, 0, len(header))
	for _, h := range header {
		fields = append(fields, strings.TrimSpace(h))
	}

	rs := &RecordSet{Fields: fields}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
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
