// Package source reads batch input files into record sets.
//
// Supported inputs are Excel workbooks, CSV files, zstd compressed CSV and
// any of those fetched from S3 first. Values travel as strings, the server
// converts them by column type at insert time. An empty cell becomes nil
// and binds SQL NULL.
package source

// RecordSet is the parsed content of one input file. Fields come from the
// header row in file order, every record maps field name to value.
type RecordSet struct {
	Fields      []string
	Records     []map[string]any
	Fingerprint string
}

// AllNull reports whether the set carries no loadable data: no records at
// all, or records whose every value is nil. Callers refuse such input
// before connecting anywhere.
func (rs *RecordSet) AllNull() bool {
	for _, rec := range rs.Records {
		for _, v := range rec {
			if v != nil {
				return false
			}
		}
	}
	return true
}

// allEmpty reports whether every value of a raw row is blank. Such rows
// are noise from spreadsheet editors and are dropped on read.
func allEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// toRecord zips a raw row with the header. Short rows pad with nil, extra
// cells beyond the header are ignored.
func toRecord(fields []string, row []string) map[string]any {
	rec := make(map[string]any, len(fields))
	for i, f := range fields {
		if i >= len(row) || row[i] == "" {
			rec[f] = nil
			continue
		}
		rec[f] = row[i]
	}
	return rec
}
