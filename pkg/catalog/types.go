package catalog

// TableDescriptor is a live snapshot of one table's shape, rebuilt from the
// catalog views on every request. Descriptors are never cached: the table may
// be altered between calls.
type TableDescriptor struct {
	Schema      string
	Name        string
	Columns     []ColumnDescriptor
	PrimaryKeys map[string]struct{}
}

// ColumnDescriptor describes one column as INFORMATION_SCHEMA reports it.
type ColumnDescriptor struct {
	Name     string
	SQLType  string
	Nullable bool
	Default  string // declared default expression, empty when none
}

// Qualified returns the "schema.name" form of the table identifier.
func (d TableDescriptor) Qualified() string {
	return d.Schema + "." + d.Name
}

// HasColumn reports whether name matches one of the descriptor's columns.
// Matching is exact: callers are expected to offer the descriptor's own
// column names, not free text.
func (d TableDescriptor) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// ColumnNames returns the column names in declared order.
func (d TableDescriptor) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}
