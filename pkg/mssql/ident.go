package mssql

import "strings"

// QuoteIdentifier wraps an identifier in brackets, doubling any closing
// bracket so the result is always one well-formed delimited identifier.
func QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// SplitQualified splits a "schema.table" identifier on the first dot.
// An unqualified name gets the dbo schema. Table names that themselves
// contain a dot are not supported; the first dot always separates.
func SplitQualified(qualified string) (schema, name string) {
	if i := strings.Index(qualified, "."); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	return "dbo", qualified
}

// QualifyTable renders a "schema.table" identifier as [schema].[table].
func QualifyTable(qualified string) string {
	schema, name := SplitQualified(qualified)
	return QuoteIdentifier(schema) + "." + QuoteIdentifier(name)
}
