package mssql

import "testing"

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain name", input: "Person", expected: "[Person]"},
		{name: "Name with space", input: "Order Lines", expected: "[Order Lines]"},
		{name: "Closing bracket doubled", input: "odd]name", expected: "[odd]]name]"},
		{name: "Opening bracket kept", input: "odd[name", expected: "[odd[name]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteIdentifier(tt.input); got != tt.expected {
				t.Errorf("QuoteIdentifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSchema string
		wantTable  string
	}{
		{name: "Qualified", input: "dbo.Person", wantSchema: "dbo", wantTable: "Person"},
		{name: "Custom schema", input: "sales.Orders", wantSchema: "sales", wantTable: "Orders"},
		{name: "Unqualified defaults to dbo", input: "Person", wantSchema: "dbo", wantTable: "Person"},
		{name: "Split on first dot only", input: "a.b.c", wantSchema: "a", wantTable: "b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, table := SplitQualified(tt.input)
			if schema != tt.wantSchema || table != tt.wantTable {
				t.Errorf("SplitQualified(%q) = (%q, %q), want (%q, %q)",
					tt.input, schema, table, tt.wantSchema, tt.wantTable)
			}
		})
	}
}

func TestQualifyTable(t *testing.T) {
	if got := QualifyTable("dbo.Person"); got != "[dbo].[Person]" {
		t.Errorf("QualifyTable(dbo.Person) = %q, want [dbo].[Person]", got)
	}
	if got := QualifyTable("Person"); got != "[dbo].[Person]" {
		t.Errorf("QualifyTable(Person) = %q, want [dbo].[Person]", got)
	}
}
