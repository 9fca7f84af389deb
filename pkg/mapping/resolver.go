// Package mapping resolves user supplied field-to-column mappings against a
// described table before a load runs.
//
// A raw mapping is an ordered list of entries pairing a source field name
// with a target column name. Resolution drops entries marked with the
// sentinel value, drops entries whose target column does not exist in the
// table, and collapses duplicates so the last entry wins. Every dropped or
// overridden entry is reported as a diagnostic, never as an error: a
// mapping that resolves to nothing is a valid outcome and the caller
// decides whether to refuse it.
package mapping

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/catalog"
)

// DefaultSentinel marks a source field that must not be imported.
const DefaultSentinel = "Do not import"

// Entry is one line of a raw mapping: source field to target column.
// Order matters, later entries override earlier ones.
type Entry struct {
	Field  string
	Column string
}

// Pair is a resolved mapping line. Its column is known to exist in the
// target table.
type Pair struct {
	Field  string
	Column string
}

// Resolved is the outcome of one resolution: the usable pairs in entry
// order plus a human-readable diagnostic per dropped or overridden entry.
// Empty Pairs with a filled Diagnostics list is a normal result.
type Resolved struct {
	Pairs       []Pair
	Diagnostics []string
}

// MissingIdentifierError reports an update mapping that does not cover the
// identifier column, so no WHERE clause could be built from it.
type MissingIdentifierError struct {
	Identifier string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("identifier column %q is not among the mapped columns", e.Identifier)
}

// Resolver validates raw mappings against table metadata.
type Resolver struct {
	// Sentinel is the column value that excludes a field from the load.
	Sentinel string

	log zerolog.Logger
}

func New(log zerolog.Logger) *Resolver {
	return &Resolver{
		Sentinel: DefaultSentinel,
		log:      log.With().Str("component", "mapping").Logger(),
	}
}

// Resolve filters raw entries down to pairs usable for an insert.
//
// Sentinel entries are dropped silently. Entries naming a column the table
// does not have are dropped with a diagnostic. When two surviving entries
// share a field or a column, the later one wins and the earlier is dropped
// with a diagnostic. Column matching is exact, no case folding.
func (r *Resolver) Resolve(entries []Entry, table catalog.TableDescriptor) Resolved {
	res := Resolved{Pairs: make([]Pair, 0, len(entries))}

	for _, e := range entries {
		if e.Column == r.Sentinel {
			continue
		}
		if !table.HasColumn(e.Column) {
			r.diagnose(&res, table,
				fmt.Sprintf("column %q mapped from field %q not found in table, entry dropped", e.Column, e.Field))
			continue
		}
		r.override(&res, e, table)
	}

	return res
}

// ResolveForUpdate resolves entries for an update run. The identifier
// column must be among the resolved targets, it anchors the WHERE clause.
func (r *Resolver) ResolveForUpdate(entries []Entry, table catalog.TableDescriptor, identifier string) (Resolved, error) {
	res := r.Resolve(entries, table)
	for _, p := range res.Pairs {
		if p.Column == identifier {
			return res, nil
		}
	}
	return Resolved{}, &MissingIdentifierError{Identifier: identifier}
}

// override appends e to the resolved pairs, evicting any earlier pair that
// shares its field or column.
func (r *Resolver) override(res *Resolved, e Entry, table catalog.TableDescriptor) {
	kept := res.Pairs[:0]
	for _, p := range res.Pairs {
		if p.Field == e.Field || p.Column == e.Column {
			r.diagnose(res, table,
				fmt.Sprintf("field %q mapped to %q overridden by a later entry", p.Field, p.Column))
			continue
		}
		kept = append(kept, p)
	}
	res.Pairs = append(kept, Pair{Field: e.Field, Column: e.Column})
}

// diagnose records one finding in the result and mirrors it to the log.
func (r *Resolver) diagnose(res *Resolved, table catalog.TableDescriptor, msg string) {
	res.Diagnostics = append(res.Diagnostics, msg)
	r.log.Warn().Str("table", table.Qualified()).Msg("Mapping: " + msg)
}

// Columns returns the target columns of pairs in order.
func Columns(pairs []Pair) []string {
	cols := make([]string, len(pairs))
	for i, p := range pairs {
		cols[i] = p.Column
	}
	return cols
}
