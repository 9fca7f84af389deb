// Package loader writes batches of source records into SQL Server tables.
//
// A batch is all or nothing on the insert path: one transaction, one
// prepared statement text, explicit rollback on the first failed row. The
// update path differs on purpose: rows without an identifier value are
// skipped and reported, every other error still aborts the transaction.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mapping"
	"github.com/queuebridge/sqlbridge/pkg/mssql"
)

// ErrNothingToMap reports a resolved mapping with no usable columns. The
// batch is refused before any connection work happens.
var ErrNothingToMap = errors.New("mapping resolved to no columns, nothing to load")

// Record is one source row, field name to value. A missing field and an
// explicit nil both bind SQL NULL.
type Record map[string]any

// RowFailure describes one record the batch could not apply.
type RowFailure struct {
	Index  int // 1-based position in the batch
	Record Record
	Cause  string
}

// BatchResult is the outcome of a batch.
//
// Attempted counts every record handed in. Succeeded counts rows that
// executed without error. On an abort those rows are rolled back, the
// count stays so the caller can see how far the batch got; the returned
// error is what says nothing was committed.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failures  []RowFailure
}

// ProgressFunc receives the 1-based index of each successfully applied row,
// synchronously, before the next row is attempted.
type ProgressFunc func(row int)

// Loader executes insert and update batches over one session.
type Loader struct {
	conn mssql.Conn
	log  zerolog.Logger
}

func New(conn mssql.Conn, log zerolog.Logger) *Loader {
	return &Loader{
		conn: conn,
		log:  log.With().Str("component", "loader").Logger(),
	}
}

// ========== INSERT ==========

// InsertBatch inserts records into table within database. The INSERT text
// is built once from the resolved pairs, values bind per row in pair order.
// The first row error rolls the whole transaction back and is returned
// together with the result describing the failed row.
func (l *Loader) InsertBatch(ctx context.Context, database, table string, pairs []mapping.Pair, records []Record, onProgress ProgressFunc) (BatchResult, error) {
	result := BatchResult{Attempted: len(records)}
	if len(pairs) == 0 {
		return result, ErrNothingToMap
	}
	if err := l.conn.UseDatabase(ctx, database); err != nil {
		return result, err
	}

	insertSQL := buildInsert(table, mapping.Columns(pairs))
	l.log.Info().
		Str("database", database).
		Str("table", table).
		Int("rows", len(records)).
		Int("columns", len(pairs)).
		Msg("Starting insert batch")

	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}

	for i, rec := range records {
		args := make([]any, len(pairs))
		for j, p := range pairs {
			args[j] = rec[p.Field]
		}
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			tx.Rollback()
			rowErr := fmt.Errorf("insert row %d: %w", i+1, err)
			result.Failures = append(result.Failures, RowFailure{
				Index:  i + 1,
				Record: rec,
				Cause:  err.Error(),
			})
			l.log.Error().Err(err).Int("row", i+1).Int("applied", result.Succeeded).
				Msg("Insert batch aborted, transaction rolled back")
			return result, rowErr
		}
		result.Succeeded++
		if onProgress != nil {
			onProgress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit: %w", err)
	}
	l.log.Info().Int("rows", result.Succeeded).Msg("Insert batch committed")
	return result, nil
}

// ========== UPDATE ==========

// UpdateBatch applies records to existing rows, matching on the identifier
// column. The SET list is every resolved pair except the identifier, the
// identifier value binds last as the WHERE argument.
//
// A record whose identifier value is absent or nil is skipped and recorded
// as a failure, the batch keeps going and the skip produces no progress
// call. Any database error still aborts and rolls back the whole batch.
func (l *Loader) UpdateBatch(ctx context.Context, database, table string, pairs []mapping.Pair, identifier string, records []Record, onProgress ProgressFunc) (BatchResult, error) {
	result := BatchResult{Attempted: len(records)}

	idField := ""
	setPairs := make([]mapping.Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Column == identifier {
			idField = p.Field
			continue
		}
		setPairs = append(setPairs, p)
	}
	if idField == "" {
		return result, &mapping.MissingIdentifierError{Identifier: identifier}
	}
	if len(setPairs) == 0 {
		return result, ErrNothingToMap
	}
	if err := l.conn.UseDatabase(ctx, database); err != nil {
		return result, err
	}

	updateSQL := buildUpdate(table, mapping.Columns(setPairs), identifier)
	l.log.Info().
		Str("database", database).
		Str("table", table).
		Int("rows", len(records)).
		Str("identifier", identifier).
		Msg("Starting update batch")

	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}

	for i, rec := range records {
		idValue, ok := rec[idField]
		if !ok || idValue == nil {
			result.Failures = append(result.Failures, RowFailure{
				Index:  i + 1,
				Record: rec,
				Cause:  "missing identifier",
			})
			continue
		}

		args := make([]any, 0, len(setPairs)+1)
		for _, p := range setPairs {
			args = append(args, rec[p.Field])
		}
		args = append(args, idValue)

		if _, err := tx.ExecContext(ctx, updateSQL, args...); err != nil {
			tx.Rollback()
			rowErr := fmt.Errorf("update row %d: %w", i+1, err)
			result.Failures = append(result.Failures, RowFailure{
				Index:  i + 1,
				Record: rec,
				Cause:  err.Error(),
			})
			l.log.Error().Err(err).Int("row", i+1).Int("applied", result.Succeeded).
				Msg("Update batch aborted, transaction rolled back")
			return result, rowErr
		}
		result.Succeeded++
		if onProgress != nil {
			onProgress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit: %w", err)
	}
	l.log.Info().
		Int("rows", result.Succeeded).
		Int("skipped", len(result.Failures)).
		Msg("Update batch committed")
	return result, nil
}

// ========== SQL ==========

func buildInsert(table string, columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = mssql.QuoteIdentifier(c)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		mssql.QualifyTable(table),
		strings.Join(quoted, ", "),
		strings.Join(marks, ", "))
}

func buildUpdate(table string, setColumns []string, identifier string) string {
	sets := make([]string, len(setColumns))
	for i, c := range setColumns {
		sets[i] = mssql.QuoteIdentifier(c) + " = ?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		mssql.QualifyTable(table),
		strings.Join(sets, ", "),
		mssql.QuoteIdentifier(identifier))
}
