// Package query executes raw T-SQL and keeps a small library of named
// queries for repeated use.
package query

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
	"github.com/queuebridge/sqlbridge/pkg/security"
)

// Result is the fully fetched outcome of one query. Rows are read eagerly,
// the result stays valid after the connection moves on.
type Result struct {
	Columns []string
	Rows    [][]any
}

func (r *Result) RowCount() int {
	return len(r.Rows)
}

// ExecError wraps a driver failure so the caller always sees which database
// the query ran against along with the driver message.
type ExecError struct {
	Database string
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("query failed in %s: %v", e.Database, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Runner executes raw query text over one session.
type Runner struct {
	conn      mssql.Conn
	validator *security.Validator
	log       zerolog.Logger
}

// New creates a runner. A nil validator disables the safe mode guard and
// passes query text through untouched.
func New(conn mssql.Conn, validator *security.Validator, log zerolog.Logger) *Runner {
	return &Runner{
		conn:      conn,
		validator: validator,
		log:       log.With().Str("component", "query").Logger(),
	}
}

// Execute runs text against database and fetches every row into memory.
// The query goes to the server exactly as written, no parameters, no
// rewriting. Transactions are left to the server's defaults.
func (r *Runner) Execute(ctx context.Context, database, text string) (*Result, error) {
	if r.validator != nil {
		if err := r.validator.Validate(text); err != nil {
			return nil, err
		}
	}
	if err := r.conn.UseDatabase(ctx, database); err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, text)
	if err != nil {
		return nil, &ExecError{Database: database, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ExecError{Database: database, Err: err}
	}

	result := &Result{Columns: columns}
	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for rows.Next() {
		for i := range columns {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, &ExecError{Database: database, Err: err}
		}

		row := make([]any, len(columns))
		for i, val := range values {
			// Драйверы переиспользуют []byte буферы, копируем в string.
			if b, ok := val.([]byte); ok {
				row[i] = string(b)
				continue
			}
			row[i] = val
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecError{Database: database, Err: err}
	}

	r.log.Debug().
		Str("database", database).
		Int("rows", result.RowCount()).
		Msg("Query executed")
	return result, nil
}
