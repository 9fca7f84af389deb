// Package commands implements the sqlbridge CLI commands. Every command
// opens its own session, does one unit of work and disconnects.
package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
)

// connect opens a session or explains why it could not.
func connect(ctx context.Context, cfg mssql.Config, log zerolog.Logger) (*mssql.Session, error) {
	sess := mssql.NewSession(cfg, log)
	if err := sess.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	return sess, nil
}

// formatValue renders one result cell for the console.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
