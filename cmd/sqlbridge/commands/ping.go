package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
	"github.com/queuebridge/sqlbridge/pkg/security"
)

// Ping connects to the server and prints what it found.
func Ping(ctx context.Context, cfg mssql.Config, log zerolog.Logger) error {
	if cfg.Auth == mssql.AuthWindows {
		fmt.Printf("Connecting to %s as %s (windows auth)...\n", cfg.Server, security.CurrentUser())
	} else {
		fmt.Printf("Connecting to %s as %s...\n", cfg.Server, cfg.User)
	}

	started := time.Now()
	sess, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Printf("✓ Connected in %s, active database: %s\n",
		time.Since(started).Round(time.Millisecond), activeOrDefault(sess))

	version, err := sess.ServerVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read server version: %w", err)
	}
	// @@VERSION is multiline, the first line names the product.
	if idx := strings.IndexByte(version, '\n'); idx > 0 {
		version = strings.TrimSpace(version[:idx])
	}
	fmt.Printf("✓ %s\n", version)
	return nil
}

func activeOrDefault(sess *mssql.Session) string {
	if db := sess.ActiveDatabase(); db != "" {
		return db
	}
	return "(server default)"
}
