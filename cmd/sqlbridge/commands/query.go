package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
	"github.com/queuebridge/sqlbridge/pkg/query"
	"github.com/queuebridge/sqlbridge/pkg/security"
)

// QueryOptions holds options for query execution
type QueryOptions struct {
	Database string
	Text     string // raw text, exclusive with Name
	Name     string // named query from the config
	Queries  map[string]string
	Unsafe   bool
}

// RunQuery executes raw or named query text and prints the result.
func RunQuery(ctx context.Context, cfg mssql.Config, log zerolog.Logger, opts QueryOptions) error {
	if opts.Database == "" {
		return fmt.Errorf("database is required (-db or config)")
	}

	text := opts.Text
	if opts.Name != "" {
		lib := query.NewLibrary()
		for name, q := range opts.Queries {
			if err := lib.Add(name, q); err != nil {
				return fmt.Errorf("bad config query: %w", err)
			}
		}
		stored, ok := lib.Get(opts.Name)
		if !ok {
			return fmt.Errorf("%w: %q (have: %s)", query.ErrUnknownQuery, opts.Name,
				strings.Join(lib.Names(), ", "))
		}
		text = stored
	}

	if opts.Unsafe {
		fmt.Printf("⚠ Unsafe mode: the read-only guard is off (user: %s)\n", security.CurrentUser())
		log.Warn().Str("os_user", security.CurrentUser()).Msg("Unsafe query mode enabled")
	}

	sess, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	runner := query.New(sess, security.NewValidator(!opts.Unsafe), log)
	result, err := runner.Execute(ctx, opts.Database, text)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// ListQueries prints the named queries from the config.
func ListQueries(queries map[string]string) error {
	if len(queries) == 0 {
		fmt.Println("Config has no named queries")
		return nil
	}

	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Named queries (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %-20s %s\n", name, oneLine(queries[name], 60))
	}
	return nil
}

func printResult(result *query.Result) {
	if len(result.Columns) > 0 {
		fmt.Println(strings.Join(result.Columns, " | "))
		fmt.Println(strings.Repeat("-", len(strings.Join(result.Columns, " | "))))
	}
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Println(strings.Join(cells, " | "))
	}
	fmt.Printf("(%d row(s))\n", result.RowCount())
}

// oneLine collapses query text for the listing.
func oneLine(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > max {
		return text[:max-3] + "..."
	}
	return text
}
