package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/catalog"
	"github.com/queuebridge/sqlbridge/pkg/loader"
	"github.com/queuebridge/sqlbridge/pkg/mapping"
	"github.com/queuebridge/sqlbridge/pkg/mssql"
	"github.com/queuebridge/sqlbridge/pkg/resultlog"
	"github.com/queuebridge/sqlbridge/pkg/source"
)

// maxReportedFailures caps the per-row failure list on the console, the
// full list always goes to the log.
const maxReportedFailures = 10

// LoadOptions holds everything one load or update run needs.
type LoadOptions struct {
	FilePath   string
	Server     string // host, for the result log only
	Database   string
	Table      string
	Sheet      string
	Delimiter  rune
	Entries    []mapping.Entry
	Sentinel   string
	Update     bool
	Identifier string
	Job        string
	S3         source.S3Config
	ResultLog  *resultlog.Config // nil disables publishing
}

// Load reads a source file and applies it to the target table, as an
// insert batch or, with Update set, as an update batch matched on the
// identifier column.
func Load(ctx context.Context, cfg mssql.Config, log zerolog.Logger, opts LoadOptions) error {
	if opts.Table == "" {
		return fmt.Errorf("target table is required (-table)")
	}
	if opts.Database == "" {
		return fmt.Errorf("target database is required (-db or config)")
	}
	if len(opts.Entries) == 0 {
		return fmt.Errorf("config has no mapping section, nothing to load")
	}
	if opts.Update && opts.Identifier == "" {
		return fmt.Errorf("update mode needs an identifier column (-identifier or config)")
	}

	// Fetch remote input first, everything below works on a local file.
	path := opts.FilePath
	if source.IsS3URI(path) {
		fmt.Printf("Fetching %s...\n", path)
		local, err := source.FetchS3(ctx, path, opts.S3, "")
		if err != nil {
			return err
		}
		defer os.Remove(local)
		fmt.Printf("✓ Fetched to %s\n", local)
		path = local
	}

	rs, err := readSource(path, opts.Sheet, opts.Delimiter)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Read %d record(s), %d field(s) from '%s'\n",
		len(rs.Records), len(rs.Fields), filepath.Base(path))
	fmt.Printf("✓ Source fingerprint: %s\n", rs.Fingerprint)
	if rs.AllNull() {
		return fmt.Errorf("source records contain only NULL values or are empty")
	}

	sess, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	desc := catalog.New(sess, log).DescribeTable(ctx, opts.Database, opts.Table)
	if len(desc.Columns) == 0 {
		return fmt.Errorf("table %s has no visible columns in %s (missing table or no access)",
			desc.Qualified(), opts.Database)
	}

	resolver := mapping.New(log)
	if opts.Sentinel != "" {
		resolver.Sentinel = opts.Sentinel
	}
	var resolved mapping.Resolved
	if opts.Update {
		resolved, err = resolver.ResolveForUpdate(opts.Entries, desc, opts.Identifier)
		if err != nil {
			return err
		}
	} else {
		resolved = resolver.Resolve(opts.Entries, desc)
	}
	for _, d := range resolved.Diagnostics {
		fmt.Printf("⚠ %s\n", d)
	}
	pairs := resolved.Pairs
	if len(pairs) == 0 {
		return fmt.Errorf("mapping resolved to no usable columns, nothing to do")
	}
	fmt.Printf("✓ Mapped %d column(s): %s\n", len(pairs), strings.Join(mapping.Columns(pairs), ", "))

	records := make([]loader.Record, len(rs.Records))
	for i, m := range rs.Records {
		records[i] = loader.Record(m)
	}

	mode, label := "insert", "Insert"
	if opts.Update {
		mode, label = "update", "Update"
	}
	fmt.Printf("Running %s batch into %s.%s...\n", mode, opts.Database, desc.Qualified())

	started := time.Now()
	total := len(records)
	progress := func(row int) {
		fmt.Printf("\r  %d/%d row(s)", row, total)
	}

	l := loader.New(sess, log)
	var result loader.BatchResult
	var batchErr error
	if opts.Update {
		result, batchErr = l.UpdateBatch(ctx, opts.Database, opts.Table, pairs, opts.Identifier, records, progress)
	} else {
		result, batchErr = l.InsertBatch(ctx, opts.Database, opts.Table, pairs, records, progress)
	}
	finished := time.Now()
	fmt.Println()

	publishResult(ctx, log, opts, rs.Fingerprint, mode, started, finished, result, batchErr)

	for i, f := range result.Failures {
		if i == maxReportedFailures {
			fmt.Printf("  ... and %d more (see the log)\n", len(result.Failures)-maxReportedFailures)
			break
		}
		fmt.Printf("  row %d: %s\n", f.Index, f.Cause)
	}

	if batchErr != nil {
		return fmt.Errorf("%s batch aborted, transaction rolled back: %w", mode, batchErr)
	}

	fmt.Printf("✓ %s complete: %d/%d row(s) in %s\n",
		label, result.Succeeded, result.Attempted, finished.Sub(started).Round(time.Millisecond))
	if len(result.Failures) > 0 {
		fmt.Printf("  %d row(s) skipped\n", len(result.Failures))
	}
	return nil
}

// publishResult sends the outcome to the result log when configured.
// Publish failures are logged and never fail the load itself.
func publishResult(ctx context.Context, log zerolog.Logger, opts LoadOptions, fingerprint, mode string,
	started, finished time.Time, result loader.BatchResult, batchErr error) {

	if opts.ResultLog == nil || opts.ResultLog.Address == "" {
		return
	}

	job := opts.Job
	if job == "" {
		job = opts.Table
	}

	pub := resultlog.NewPublisher(*opts.ResultLog)
	defer pub.Close()

	err := pub.Publish(ctx, resultlog.LoadResult{
		Job:         job,
		Server:      opts.Server,
		Database:    opts.Database,
		Table:       opts.Table,
		Mode:        mode,
		StartedAt:   started,
		FinishedAt:  finished,
		Attempted:   result.Attempted,
		Succeeded:   result.Succeeded,
		Failed:      len(result.Failures),
		SourceFile:  opts.FilePath,
		Fingerprint: fingerprint,
	}, batchErr)
	if err != nil {
		log.Warn().Err(err).Str("job", job).Msg("Result log publish failed")
		return
	}
	log.Info().Str("job", job).Msg("Result published")
}

// readSource picks the reader by file extension.
func readSource(path, sheet string, delimiter rune) (*source.RecordSet, error) {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm"):
		return source.ReadXLSX(path, sheet)
	case strings.HasSuffix(name, ".csv"), strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".zst"):
		return source.ReadCSV(path, delimiter)
	default:
		return nil, fmt.Errorf("unsupported source format: %s (expected .xlsx, .csv, .txt or .zst)", filepath.Base(path))
	}
}
