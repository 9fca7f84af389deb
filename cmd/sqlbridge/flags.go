package main

import "flag"

// Flags holds all command-line flags
type Flags struct {
	// Commands
	Ping        *bool
	Databases   *bool
	Tables      *bool
	Describe    *string
	Load        *string // Source file for insert batch (xlsx, csv, csv.zst, s3://)
	Update      *string // Source file for update batch
	Query       *string // Raw query text
	Run         *string // Named query from config
	ListQueries *bool

	// Options
	Config     *string
	Database   *string // Overrides the database from config for one command
	Table      *string
	Sheet      *string
	Delimiter  *string
	Sentinel   *string
	Identifier *string
	Job        *string // Result log job name (default: target table)
	Unsafe     *bool

	// Config Creation
	CreateConfig *bool

	// Misc
	Version   *bool
	Help      *bool
	ShortHelp *bool
}

// ParseFlags defines and parses all command-line flags
func ParseFlags() *Flags {
	f := &Flags{}

	// Commands
	f.Ping = flag.Bool("ping", false, "Connect to the server and print its version")
	f.Databases = flag.Bool("databases", false, "List accessible user databases")
	f.Tables = flag.Bool("tables", false, "List base tables of the database")
	f.Describe = flag.String("describe", "", "Describe a table: columns, types, primary keys (schema.table)")
	f.Load = flag.String("load", "", "Insert records from a file into a table (file path or s3:// URI)")
	f.Update = flag.String("update", "", "Update table rows from a file, matched by identifier column (file path or s3:// URI)")
	f.Query = flag.String("query", "", "Execute raw query text and print the result")
	f.Run = flag.String("run", "", "Execute a named query from the config")
	f.ListQueries = flag.Bool("list-queries", false, "List named queries from the config")

	// Options
	f.Config = flag.String("config", "config.yaml", "Configuration file path")
	f.Database = flag.String("db", "", "Database to operate in (overrides config)")
	f.Table = flag.String("table", "", "Target table for load/update (schema.table)")
	f.Sheet = flag.String("sheet", "", "Excel sheet name (default: first sheet)")
	f.Delimiter = flag.String("delimiter", "", "CSV delimiter (default from config, then comma)")
	f.Sentinel = flag.String("sentinel", "", "Mapping value that skips a source field (overrides config)")
	f.Identifier = flag.String("identifier", "", "Identifier column for update mode (overrides config)")
	f.Job = flag.String("job", "", "Job name for the result log (default: target table)")
	f.Unsafe = flag.Bool("unsafe", false, "Disable the read-only guard for -query and -run")

	// Config Creation
	f.CreateConfig = flag.Bool("create-config", false, "Create a sample config file")

	// Misc
	f.Version = flag.Bool("version", false, "Show version information")
	f.Help = flag.Bool("help", false, "Show detailed help with examples")
	f.ShortHelp = flag.Bool("h", false, "Show brief help (commands and options)")

	flag.Parse()

	return f
}
