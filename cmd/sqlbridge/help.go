package main

import "fmt"

const version = "1.2.0"

// PrintVersion prints version information
func PrintVersion() {
	fmt.Printf("sqlbridge version %s\n", version)
	fmt.Println("SQLBridge - Spreadsheet to MS SQL Server Loader")
	fmt.Println("https://github.com/queuebridge/sqlbridge")
}

// PrintShortHelp prints a brief command and option summary
func PrintShortHelp() {
	fmt.Println("sqlbridge - load spreadsheet data into MS SQL Server")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  -ping                    Connect and print server version")
	fmt.Println("  -databases               List accessible user databases")
	fmt.Println("  -tables                  List base tables of the database")
	fmt.Println("  -describe <table>        Describe table columns and keys")
	fmt.Println("  -load <file>             Insert records from xlsx/csv into a table")
	fmt.Println("  -update <file>           Update table rows from xlsx/csv by identifier")
	fmt.Println("  -query <text>            Execute a read-only query")
	fmt.Println("  -run <name>              Execute a named query from config")
	fmt.Println("  -list-queries            List named queries from config")
	fmt.Println("  -create-config           Create a sample config file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config <file>           Config file (default: config.yaml)")
	fmt.Println("  -db <name>               Database override")
	fmt.Println("  -table <schema.table>    Target table for load/update")
	fmt.Println("  -sheet <name>            Excel sheet name")
	fmt.Println("  -delimiter <char>        CSV delimiter")
	fmt.Println("  -sentinel <value>        Mapping value that skips a source field")
	fmt.Println("  -identifier <column>     Identifier column for update mode")
	fmt.Println("  -job <name>              Result log job name")
	fmt.Println("  -unsafe                  Disable the read-only query guard")
	fmt.Println()
	fmt.Println("Use -help for detailed help with examples.")
}

// PrintHelp prints comprehensive help information
func PrintHelp() {
	fmt.Println("SQLBridge - Spreadsheet to MS SQL Server Loader")
	fmt.Printf("Version: %s\n\n", version)

	fmt.Println("USAGE:")
	fmt.Println("  sqlbridge [command] [options]")
	fmt.Println()

	fmt.Println("COMMANDS:")
	fmt.Println()

	fmt.Println("  Server & Catalog:")
	fmt.Println("    -ping                      Connect to the server and print its version")
	fmt.Println("    -databases                 List accessible user databases")
	fmt.Println("    -tables                    List base tables of the active database")
	fmt.Println("    -describe <table>          Describe a table: columns, types, primary keys")
	fmt.Println()

	fmt.Println("  Data Loading:")
	fmt.Println("    -load <file>               Insert records from a file into a table")
	fmt.Println("    -update <file>             Update table rows from a file, matched by identifier")
	fmt.Println()
	fmt.Println("    Accepted sources: .xlsx, .xlsm, .csv, .txt, zstd-compressed .zst")
	fmt.Println("    and s3:// URIs (fetched to a temp file first).")
	fmt.Println()

	fmt.Println("  Queries:")
	fmt.Println("    -query <text>              Execute raw query text and print the result")
	fmt.Println("    -run <name>                Execute a named query from the config")
	fmt.Println("    -list-queries              List named queries from the config")
	fmt.Println()

	fmt.Println("  Configuration:")
	fmt.Println("    -create-config             Create a sample config file")
	fmt.Println()

	fmt.Println("  Misc:")
	fmt.Println("    -version                   Show version information")
	fmt.Println("    -help                      Show this help message")
	fmt.Println("    -h                         Show brief help")
	fmt.Println()

	fmt.Println("OPTIONS:")
	fmt.Println()

	fmt.Println("  General:")
	fmt.Println("    -config <file>             Configuration file (default: config.yaml)")
	fmt.Println("    -db <name>                 Database to operate in (overrides config)")
	fmt.Println("    -table <schema.table>      Target table for load/update")
	fmt.Println()

	fmt.Println("  Source Files:")
	fmt.Println("    -sheet <name>              Excel sheet name (default: first sheet)")
	fmt.Println("    -delimiter <char>          CSV delimiter (default from config, then comma)")
	fmt.Println()

	fmt.Println("  Mapping:")
	fmt.Println("    -sentinel <value>          Mapping value that skips a source field")
	fmt.Println("                               (default: \"Do not import\")")
	fmt.Println()

	fmt.Println("  Update Mode:")
	fmt.Println("    -identifier <column>       Identifier column matched in WHERE (overrides config)")
	fmt.Println()

	fmt.Println("  Result Log:")
	fmt.Println("    -job <name>                Job name for the Redis result log (default: target table)")
	fmt.Println()

	fmt.Println("  Queries:")
	fmt.Println("    -unsafe                    Disable the read-only guard for -query and -run")
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println()

	fmt.Println("  # Check connectivity")
	fmt.Println("  sqlbridge -ping -config config.yaml")
	fmt.Println()

	fmt.Println("  # Explore the catalog")
	fmt.Println("  sqlbridge -databases")
	fmt.Println("  sqlbridge -tables -db Staging")
	fmt.Println("  sqlbridge -describe dbo.Person -db Staging")
	fmt.Println()

	fmt.Println("  # Load a spreadsheet into a table")
	fmt.Println("  sqlbridge -load people.xlsx -table dbo.Person -db Staging")
	fmt.Println()

	fmt.Println("  # Load a specific sheet")
	fmt.Println("  sqlbridge -load people.xlsx -sheet Employees -table dbo.Person")
	fmt.Println()

	fmt.Println("  # Load a semicolon-separated CSV")
	fmt.Println("  sqlbridge -load people.csv -delimiter ';' -table dbo.Person")
	fmt.Println()

	fmt.Println("  # Load a compressed CSV straight from S3")
	fmt.Println("  sqlbridge -load s3://exports/people.csv.zst -table dbo.Person")
	fmt.Println()

	fmt.Println("  # Update existing rows, matching on the id column")
	fmt.Println("  sqlbridge -update people.xlsx -table dbo.Person -identifier id")
	fmt.Println()

	fmt.Println("  # Tag the result log entry with a job name")
	fmt.Println("  sqlbridge -load people.xlsx -table dbo.Person -job nightly-people")
	fmt.Println()

	fmt.Println("  # Run an ad-hoc read-only query")
	fmt.Println("  sqlbridge -query \"SELECT TOP 10 * FROM dbo.Person\" -db Staging")
	fmt.Println()

	fmt.Println("  # Run a named query from the config")
	fmt.Println("  sqlbridge -run row-count")
	fmt.Println()

	fmt.Println("CONFIGURATION:")
	fmt.Println()
	fmt.Println("  Configuration files use YAML format. Create a sample config with:")
	fmt.Println("    sqlbridge -create-config")
	fmt.Println()
	fmt.Println("  Config structure includes:")
	fmt.Println("    - server: Connection settings (host, database, credentials, driver)")
	fmt.Println("    - log: Logging settings (level, file, console)")
	fmt.Println("    - source: Source file defaults (sheet, delimiter, S3 credentials)")
	fmt.Println("    - mapping: Source field to table column mapping")
	fmt.Println("    - resultlog: Redis result log settings (optional)")
	fmt.Println("    - queries: Named read-only queries")
	fmt.Println()

	fmt.Println("FEATURES:")
	fmt.Println()
	fmt.Println("  - MS SQL Server: native TDS and ODBC drivers, Windows authentication")
	fmt.Println("  - Sources: XLSX, CSV, zstd-compressed CSV, S3 objects")
	fmt.Println("  - Batch insert and update in a single transaction with rollback")
	fmt.Println("  - Field mapping with sentinel to skip unwanted columns")
	fmt.Println("  - Read-only query guard for ad-hoc queries")
	fmt.Println("  - Result log published to Redis for pipeline orchestration")
	fmt.Println()

	fmt.Println("DOCUMENTATION:")
	fmt.Println("  https://github.com/queuebridge/sqlbridge")
	fmt.Println()
}
