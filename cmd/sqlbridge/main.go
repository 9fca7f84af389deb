package main

import (
	"context"
	"fmt"
	"os"

	"github.com/queuebridge/sqlbridge/cmd/sqlbridge/commands"
	"github.com/queuebridge/sqlbridge/pkg/resultlog"
)

func main() {
	ctx := context.Background()

	// Parse flags
	flags := ParseFlags()

	// Handle version
	if *flags.Version {
		PrintVersion()
		os.Exit(0)
	}

	// Handle help
	if *flags.Help {
		PrintHelp()
		os.Exit(0)
	}
	if *flags.ShortHelp {
		PrintShortHelp()
		os.Exit(0)
	}

	// Handle config creation
	if *flags.CreateConfig {
		createConfigTemplate()
		return
	}

	// Load configuration
	config, err := LoadConfig(*flags.Config)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	logger, closeLog, err := setupLogger(config.Log)
	if err != nil {
		fatal("Failed to set up logging: %v", err)
	}
	defer closeLog()

	sessionConfig := config.SessionConfig()

	// The -db flag narrows one command to another database.
	database := config.Server.Database
	if *flags.Database != "" {
		database = *flags.Database
	}

	delimiter, err := config.DelimiterRune(*flags.Delimiter)
	if err != nil {
		fatal("%v", err)
	}

	sheet := config.Source.Sheet
	if *flags.Sheet != "" {
		sheet = *flags.Sheet
	}

	identifier := config.Identifier
	if *flags.Identifier != "" {
		identifier = *flags.Identifier
	}

	sentinel := config.Sentinel
	if *flags.Sentinel != "" {
		sentinel = *flags.Sentinel
	}

	var resultLog *resultlog.Config
	if config.ResultLog.Address != "" {
		resultLog = &config.ResultLog
	}

	// Route commands
	var cmdErr error

	switch {
	case *flags.Ping:
		cmdErr = commands.Ping(ctx, sessionConfig, logger)

	case *flags.Databases:
		cmdErr = commands.ListDatabases(ctx, sessionConfig, logger)

	case *flags.Tables:
		cmdErr = commands.ListTables(ctx, sessionConfig, logger, database)

	case *flags.Describe != "":
		cmdErr = commands.DescribeTable(ctx, sessionConfig, logger, database, *flags.Describe)

	case *flags.Load != "" || *flags.Update != "":
		opts := commands.LoadOptions{
			FilePath:   *flags.Load,
			Server:     config.Server.Host,
			Database:   database,
			Table:      *flags.Table,
			Sheet:      sheet,
			Delimiter:  delimiter,
			Entries:    config.MappingEntries(),
			Sentinel:   sentinel,
			Identifier: identifier,
			Job:        *flags.Job,
			S3:         config.Source.S3,
			ResultLog:  resultLog,
		}
		if *flags.Update != "" {
			opts.FilePath = *flags.Update
			opts.Update = true
		}
		cmdErr = commands.Load(ctx, sessionConfig, logger, opts)

	case *flags.Query != "":
		cmdErr = commands.RunQuery(ctx, sessionConfig, logger, commands.QueryOptions{
			Database: database,
			Text:     *flags.Query,
			Unsafe:   *flags.Unsafe,
		})

	case *flags.Run != "":
		cmdErr = commands.RunQuery(ctx, sessionConfig, logger, commands.QueryOptions{
			Database: database,
			Name:     *flags.Run,
			Queries:  config.Queries,
			Unsafe:   *flags.Unsafe,
		})

	case *flags.ListQueries:
		cmdErr = commands.ListQueries(config.Queries)

	default:
		PrintShortHelp()
		os.Exit(1)
	}

	// Handle errors
	if cmdErr != nil {
		logger.Error().Err(cmdErr).Msg("Command failed")
		fatal("Command failed: %v", cmdErr)
	}
}

// createConfigTemplate creates a sample configuration file
func createConfigTemplate() {
	if err := SaveConfig("config.yaml", CreateSampleConfig()); err != nil {
		fatal("Failed to save config: %v", err)
	}

	fmt.Println("✓ Created sample config: config.yaml")
	fmt.Println("Edit the file with your server settings and run:")
	fmt.Println("  sqlbridge -ping -config config.yaml")
}

// fatal prints error and exits
func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
