package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/catalog"
	"github.com/queuebridge/sqlbridge/pkg/mssql"
)

// ListDatabases prints the accessible user databases.
func ListDatabases(ctx context.Context, cfg mssql.Config, log zerolog.Logger) error {
	sess, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	databases := catalog.New(sess, log).ListDatabases(ctx)
	if len(databases) == 0 {
		fmt.Println("No accessible user databases (see the log for details)")
		return nil
	}

	fmt.Printf("Databases on %s:\n", cfg.Server)
	for _, db := range databases {
		fmt.Printf("  - %s\n", db)
	}
	fmt.Printf("Total: %d\n", len(databases))
	return nil
}

// ListTables prints the base tables of one database.
func ListTables(ctx context.Context, cfg mssql.Config, log zerolog.Logger, database string) error {
	sess, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	tables := catalog.New(sess, log).ListTables(ctx, database)
	if len(tables) == 0 {
		fmt.Printf("No base tables visible in %s (see the log for details)\n", database)
		return nil
	}

	fmt.Printf("Tables in %s:\n", database)
	for _, table := range tables {
		fmt.Printf("  - %s\n", table)
	}
	fmt.Printf("Total: %d\n", len(tables))
	return nil
}

// DescribeTable prints the columns and primary keys of one table.
func DescribeTable(ctx context.Context, cfg mssql.Config, log zerolog.Logger, database, table string) error {
	sess, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	desc := catalog.New(sess, log).DescribeTable(ctx, database, table)
	if len(desc.Columns) == 0 {
		fmt.Printf("Table %s has no visible columns in %s (missing table or no access)\n",
			desc.Qualified(), database)
		return nil
	}

	fmt.Printf("Table %s.%s:\n", database, desc.Qualified())
	fmt.Printf("  %-30s %-15s %-8s %-5s %s\n", "COLUMN", "TYPE", "NULL", "KEY", "DEFAULT")
	for _, col := range desc.Columns {
		nullable := "NO"
		if col.Nullable {
			nullable = "YES"
		}
		key := ""
		if _, ok := desc.PrimaryKeys[col.Name]; ok {
			key = "PK"
		}
		fmt.Printf("  %-30s %-15s %-8s %-5s %s\n", col.Name, col.SQLType, nullable, key, col.Default)
	}
	fmt.Printf("Columns: %d, primary key columns: %d\n", len(desc.Columns), len(desc.PrimaryKeys))
	return nil
}
