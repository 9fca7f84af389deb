package catalog

import (
	"context"
	"os"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
)

// Интеграционные тесты интроспекции против реального MS SQL Server.
// Переменные окружения:
//
//	SQLBRIDGE_TEST_SERVER   - адрес сервера (default: localhost)
//	SQLBRIDGE_TEST_USER     - логин SQL (пусто = Windows auth)
//	SQLBRIDGE_TEST_PASSWORD - пароль SQL
//	SQLBRIDGE_TEST_DATABASE - база для тестов (default: master)

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func connectTestCatalog(t *testing.T) (*Catalog, *mssql.Session, string) {
	t.Helper()

	cfg := mssql.Config{
		Server:   getEnvOrDefault("SQLBRIDGE_TEST_SERVER", "localhost"),
		Database: getEnvOrDefault("SQLBRIDGE_TEST_DATABASE", "master"),
	}
	if user := os.Getenv("SQLBRIDGE_TEST_USER"); user != "" {
		cfg.Auth = mssql.AuthSQLCredential
		cfg.User = user
		cfg.Password = os.Getenv("SQLBRIDGE_TEST_PASSWORD")
	}

	sess := mssql.NewSession(cfg, zerolog.Nop())
	if err := sess.Connect(context.Background()); err != nil {
		t.Skipf("SQL Server not available: %v", err)
	}
	t.Cleanup(func() { sess.Close() })

	return New(sess, zerolog.Nop()), sess, cfg.Database
}

func TestIntegration_ListDatabases(t *testing.T) {
	cat, _, _ := connectTestCatalog(t)

	dbs := cat.ListDatabases(context.Background())
	if len(dbs) == 0 {
		t.Fatal("Expected at least one accessible user database")
	}
	if !sort.StringsAreSorted(dbs) {
		t.Errorf("Databases not sorted: %v", dbs)
	}
	for _, name := range dbs {
		if name == "master" || name == "tempdb" || name == "model" {
			t.Errorf("System database %q must be excluded", name)
		}
	}
}

func TestIntegration_DescribeTableTwoDatabases(t *testing.T) {
	cat, sess, database := connectTestCatalog(t)
	ctx := context.Background()

	if database == "tempdb" {
		t.Skip("Needs two distinct databases")
	}

	// Одноименная таблица в двух базах с разным набором колонок.
	_, err := sess.ExecContext(ctx, `CREATE TABLE dbo.sqlbridge_iso (
		id INT NOT NULL PRIMARY KEY,
		name NVARCHAR(100) NULL
	)`)
	if err != nil {
		t.Skipf("Cannot create probe table: %v", err)
	}
	defer func() {
		sess.UseDatabase(ctx, database)
		sess.ExecContext(ctx, "DROP TABLE dbo.sqlbridge_iso")
	}()

	if err := sess.UseDatabase(ctx, "tempdb"); err != nil {
		t.Skipf("Cannot switch to tempdb: %v", err)
	}
	_, err = sess.ExecContext(ctx, `CREATE TABLE dbo.sqlbridge_iso (
		id INT NOT NULL PRIMARY KEY,
		amount DECIMAL(18,2) NULL,
		note NVARCHAR(10) NULL
	)`)
	if err != nil {
		t.Skipf("Cannot create probe table in tempdb: %v", err)
	}
	defer func() {
		sess.UseDatabase(ctx, "tempdb")
		sess.ExecContext(ctx, "DROP TABLE dbo.sqlbridge_iso")
	}()

	first := cat.DescribeTable(ctx, database, "dbo.sqlbridge_iso")
	second := cat.DescribeTable(ctx, "tempdb", "dbo.sqlbridge_iso")
	again := cat.DescribeTable(ctx, database, "dbo.sqlbridge_iso")

	if len(first.Columns) != 2 {
		t.Errorf("%s describe returned %d columns, want 2", database, len(first.Columns))
	}
	if len(second.Columns) != 3 {
		t.Errorf("tempdb describe returned %d columns, want 3", len(second.Columns))
	}
	if len(again.Columns) != 2 {
		t.Errorf("Re-describe in %s returned %d columns, want 2: context must switch on every call",
			database, len(again.Columns))
	}
}

func TestIntegration_DescribeProbeTable(t *testing.T) {
	cat, sess, database := connectTestCatalog(t)
	ctx := context.Background()

	_, err := sess.ExecContext(ctx, `CREATE TABLE dbo.sqlbridge_probe (
		id INT NOT NULL PRIMARY KEY,
		name NVARCHAR(100) NULL,
		created DATETIME NULL DEFAULT GETDATE()
	)`)
	if err != nil {
		t.Skipf("Cannot create probe table: %v", err)
	}
	defer sess.ExecContext(ctx, "DROP TABLE dbo.sqlbridge_probe")

	tables := cat.ListTables(ctx, database)
	found := false
	for _, tbl := range tables {
		if tbl == "dbo.sqlbridge_probe" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Probe table not in ListTables result: %v", tables)
	}

	desc := cat.DescribeTable(ctx, database, "dbo.sqlbridge_probe")
	if len(desc.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(desc.Columns))
	}
	if desc.Columns[0].Name != "id" || desc.Columns[0].Nullable {
		t.Errorf("Column 0 = %+v, want non-nullable id", desc.Columns[0])
	}
	if !desc.Columns[1].Nullable {
		t.Error("Column name must be nullable")
	}
	if desc.Columns[2].Default == "" {
		t.Error("Column created must carry its default expression")
	}

	if _, ok := desc.PrimaryKeys["id"]; !ok {
		t.Errorf("Primary key set %v must contain id", desc.PrimaryKeys)
	}
}
