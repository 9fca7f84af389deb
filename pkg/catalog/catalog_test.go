package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
)

// recordingConn backs the catalog with SQLite and records every context
// switch. SQLite has no SQL Server catalog views, so every introspection
// query fails at the driver, which is exactly what the degrade tests need.
type recordingConn struct {
	db      *sql.DB
	used    []string
	failUse bool
}

func (r *recordingConn) UseDatabase(ctx context.Context, name string) error {
	r.used = append(r.used, name)
	if r.failUse {
		return &mssql.NoAccessError{Database: name, Err: errors.New("access denied")}
	}
	return nil
}

func (r *recordingConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, query, args...)
}

func (r *recordingConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, query, args...)
}

func (r *recordingConn) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, opts)
}

func newRecordingConn(t *testing.T) *recordingConn {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &recordingConn{db: db}
}

func TestListDatabases_DegradesToEmpty(t *testing.T) {
	conn := newRecordingConn(t)
	var buf bytes.Buffer
	cat := New(conn, zerolog.New(&buf))

	got := cat.ListDatabases(context.Background())
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
	if !strings.Contains(buf.String(), "degraded") {
		t.Errorf("Expected a degraded diagnostic in the log, got: %s", buf.String())
	}
}

func TestListTables_SwitchesContextOnEveryCall(t *testing.T) {
	conn := newRecordingConn(t)
	cat := New(conn, zerolog.Nop())
	ctx := context.Background()

	cat.ListTables(ctx, "Alpha")
	cat.ListTables(ctx, "Beta")
	cat.ListTables(ctx, "Alpha")

	want := []string{"Alpha", "Beta", "Alpha"}
	if len(conn.used) != len(want) {
		t.Fatalf("UseDatabase called %d times, want %d", len(conn.used), len(want))
	}
	for i, db := range want {
		if conn.used[i] != db {
			t.Errorf("UseDatabase call %d = %q, want %q", i, conn.used[i], db)
		}
	}
}

func TestDescribeTable_SwitchesContextOnEveryCall(t *testing.T) {
	conn := newRecordingConn(t)
	cat := New(conn, zerolog.Nop())
	ctx := context.Background()

	cat.DescribeTable(ctx, "Alpha", "dbo.Person")
	cat.DescribeTable(ctx, "Beta", "dbo.Person")

	// Описание одной и той же таблицы в двух базах: контекст выбирается
	// заново на каждый вызов, результат первого не переносится на второй.
	want := []string{"Alpha", "Beta"}
	if len(conn.used) != len(want) {
		t.Fatalf("UseDatabase called %d times, want %d", len(conn.used), len(want))
	}
	for i, db := range want {
		if conn.used[i] != db {
			t.Errorf("UseDatabase call %d = %q, want %q", i, conn.used[i], db)
		}
	}
}

func TestDescribeTable_DegradedKeepsIdentity(t *testing.T) {
	conn := newRecordingConn(t)
	var buf bytes.Buffer
	cat := New(conn, zerolog.New(&buf))

	desc := cat.DescribeTable(context.Background(), "Alpha", "dbo.Person")
	if desc.Schema != "dbo" || desc.Name != "Person" {
		t.Errorf("Descriptor identity = %q.%q, want dbo.Person", desc.Schema, desc.Name)
	}
	if len(desc.Columns) != 0 {
		t.Errorf("Expected no columns on degraded result, got %d", len(desc.Columns))
	}
	if desc.PrimaryKeys == nil {
		t.Error("PrimaryKeys must be an empty set, not nil")
	}
	if !strings.Contains(buf.String(), "degraded") {
		t.Error("Expected a degraded diagnostic in the log")
	}
}

func TestDescribeTable_UseDatabaseFailure(t *testing.T) {
	conn := newRecordingConn(t)
	conn.failUse = true
	var buf bytes.Buffer
	cat := New(conn, zerolog.New(&buf))

	desc := cat.DescribeTable(context.Background(), "Closed", "dbo.Person")
	if len(desc.Columns) != 0 {
		t.Errorf("Expected degraded descriptor, got %d columns", len(desc.Columns))
	}
	if len(conn.used) != 1 || conn.used[0] != "Closed" {
		t.Errorf("Expected one context switch to Closed, got %v", conn.used)
	}
	if !strings.Contains(buf.String(), "degraded") {
		t.Error("Expected a degraded diagnostic in the log")
	}
}

func TestPrimaryKeys_DegradesToEmptySet(t *testing.T) {
	conn := newRecordingConn(t)
	cat := New(conn, zerolog.Nop())

	keys := cat.PrimaryKeys(context.Background(), "Alpha", "dbo.Person")
	if keys == nil {
		t.Fatal("Expected empty set, got nil")
	}
	if len(keys) != 0 {
		t.Errorf("Expected empty set, got %v", keys)
	}
}

func TestTableDescriptor_Helpers(t *testing.T) {
	desc := TableDescriptor{
		Schema: "dbo",
		Name:   "Person",
		Columns: []ColumnDescriptor{
			{Name: "id", SQLType: "int"},
			{Name: "name", SQLType: "varchar", Nullable: true},
			{Name: "age", SQLType: "int", Nullable: true},
		},
		PrimaryKeys: map[string]struct{}{"id": {}},
	}

	if desc.Qualified() != "dbo.Person" {
		t.Errorf("Qualified() = %q, want dbo.Person", desc.Qualified())
	}
	if !desc.HasColumn("age") {
		t.Error("HasColumn(age) = false, want true")
	}
	if desc.HasColumn("Age") {
		t.Error("HasColumn(Age) = true, want false; matching is exact")
	}
	if desc.HasColumn("missing") {
		t.Error("HasColumn(missing) = true, want false")
	}

	names := desc.ColumnNames()
	want := []string{"id", "name", "age"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, names[i], n)
		}
	}
}
