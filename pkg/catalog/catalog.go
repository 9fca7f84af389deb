// Package catalog provides read-only schema introspection over a SQL Server
// session: accessible databases, base tables, column shapes and primary keys.
//
// Every operation degrades to an empty result on driver failure and records a
// diagnostic through the catalog's logger instead of returning an error.
// Schema browsing must never crash the surrounding application; the caller
// sees "nothing there" and the log says why.
package catalog

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/queuebridge/sqlbridge/pkg/mssql"
)

const (
	// Системные базы master (1), tempdb (2) и model (3) исключаются по id.
	sqlListDatabases = `
		SELECT d.name
		FROM sys.databases d
		WHERE HAS_DBACCESS(d.name) = 1
		  AND d.database_id NOT IN (1, 2, 3)
		ORDER BY d.name`

	sqlListTables = `
		SELECT TABLE_SCHEMA, TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE'`

	sqlTableColumns = `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_DEFAULT
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`

	sqlPrimaryKeys = `
		SELECT KU.COLUMN_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS TC
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KU
		  ON TC.CONSTRAINT_NAME = KU.CONSTRAINT_NAME
		WHERE TC.CONSTRAINT_TYPE = 'PRIMARY KEY'
		  AND KU.TABLE_SCHEMA = ? AND KU.TABLE_NAME = ?`
)

// Catalog performs schema introspection on one session. Operations that take
// a database argument switch the session context first on every call; they
// never assume a prior caller left the right database selected.
type Catalog struct {
	conn mssql.Conn
	log  zerolog.Logger
}

// New builds a catalog over the given connection.
func New(conn mssql.Conn, log zerolog.Logger) *Catalog {
	return &Catalog{conn: conn, log: log}
}

// ListDatabases returns the databases the current principal can access,
// system databases excluded, sorted by name. Server-scoped: no context
// switch is needed.
func (c *Catalog) ListDatabases(ctx context.Context) []string {
	rows, err := c.conn.QueryContext(ctx, sqlListDatabases)
	if err != nil {
		c.degrade("list databases", "", err)
		return nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			c.degrade("list databases", "", err)
			return nil
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		c.degrade("list databases", "", err)
		return nil
	}
	return names
}

// ListTables returns "schema.table" identifiers for the base tables of the
// given database. Views are excluded. Order is whatever INFORMATION_SCHEMA
// returns.
func (c *Catalog) ListTables(ctx context.Context, database string) []string {
	if err := c.conn.UseDatabase(ctx, database); err != nil {
		c.degrade("list tables", database, err)
		return nil
	}

	rows, err := c.conn.QueryContext(ctx, sqlListTables)
	if err != nil {
		c.degrade("list tables", database, err)
		return nil
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var schema, name string
		if err := rows.Scan(&schema, &name); err != nil {
			c.degrade("list tables", database, err)
			return nil
		}
		tables = append(tables, schema+"."+name)
	}
	if err := rows.Err(); err != nil {
		c.degrade("list tables", database, err)
		return nil
	}
	return tables
}

// DescribeTable returns the live shape of a "schema.table" in the given
// database: columns in ordinal order plus the primary key set. On failure the
// descriptor carries the requested identity and no columns.
func (c *Catalog) DescribeTable(ctx context.Context, database, table string) TableDescriptor {
	schema, name := mssql.SplitQualified(table)
	desc := TableDescriptor{
		Schema:      schema,
		Name:        name,
		PrimaryKeys: map[string]struct{}{},
	}

	if err := c.conn.UseDatabase(ctx, database); err != nil {
		c.degrade("describe table", database, err)
		return desc
	}

	rows, err := c.conn.QueryContext(ctx, sqlTableColumns, schema, name)
	if err != nil {
		c.degrade("describe table", database, err)
		return desc
	}
	defer rows.Close()

	for rows.Next() {
		var (
			col      ColumnDescriptor
			nullable string
			def      sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.SQLType, &nullable, &def); err != nil {
			c.degrade("describe table", database, err)
			return TableDescriptor{Schema: schema, Name: name, PrimaryKeys: map[string]struct{}{}}
		}
		col.Nullable = nullable == "YES"
		col.Default = def.String
		desc.Columns = append(desc.Columns, col)
	}
	if err := rows.Err(); err != nil {
		c.degrade("describe table", database, err)
		return TableDescriptor{Schema: schema, Name: name, PrimaryKeys: map[string]struct{}{}}
	}

	desc.PrimaryKeys = c.primaryKeys(ctx, database, schema, name)
	return desc
}

// PrimaryKeys returns the primary key column set of a "schema.table". An
// empty set is normal for tables without a declared key.
func (c *Catalog) PrimaryKeys(ctx context.Context, database, table string) map[string]struct{} {
	schema, name := mssql.SplitQualified(table)
	if err := c.conn.UseDatabase(ctx, database); err != nil {
		c.degrade("primary keys", database, err)
		return map[string]struct{}{}
	}
	return c.primaryKeys(ctx, database, schema, name)
}

// primaryKeys assumes the database context is already switched.
func (c *Catalog) primaryKeys(ctx context.Context, database, schema, name string) map[string]struct{} {
	keys := map[string]struct{}{}

	rows, err := c.conn.QueryContext(ctx, sqlPrimaryKeys, schema, name)
	if err != nil {
		c.degrade("primary keys", database, err)
		return keys
	}
	defer rows.Close()

	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			c.degrade("primary keys", database, err)
			return map[string]struct{}{}
		}
		keys[col] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		c.degrade("primary keys", database, err)
		return map[string]struct{}{}
	}
	return keys
}

// degrade records why an introspection call returned an empty result.
func (c *Catalog) degrade(op, database string, err error) {
	evt := c.log.Warn().Str("op", op).Err(err)
	if database != "" {
		evt = evt.Str("database", database)
	}
	evt.Msg("introspection degraded to empty result")
}
