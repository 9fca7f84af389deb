// Package mssql owns the connection session to Microsoft SQL Server: DSN
// construction for both supported drivers, the bounded connect attempt, and the
// active database context that every schema and data operation switches before
// touching anything.
//
// Two driver modes are supported:
//   - "native" (default): github.com/denisenkom/go-mssqldb registered under the
//     "mssql" name, which accepts ? placeholders.
//   - "odbc": github.com/alexbrainman/odbc with an
//     "ODBC Driver 17 for SQL Server" connection string, for hosts where only
//     the Microsoft ODBC stack is installed.
//
// A Session is single-owner. The selected database is shared mutable state with
// no per-call isolation, so operations against one session must be serialized
// by the caller. Open as many independent sessions as you need parallelism.
//
// Usage:
//
//	cfg := mssql.Config{Server: "localhost", Auth: mssql.AuthSQLCredential, User: "sa", Password: "..."}
//	sess := mssql.NewSession(cfg, log)
//	if err := sess.Connect(ctx); err != nil {
//	    var cerr *mssql.ConnectError
//	    if errors.As(err, &cerr) && cerr.Reason == mssql.ReasonUnreachable {
//	        // server not reachable within the 5s bound
//	    }
//	}
//	defer sess.Close()
package mssql
