package mssql

import "strings"

// AuthMode selects how the session authenticates against the server.
type AuthMode int

const (
	// AuthWindows uses the identity of the running process (trusted connection).
	AuthWindows AuthMode = iota
	// AuthSQLCredential uses an explicit SQL Server login and password.
	AuthSQLCredential
)

func (m AuthMode) String() string {
	if m == AuthWindows {
		return "windows"
	}
	return "sql"
}

// Driver mode identifiers for Config.Driver.
const (
	DriverNative = "native"
	DriverODBC   = "odbc"
)

// Config describes one SQL Server endpoint.
type Config struct {
	Server   string // host or host,port
	Database string // initial database; empty keeps the login default
	Auth     AuthMode
	User     string // AuthSQLCredential only
	Password string // AuthSQLCredential only
	Driver   string // "native" (default) or "odbc"
}

func (c Config) driverName() string {
	if c.Driver == DriverODBC {
		return "odbc"
	}
	return "mssql"
}

// BuildDSN constructs the driver connection string for the configured auth
// mode. The native form is ADO-style for go-mssqldb; the ODBC form targets
// "ODBC Driver 17 for SQL Server". Credentials are embedded in clear text,
// which is how both drivers expect them; the string must not be logged.
func BuildDSN(c Config) string {
	if c.driverName() == "odbc" {
		parts := []string{
			"Driver={ODBC Driver 17 for SQL Server}",
			"Server=" + c.Server,
		}
		if c.Database != "" {
			parts = append(parts, "Database="+c.Database)
		}
		if c.Auth == AuthWindows {
			parts = append(parts, "Trusted_Connection=yes")
		} else {
			parts = append(parts, "UID="+c.User, "PWD="+c.Password)
		}
		return strings.Join(parts, ";") + ";"
	}

	parts := []string{"server=" + c.Server}
	if c.Database != "" {
		parts = append(parts, "database="+c.Database)
	}
	if c.Auth == AuthWindows {
		parts = append(parts, "integrated security=SSPI")
	} else {
		parts = append(parts, "user id="+c.User, "password="+c.Password)
	}
	parts = append(parts, "dial timeout=5", "app name=sqlbridge")
	return strings.Join(parts, ";")
}
