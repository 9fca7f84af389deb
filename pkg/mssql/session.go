package mssql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/alexbrainman/odbc"     // ODBC driver manager bridge
	_ "github.com/denisenkom/go-mssqldb" // MS SQL Server driver ("mssql" name, ? placeholders)

	"github.com/rs/zerolog"
)

// Status of a session. Transitions: Disconnected → Connected on a successful
// Connect, Disconnected → Failed on a failed one, Connected → Disconnected on
// Close. A Failed session stays failed; open a new one.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusFailed:
		return "failed"
	default:
		return "disconnected"
	}
}

// connectTimeout bounds the initial connection attempt. Statement execution is
// deliberately unbounded; only connect is time-limited.
const connectTimeout = 5 * time.Second

// Conn is the connection surface schema, load and query operations run on.
// *Session implements it; tests substitute lighter backends.
type Conn interface {
	UseDatabase(ctx context.Context, name string) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Session owns one live SQL Server connection and the currently selected
// database context. Not safe for concurrent use: the active database is shared
// mutable state, so callers serialize operations per session and open separate
// sessions for parallel work.
type Session struct {
	config         Config
	db             *sql.DB
	status         Status
	activeDatabase string
	log            zerolog.Logger
}

// NewSession prepares a disconnected session. Call Connect before use.
func NewSession(cfg Config, log zerolog.Logger) *Session {
	return &Session{
		config: cfg,
		status: StatusDisconnected,
		log:    log.With().Str("server", cfg.Server).Logger(),
	}
}

// Connect opens the connection and verifies it within a fixed 5 second bound.
// On failure the session becomes Failed and a *ConnectError distinguishes an
// unreachable server from a rejected login.
func (s *Session) Connect(ctx context.Context) error {
	db, err := sql.Open(s.config.driverName(), BuildDSN(s.config))
	if err != nil {
		s.status = StatusFailed
		return &ConnectError{Reason: ReasonRejected, Server: s.config.Server, Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		s.status = StatusFailed
		cerr := classifyConnectError(s.config.Server, err)
		s.log.Error().Str("reason", cerr.Reason.String()).Err(err).Msg("connect failed")
		return cerr
	}

	s.db = db
	s.status = StatusConnected
	s.activeDatabase = s.config.Database
	s.log.Info().Str("auth", s.config.Auth.String()).Str("driver", s.config.driverName()).Msg("connected")
	return nil
}

// UseDatabase switches the session's database context. On failure the active
// database is left untouched, so operations keep running against the database
// that was selected before the attempt.
func (s *Session) UseDatabase(ctx context.Context, name string) error {
	if err := s.ensureConnected(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "USE "+QuoteIdentifier(name)); err != nil {
		return &NoAccessError{Database: name, Err: err}
	}
	s.activeDatabase = name
	return nil
}

// QueryContext runs a query against the current database context.
func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}
	return s.db.QueryContext(ctx, query, args...)
}

// ExecContext runs a statement against the current database context.
func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}
	return s.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction on the session connection.
func (s *Session) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if err := s.ensureConnected(); err != nil {
		return nil, err
	}
	return s.db.BeginTx(ctx, opts)
}

// ServerVersion returns the @@VERSION string of the connected server.
func (s *Session) ServerVersion(ctx context.Context) (string, error) {
	if err := s.ensureConnected(); err != nil {
		return "", err
	}
	var version string
	if err := s.db.QueryRowContext(ctx, "SELECT @@VERSION").Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}

// ActiveDatabase returns the database selected by the last successful
// UseDatabase (or the initial one from Config).
func (s *Session) ActiveDatabase() string { return s.activeDatabase }

// Status returns the session status.
func (s *Session) Status() Status { return s.status }

// Close releases the connection. The session returns to Disconnected.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.status = StatusDisconnected
	s.activeDatabase = ""
	return err
}

func (s *Session) ensureConnected() error {
	if s.status != StatusConnected || s.db == nil {
		return ErrNotConnected
	}
	return nil
}
