// Package sqldb provides the database/sql implementation of the catalog store.
// SQLite (modernc.org/sqlite) is the default engine; PostgreSQL (lib/pq) is
// supported for deployments that already run one. Both share the same schema
// and queries, written with "?" placeholders and rebound per driver.
package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/framearchive/framearchive/internal/store"

	"modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// unicodeLowerFunc is the SQLite scalar used for case-insensitive search.
// The built-in LOWER folds ASCII only.
const unicodeLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, unicodeLower)
}

// unicodeLower folds its argument with strings.ToLower. NULL stays NULL.
func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Supported driver names, matching the names the drivers register with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// timeLayout is RFC3339 with a fixed nine-digit fraction. Stored in UTC it has
// constant width, so ORDER BY created_at sorts chronologically on any engine.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Options configures Open.
type Options struct {
	Driver       string // DriverSQLite or DriverPostgres
	DSN          string // file path for SQLite, connection URL for PostgreSQL
	MaxOpenConns int    // 0 uses the driver default below
	Logger       *slog.Logger
}

// Store is a catalog store backed by an explicitly owned connection pool.
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

var _ store.Catalog = (*Store)(nil)

// Open connects to the database, configures the pool, and applies the schema.
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var dsn string
	switch opts.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(opts.DSN)
	case DriverPostgres:
		dsn = opts.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
		if opts.Driver == DriverPostgres {
			maxOpen = 10
		}
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(max(1, maxOpen/2))
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	// Run schema migration.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	logger.Debug("catalog store opened", "driver", opts.Driver, "max_open_conns", maxOpen)

	return &Store{
		db:     db,
		driver: opts.Driver,
		logger: logger,
	}, nil
}

// lowerFunc names the SQL function that case-folds text on this engine.
// PostgreSQL's LOWER already follows the database's Unicode rules.
func (s *Store) lowerFunc() string {
	if s.driver == DriverSQLite {
		return unicodeLowerFunc
	}
	return "LOWER"
}

// sqliteDSN adds the per-connection pragmas to a SQLite path. Pragmas are set
// through the DSN so every pooled connection gets them, not just the first.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + strings.Join([]string{
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
	}, "&")
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
}

// Stats returns pool statistics.
func (s *Store) Stats() sql.DBStats {
	return s.db.Stats()
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// withConn acquires one pooled connection for the duration of fn and returns it
// to the pool on every exit path. fn must close any rows it opens before returning.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// rebind rewrites "?" placeholders to "$1", "$2", ... for PostgreSQL.
// Queries in this package never contain a literal "?".
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// isUniqueViolation reports whether err is a unique or primary key conflict.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// formatTime formats a time.Time for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullString returns a sql.NullString from a string, treating "" as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
