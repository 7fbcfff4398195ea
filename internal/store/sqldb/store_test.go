package sqldb

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(Options{Driver: DriverSQLite, DSN: dbPath, Logger: logger})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// assertReleased fails if any pooled connection is still checked out.
func assertReleased(t *testing.T, s *Store) {
	t.Helper()
	if inUse := s.Stats().InUse; inUse != 0 {
		t.Errorf("connections in use: got %d, want 0", inUse)
	}
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify the schema tables exist.
	for _, table := range []string{"entries", "tags", "entry_tags"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	if s.Driver() != DriverSQLite {
		t.Errorf("Driver: got %q, want %q", s.Driver(), DriverSQLite)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	s1, err := Open(Options{Driver: DriverSQLite, DSN: dbPath})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	// Schema uses IF NOT EXISTS, so a second open must succeed.
	s2, err := Open(Options{Driver: DriverSQLite, DSN: dbPath})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(Options{Driver: "mysql", DSN: "x"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	assertReleased(t, s)
}

func TestRebind(t *testing.T) {
	sqlite := &Store{driver: DriverSQLite}
	pg := &Store{driver: DriverPostgres}
	query := "SELECT * FROM t WHERE a = ? AND b = ? LIMIT ?"

	if got := sqlite.rebind(query); got != query {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
	want := "SELECT * FROM t WHERE a = $1 AND b = $2 LIMIT $3"
	if got := pg.rebind(query); got != want {
		t.Errorf("postgres rebind: got %q, want %q", got, want)
	}
}

func TestSQLiteDSN(t *testing.T) {
	got := sqliteDSN("/tmp/x.db")
	if got[:len("file:/tmp/x.db?")] != "file:/tmp/x.db?" {
		t.Errorf("unexpected dsn prefix: %q", got)
	}

	got = sqliteDSN("file:/tmp/x.db?mode=rwc")
	if got[:len("file:/tmp/x.db?mode=rwc&")] != "file:/tmp/x.db?mode=rwc&" {
		t.Errorf("unexpected dsn prefix: %q", got)
	}
}

func TestFormatTime_FixedWidth(t *testing.T) {
	a := formatTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	b := formatTime(time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.FixedZone("x", 3600)))

	if len(a) != len(b) {
		t.Errorf("widths differ: %q vs %q", a, b)
	}

	parsed, err := parseTime(b)
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if parsed.Nanosecond() != 123456789 {
		t.Errorf("nanoseconds lost: %v", parsed)
	}
}
