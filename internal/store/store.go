package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// SQLStore is a Store backed by SQLite. Queries are built with ent's SQL
// builder and run through its driver.
type SQLStore struct {
	*broker

	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter

	// mu serializes read-modify-write cycles such as booking updates.
	mu sync.Mutex
}

var _ Store = (*SQLStore)(nil)

// Open creates a SQLStore connected to the SQLite database at dsn. An
// empty dsn opens a private in-memory database. It applies recommended
// pragmas and creates missing tables.
func Open(dsn string) (*SQLStore, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps an in-memory database alive and shared, and
	// matches the single-writer model.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLStore{
		broker: newBroker(),
		db:     db,
		drv:    entsql.OpenDB(dialect.SQLite, db),
		seq:    seq,
	}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.drv.Close()
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS results (
		seq INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		score INTEGER NOT NULL,
		concept_scores TEXT NOT NULL,
		time_taken INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		seq INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		mentor_id TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		subject TEXT NOT NULL,
		concept TEXT NOT NULL,
		status TEXT NOT NULL,
		feedback TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		seq INTEGER PRIMARY KEY,
		concept_id TEXT NOT NULL,
		date TEXT NOT NULL,
		score INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS certificates (
		seq INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		skill TEXT NOT NULL,
		subject TEXT NOT NULL,
		issued_date TEXT NOT NULL,
		mentor_id TEXT NOT NULL,
		mentor_name TEXT NOT NULL,
		mentor_feedback TEXT NOT NULL,
		improvement INTEGER NOT NULL
	)`,
}

// migrate creates the tables if they do not exist.
func migrate(db *sql.DB) error {
	for _, ddl := range tables {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Connect opens the backend named by dsn:
//
//   - "" or "memory": a Memory store
//   - "default": SQLite at DefaultDBPath
//   - anything else: a SQLite DSN such as a file path or ":memory:"
func Connect(dsn string) (Store, error) {
	switch dsn {
	case "", "memory":
		return NewMemory(), nil
	case "default":
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dsn = p
	}
	return Open(dsn)
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEARNBOARD_DB_PATH environment variable
// 2. $XDG_DATA_HOME/learnboard/learnboard.db
// 3. ~/.local/share/learnboard/learnboard.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEARNBOARD_DB_PATH"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "learnboard", "learnboard.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
