package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath selects a private in-memory database.
const MemoryPath = ":memory:"

// connPragmas are applied by the driver to every pooled connection.
const connPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// startupPragmas run once on the opened handle. The driver-level DSN pragmas
// do not apply to :memory:, so foreign keys and the busy timeout repeat here.
var startupPragmas = []struct {
	stmt string
	desc string
}{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
}

// OpenDB opens the tratlus store at path, creating parent directories for
// file databases, and brings the schema up to date. Pass MemoryPath for a
// throwaway database pinned to a single connection.
func OpenDB(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		dsn = path + connPragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	for _, p := range startupPragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.desc, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
