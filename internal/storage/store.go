// Package storage persists recorded input replays.
// Local installs use the pure-Go modernc.org/sqlite driver; a postgres://
// DSN selects lib/pq so a shared server can keep replays in PostgreSQL.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a replay does not exist.
var ErrNotFound = errors.New("storage: not found")

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// Store manages the database connection for replay persistence.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the replay database and runs migrations.
// A postgres:// or postgresql:// DSN opens PostgreSQL; anything else is a
// SQLite file path, whose parent directories are created as needed.
func Open(dsn string) (*Store, error) {
	driver, source, d := "sqlite", dsn, dialectSQLite
	if IsPostgresDSN(dsn) {
		driver, d = "postgres", dialectPostgres
	} else {
		path, err := expandPath(dsn)
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
		source = path
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, dialect: d}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	id, blob, ts := "INTEGER PRIMARY KEY AUTOINCREMENT", "BLOB", "DATETIME DEFAULT CURRENT_TIMESTAMP"
	if s.dialect == dialectPostgres {
		id, blob, ts = "BIGSERIAL PRIMARY KEY", "BYTEA", "TIMESTAMP WITH TIME ZONE DEFAULT NOW()"
	}

	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id ` + id + `,
			seed BIGINT NOT NULL,
			config TEXT NOT NULL,
			tick_count INTEGER NOT NULL,
			duration_secs DOUBLE PRECISION NOT NULL DEFAULT 0,
			ticks ` + blob + ` NOT NULL,
			created_at ` + ts + `
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
func (s *Store) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
