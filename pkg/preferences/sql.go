package preferences

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver

	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// Dialect selects SQL placeholder syntax.
type Dialect int

// Supported dialects.
const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

const createTable = `CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQL stores preferences in a two-column table.
type SQL struct {
	db      *sql.DB
	getStmt string
	setStmt string
}

// NewSQL wraps an open database and creates the preferences table if needed.
func NewSQL(ctx context.Context, db *sql.DB, dialect Dialect) (*SQL, error) {
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, errors.WrapResource("create", "table", "preferences", err)
	}
	s := &SQL{db: db}
	switch dialect {
	case DialectPostgres:
		s.getStmt = `SELECT value FROM preferences WHERE key = $1`
		s.setStmt = `INSERT INTO preferences (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	default:
		s.getStmt = `SELECT value FROM preferences WHERE key = ?`
		s.setStmt = `INSERT INTO preferences (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	}
	return s, nil
}

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create directory", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open sqlite", path, err)
	}
	db.SetMaxOpenConns(1)
	s, err := NewSQL(ctx, db, DialectSQLite)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPostgres connects to Postgres through pgx.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.WrapIO("open postgres", "", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("ping postgres", "", err)
	}
	s, err := NewSQL(ctx, db, DialectPostgres)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Get implements Store.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.getStmt, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapResource("get", "preference", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.setStmt, key, value); err != nil {
		return errors.WrapResource("set", "preference", key, err)
	}
	return nil
}

// Close implements Store.
func (s *SQL) Close() error {
	return s.db.Close()
}
