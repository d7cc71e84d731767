// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite log of conversions so past
// results can be listed, filtered, and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/baseconv/pkg/types"
)

const defaultMaxResults = 20

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// DefaultDBPath returns ~/.local/share/baseconv/history.db, or history.db in
// the working directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".local", "share", "baseconv", "history.db")
}

// Open opens or creates the history database at cfg.DBPath and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = DefaultDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		path:       path,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			value INTEGER NOT NULL,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_mode ON conversions(mode)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends conversions in a single transaction.
func (s *Store) Record(ctx context.Context, conversions []types.Conversion) error {
	if len(conversions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (mode, input, output, value, at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range conversions {
		at := c.At
		if at.IsZero() {
			at = time.Now()
		}
		_, err := stmt.ExecContext(ctx,
			string(c.Mode), c.Input, c.Output, int64(c.Value),
			at.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting conversion %q: %w", c.Input, err)
		}
	}

	return tx.Commit()
}

// QueryOptions holds filters for history queries.
type QueryOptions struct {
	// Mode restricts results to one direction. Empty matches both.
	Mode types.Mode

	// Match keeps rows whose input or output contains this substring
	// (case-insensitive).
	Match string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// likeEscaper makes LIKE wildcards in a Match string literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Recent returns conversions newest first.
func (s *Store) Recent(ctx context.Context, opts QueryOptions) ([]types.Conversion, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT mode, input, output, value, at FROM conversions WHERE 1=1`)

	if opts.Mode != "" {
		qb.WriteString(` AND mode = ?`)
		args = append(args, string(opts.Mode))
	}
	if opts.Match != "" {
		qb.WriteString(` AND (input LIKE ? ESCAPE '\' OR output LIKE ? ESCAPE '\')`)
		pattern := "%" + likeEscaper.Replace(opts.Match) + "%"
		args = append(args, pattern, pattern)
	}

	qb.WriteString(` ORDER BY id DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var results []types.Conversion
	for rows.Next() {
		var (
			c     types.Conversion
			mode  string
			value int64
			at    string
		)
		if err := rows.Scan(&mode, &c.Input, &c.Output, &value, &at); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		c.Mode = types.Mode(mode)
		c.Value = uint32(value)
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			c.At = t
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return results, nil
}

// Clear deletes every recorded conversion and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	return n, nil
}
