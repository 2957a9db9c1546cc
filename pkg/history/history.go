// Package history records successful exports in a local sqlite database so
// a past payload can be listed and copied back to the clipboard.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const selectEntry = `SELECT
		id,
		created_at,
		table_id,
		html,
		plain
	FROM exports
	`

// Entry is one recorded export.
type Entry struct {
	ID        string
	CreatedAt time.Time
	TableID   string
	HTML      string
	Plain     string
}

// Store is the export history database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates, if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		table_id TEXT NOT NULL,
		html TEXT NOT NULL,
		plain TEXT NOT NULL
	)`)
	return err
}

// Record stores a new entry and returns its generated id.
func (s *Store) Record(ctx context.Context, tableID, html, plain string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, created_at, table_id, html, plain) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), tableID, html, plain)
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns up to limit entries, newest first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := selectEntry + `ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.TableID, &e.HTML, &e.Plain); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry whose id equals or starts with id. An ambiguous
// prefix is an error.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntry+`WHERE id LIKE ? LIMIT 2`, id+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.TableID, &e.HTML, &e.Plain); err != nil {
			return nil, err
		}
		matches = append(matches, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, sql.ErrNoRows
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("id prefix '%s' is ambiguous", id)
	}
}

// Clear deletes all entries and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exports`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}
