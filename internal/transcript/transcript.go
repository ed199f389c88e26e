// Package transcript keeps a local log of conversation turns. The canvas
// itself is deliberately ephemeral; the transcript is the only thing that
// survives a restart, and only as reading material for the user.
package transcript

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Turn struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the transcript database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at_unixms INTEGER NOT NULL
	);`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Append records one turn.
func (s *Store) Append(ctx context.Context, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (role, content, created_at_unixms) VALUES (?, ?, ?)`,
		role, content, time.Now().UnixMilli())
	return err
}

// Recent returns up to n turns, oldest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Turn, error) {
	if n <= 0 {
		n = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, role, content, created_at_unixms
		FROM turns ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		var ms int64
		if err := rows.Scan(&t.ID, &t.Role, &t.Content, &ms); err != nil {
			return nil, err
		}
		t.CreatedAt = time.UnixMilli(ms)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Flip to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
