package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"toiletmap-api/internal/models"

	_ "modernc.org/sqlite"
)

// DiaryStore keeps diary entries recorded while the remote store is
// unreachable, until they are synced.
type DiaryStore struct {
	db *sql.DB
}

// OpenDiaryStore opens the sqlite file at path, creating its directory.
func OpenDiaryStore(path string) (*DiaryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("repository: failed to create diary directory: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open diary store: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &DiaryStore{db: db}, nil
}

// Close closes the database.
func (s *DiaryStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// InitSchema creates the local diary table.
func (s *DiaryStore) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS local_diaries (
			id TEXT PRIMARY KEY,
			sender TEXT NOT NULL,
			diary_type TEXT NOT NULL,
			date TEXT NOT NULL,
			memo TEXT NOT NULL DEFAULT '',
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			toilet_id TEXT NOT NULL DEFAULT '',
			at_home INTEGER NOT NULL DEFAULT 0,
			shared_users TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_local_diaries_sender_date ON local_diaries(sender, date);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: failed to init diary schema: %w", err)
		}
	}
	return nil
}

// Save inserts or replaces d.
func (s *DiaryStore) Save(ctx context.Context, d models.DiaryEntry) error {
	shared, err := json.Marshal(d.SharedUsers)
	if err != nil {
		return fmt.Errorf("repository: failed to encode shared users: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO local_diaries
			(id, sender, diary_type, date, memo, latitude, longitude, toilet_id, at_home, shared_users, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Sender, string(d.Type), d.Date.UTC().Format(time.RFC3339Nano), d.Memo,
		d.Latitude, d.Longitude, d.ToiletID, d.AtHome, string(shared), d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("repository: failed to save local diary: %w", err)
	}
	return nil
}

// List returns the sender's local entries, oldest first.
func (s *DiaryStore) List(ctx context.Context, sender string) ([]models.DiaryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, diary_type, date, memo, latitude, longitude, toilet_id, at_home, shared_users, created_at
		FROM local_diaries
		WHERE sender = ?
		ORDER BY date`, sender)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query local diaries: %w", err)
	}
	defer rows.Close()

	entries := []models.DiaryEntry{}
	for rows.Next() {
		var (
			d                      models.DiaryEntry
			typ, date, shared, cAt string
		)
		if err := rows.Scan(&d.ID, &d.Sender, &typ, &date, &d.Memo, &d.Latitude, &d.Longitude, &d.ToiletID, &d.AtHome, &shared, &cAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan local diary: %w", err)
		}
		d.Type = models.DiaryType(typ)
		if d.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("repository: bad local diary date %q: %w", date, err)
		}
		if d.CreatedAt, err = time.Parse(time.RFC3339Nano, cAt); err != nil {
			return nil, fmt.Errorf("repository: bad local diary created_at %q: %w", cAt, err)
		}
		if err := json.Unmarshal([]byte(shared), &d.SharedUsers); err != nil {
			return nil, fmt.Errorf("repository: bad local diary shared users: %w", err)
		}
		entries = append(entries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating local diaries: %w", err)
	}
	return entries, nil
}

// Delete removes the given entries.
func (s *DiaryStore) Delete(ctx context.Context, ids ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: failed to begin local diary delete: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM local_diaries WHERE id = ?`, id); err != nil {
			return fmt.Errorf("repository: failed to delete local diary %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: failed to commit local diary delete: %w", err)
	}
	return nil
}
