package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"appresp/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one JSON row per application, ordered by position.
type SQLiteStore struct {
	path string
	log  *zap.Logger

	mu    sync.Mutex
	known []string
}

func (s *SQLiteStore) Path() string   { return s.path }
func (s *SQLiteStore) Writable() bool { return true }

func (s *SQLiteStore) KnownTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return knownOrDefault(s.known)
}

func (s *SQLiteStore) SetKnownTags(tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known = append([]string(nil), tags...)
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	// WAL lets the web server read while the CLI writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_applications_position ON applications(position);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.Application, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT json FROM applications ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var a model.Application
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, fmt.Errorf("decode application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var known []string
	var rawKnown string
	err = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, "known_tags").Scan(&rawKnown)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal([]byte(rawKnown), &known); err != nil {
			return nil, fmt.Errorf("decode known tags: %w", err)
		}
	}

	apps, err = prepare(apps)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.mu.Lock()
	s.known = known
	s.mu.Unlock()

	s.log.Debug("loaded sqlite store", zap.String("path", s.path), zap.Int("applications", len(apps)))
	return apps, nil
}

// Save replaces all rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, apps []model.Application) error {
	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(DocumentVersion)); err != nil {
		return err
	}
	s.mu.Lock()
	known := s.known
	s.mu.Unlock()
	if known != nil {
		raw, _ := json.Marshal(known)
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "known_tags", string(raw)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications`); err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	for i, a := range apps {
		raw, err := json.Marshal(a)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO applications(id, position, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			a.ID, i, string(raw), nowMs); err != nil {
			return fmt.Errorf("insert application %s: %w", a.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("saved sqlite store", zap.String("path", s.path), zap.Int("applications", len(apps)))
	return nil
}
