package draftstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // driver SQLite sem cgo

	"github.com/xavierca1/saint-brief/internal/usecase"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS brief_drafts (
	draft_key  TEXT PRIMARY KEY,
	record     BLOB NOT NULL,
	last_saved INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_brief_drafts_last_saved ON brief_drafts(last_saved);
`

// SQLiteStore grava os rascunhos num arquivo local.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório do sqlite: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir sqlite: %w", err)
	}
	// um único escritor evita SQLITE_BUSY entre conexões do pool
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao criar tabela de rascunhos: %w", err)
	}

	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM brief_drafts WHERE draft_key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler rascunho: %w", err)
	}
	return data, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, record []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brief_drafts (draft_key, record, last_saved)
		VALUES (?, ?, ?)
		ON CONFLICT(draft_key) DO UPDATE SET
			record = excluded.record,
			last_saved = excluded.last_saved`,
		key, record, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("erro ao gravar rascunho: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM brief_drafts WHERE draft_key = ?`, key); err != nil {
		return fmt.Errorf("erro ao apagar rascunho: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM brief_drafts WHERE last_saved < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("erro ao expirar rascunhos: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
