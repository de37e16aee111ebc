package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/saint-brief/internal/usecase"
)

type DraftRepository struct {
	DB *sql.DB
}

func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{DB: db}
}

func (r *DraftRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var record []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT record FROM brief_drafts WHERE draft_key = $1`, key,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar rascunho: %w", err)
	}
	return record, nil
}

func (r *DraftRepository) Save(ctx context.Context, key string, record []byte) error {
	query := `
		INSERT INTO brief_drafts (draft_key, record, last_saved)
		VALUES ($1, $2, NOW())
		ON CONFLICT (draft_key)
		DO UPDATE SET
			record = EXCLUDED.record,
			last_saved = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, key, string(record)); err != nil {
		return fmt.Errorf("erro ao salvar rascunho: %w", err)
	}
	return nil
}

func (r *DraftRepository) Clear(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM brief_drafts WHERE draft_key = $1`, key); err != nil {
		return fmt.Errorf("erro ao apagar rascunho: %w", err)
	}
	return nil
}

func (r *DraftRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM brief_drafts WHERE last_saved < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("erro ao expirar rascunhos: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
