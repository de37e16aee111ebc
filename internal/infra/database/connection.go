package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // driver do Postgres
)

// NewDBConnection abre a conexão e testa o Ping
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres não respondeu: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS brief_drafts (
	draft_key  TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	last_saved TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_brief_drafts_last_saved ON brief_drafts (last_saved);

CREATE TABLE IF NOT EXISTS brief_submissions (
	brief_id        UUID PRIMARY KEY,
	full_name       TEXT NOT NULL,
	commercial_name TEXT NOT NULL,
	phone           TEXT NOT NULL,
	square_meters   TEXT NOT NULL,
	budget          TEXT NOT NULL,
	origin          TEXT NOT NULL,
	submitted_at    TIMESTAMPTZ NOT NULL,
	brief           JSONB NOT NULL,
	archived_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema cria as tabelas de rascunhos e envios se ainda não existirem.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("erro ao criar tabelas: %w", err)
	}
	return nil
}
