package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/saint-brief/internal/infra/queue"
)

// SubmissionRepository arquiva os briefs concluídos que chegam pela fila.
type SubmissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Archive é idempotente: reentregas do mesmo brief não duplicam a linha.
func (r *SubmissionRepository) Archive(ctx context.Context, p queue.BriefCompletedPayload) error {
	query := `
		INSERT INTO brief_submissions
			(brief_id, full_name, commercial_name, phone, square_meters, budget, origin, submitted_at, brief)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (brief_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.BriefID,
		p.FullName,
		p.CommercialName,
		p.Phone,
		p.SquareMeters,
		p.Budget,
		p.Origin,
		p.SubmittedAt,
		string(p.Brief),
	)
	if err != nil {
		return fmt.Errorf("erro ao arquivar brief %s: %w", p.BriefID, err)
	}
	return nil
}
