package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/infra/queue"
)

// DraftStore guarda o registro serializado de um rascunho por chave de sessão.
// Load devolve ErrDraftNotFound quando não há nada salvo.
type DraftStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, record []byte) error
	Clear(ctx context.Context, key string) error
}

// DraftPurger é implementado pelos stores que sabem expirar rascunhos antigos.
type DraftPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type TabularStore interface {
	EnsureHeaders(ctx context.Context, headers []string) error
	Append(ctx context.Context, row []string) error
}

type SheetInitializer interface {
	InitSheet(ctx context.Context, headers []string) error
}

type Notifier interface {
	SendBriefNotification(ctx context.Context, b *entity.Brief) error
}

type QueueProducerInterface interface {
	PublishBriefCompleted(ctx context.Context, payload queue.BriefCompletedPayload) error
}
