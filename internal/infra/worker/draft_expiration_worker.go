package worker

import (
	"context"
	"time"

	"github.com/xavierca1/saint-brief/internal/pkg/logger"
	"github.com/xavierca1/saint-brief/internal/usecase"
)

// DraftExpirationWorker apaga periodicamente os rascunhos sem alteração há
// mais de ttl.
type DraftExpirationWorker struct {
	purger       usecase.DraftPurger
	ttl          time.Duration
	tickInterval time.Duration
	log          *logger.Logger
	now          func() time.Time
}

func NewDraftExpirationWorker(purger usecase.DraftPurger, ttl time.Duration, log *logger.Logger) *DraftExpirationWorker {
	return &DraftExpirationWorker{
		purger:       purger,
		ttl:          ttl,
		tickInterval: time.Hour,
		log:          log,
		now:          time.Now,
	}
}

func (w *DraftExpirationWorker) Start(ctx context.Context) {
	w.log.Info("🕒 Draft Expiration Worker iniciado", "ttl", w.ttl.String(), "interval", w.tickInterval.String())

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireOldDrafts(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("⚠️ Draft Expiration Worker encerrado")
			return
		case <-ticker.C:
			w.expireOldDrafts(ctx)
		}
	}
}

func (w *DraftExpirationWorker) expireOldDrafts(ctx context.Context) int {
	cutoff := w.now().Add(-w.ttl)
	n, err := w.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		w.log.Error("❌ erro ao expirar rascunhos", "error", err)
		return 0
	}
	if n > 0 {
		w.log.Info("✅ rascunhos expirados", "count", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return n
}
