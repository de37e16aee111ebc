package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
)

type DraftSnapshot struct {
	Brief         *entity.Brief
	LastSaved     *time.Time
	HasStoredData bool
}

// DraftRepository junta o store e o autosaver: leituras enxergam primeiro o
// estado pendente e depois o que está gravado.
type DraftRepository struct {
	Store     DraftStore
	Autosaver *DraftAutosaver
	Log       *logger.Logger
}

func NewDraftRepository(store DraftStore, autosaver *DraftAutosaver, log *logger.Logger) *DraftRepository {
	if log == nil {
		log = logger.NewNop()
	}
	return &DraftRepository{Store: store, Autosaver: autosaver, Log: log}
}

// Get devolve ErrDraftNotFound quando não há rascunho utilizável. Registros
// ilegíveis são logados como PersistenceError e tratados como ausentes.
func (r *DraftRepository) Get(ctx context.Context, key string) (*DraftSnapshot, error) {
	pending, hasPending := r.Autosaver.Pending(key)

	data, err := r.Store.Load(ctx, key)
	switch {
	case errors.Is(err, ErrDraftNotFound):
		data = nil
	case err != nil:
		r.Log.Warn("⚠️ rascunho indisponível, seguindo sem ele", "key", key,
			"error", &PersistenceError{Op: "load", Key: key, Err: err})
		data = nil
	}

	snap := &DraftSnapshot{HasStoredData: data != nil}

	if hasPending {
		snap.Brief = pending
		if data != nil {
			var rec DraftRecord
			if json.Unmarshal(data, &rec) == nil && !rec.LastSaved.IsZero() {
				snap.LastSaved = &rec.LastSaved
			}
		}
		return snap, nil
	}

	if data == nil {
		return nil, ErrDraftNotFound
	}

	b, lastSaved, err := DecodeDraft(data)
	if err != nil {
		r.Log.Warn("⚠️ rascunho incompatível descartado", "key", key,
			"error", &PersistenceError{Op: "decode", Key: key, Err: err})
		return nil, ErrDraftNotFound
	}
	snap.Brief = b
	snap.LastSaved = &lastSaved
	return snap, nil
}

// Save agenda a gravação com debounce.
func (r *DraftRepository) Save(key string, b *entity.Brief) {
	r.Autosaver.Schedule(key, b)
}

func (r *DraftRepository) SaveNow(ctx context.Context, key string, b *entity.Brief) error {
	return r.Autosaver.WriteNow(ctx, key, b)
}

func (r *DraftRepository) Clear(ctx context.Context, key string) error {
	if err := r.Autosaver.Clear(ctx, key); err != nil && !errors.Is(err, ErrDraftNotFound) {
		return &PersistenceError{Op: "clear", Key: key, Err: err}
	}
	return nil
}
