package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
)

const DefaultDebounce = 1500 * time.Millisecond

type pendingDraft struct {
	brief *entity.Brief
	timer *time.Timer
	gen   uint64
}

// DraftAutosaver agrupa mutações seguidas de um mesmo rascunho: cada Schedule
// reinicia o timer da chave e só o último estado é gravado quando ele dispara.
type DraftAutosaver struct {
	store   DraftStore
	delay   time.Duration
	log     *logger.Logger
	now     func() time.Time
	OnWrite func(err error)

	mu      sync.Mutex
	pending map[string]*pendingDraft
	closed  bool

	// serializa as gravações; uma escrita antiga nunca sobrescreve uma nova
	writeMu sync.Mutex
}

func NewDraftAutosaver(store DraftStore, delay time.Duration, log *logger.Logger) *DraftAutosaver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &DraftAutosaver{
		store:   store,
		delay:   delay,
		log:     log,
		now:     time.Now,
		pending: make(map[string]*pendingDraft),
	}
}

// Schedule guarda uma cópia do brief e (re)inicia o timer da chave.
func (a *DraftAutosaver) Schedule(key string, b *entity.Brief) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		a.log.Warn("⚠️ autosave ignorado após encerramento", "key", key)
		return
	}

	p, ok := a.pending[key]
	if !ok {
		p = &pendingDraft{}
		a.pending[key] = p
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.brief = b.Clone()
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(a.delay, func() { a.fire(key, gen) })
}

// Pending devolve o estado ainda não gravado da chave, se houver.
func (a *DraftAutosaver) Pending(key string) (*entity.Brief, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.pending[key]
	if !ok {
		return nil, false
	}
	return p.brief.Clone(), true
}

// Cancel descarta o estado pendente da chave sem gravá-lo.
func (a *DraftAutosaver) Cancel(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[key]; ok {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(a.pending, key)
	}
}

// WriteNow cancela o timer da chave e grava o brief imediatamente.
func (a *DraftAutosaver) WriteNow(ctx context.Context, key string, b *entity.Brief) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	a.Cancel(key)
	return a.write(ctx, key, b)
}

// Clear cancela o pendente e apaga o registro gravado da chave.
func (a *DraftAutosaver) Clear(ctx context.Context, key string) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	a.Cancel(key)
	return a.store.Clear(ctx, key)
}

// Flush grava todos os rascunhos pendentes sem esperar o debounce.
func (a *DraftAutosaver) Flush(ctx context.Context) error {
	type job struct {
		key   string
		brief *entity.Brief
		gen   uint64
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	jobs := make([]job, 0, len(a.pending))
	for key, p := range a.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		jobs = append(jobs, job{key: key, brief: p.brief, gen: p.gen})
	}
	a.mu.Unlock()

	var errs []error
	for _, j := range jobs {
		if err := a.write(ctx, j.key, j.brief); err != nil {
			errs = append(errs, err)
		}
		a.done(j.key, j.gen)
	}
	return errors.Join(errs...)
}

// Close impede novos agendamentos e grava o que estiver pendente.
func (a *DraftAutosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush(ctx)
}

func (a *DraftAutosaver) fire(key string, gen uint64) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	p, ok := a.pending[key]
	if !ok || p.gen != gen {
		a.mu.Unlock()
		return
	}
	b := p.brief
	a.mu.Unlock()

	// erro já registrado em write; o autosave nunca propaga falhas
	_ = a.write(context.Background(), key, b)
	a.done(key, gen)
}

// done remove a entrada só se nenhuma mutação nova chegou durante a escrita.
func (a *DraftAutosaver) done(key string, gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[key]; ok && p.gen == gen {
		delete(a.pending, key)
	}
}

// write exige writeMu.
func (a *DraftAutosaver) write(ctx context.Context, key string, b *entity.Brief) error {
	err := a.save(ctx, key, b)
	if a.OnWrite != nil {
		a.OnWrite(err)
	}
	if err != nil {
		a.log.Error("❌ falha ao salvar rascunho", "key", key, "error", err)
		return err
	}
	a.log.Debug("💾 rascunho salvo", "key", key, "brief_id", b.ID)
	return nil
}

func (a *DraftAutosaver) save(ctx context.Context, key string, b *entity.Brief) error {
	data, err := EncodeDraft(b, a.now())
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := a.store.Save(ctx, key, data); err != nil {
		return &PersistenceError{Op: "save", Key: key, Err: err}
	}
	return nil
}
