package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
	"github.com/xavierca1/saint-brief/internal/report"
)

// StartBriefUseCase retoma o rascunho da sessão ou cria um brief vazio.
type StartBriefUseCase struct {
	Drafts *DraftRepository
	Log    *logger.Logger
}

func NewStartBriefUseCase(drafts *DraftRepository, log *logger.Logger) *StartBriefUseCase {
	return &StartBriefUseCase{Drafts: drafts, Log: log}
}

func (uc *StartBriefUseCase) Execute(ctx context.Context, key string) (*BriefOutput, error) {
	snap, err := uc.Drafts.Get(ctx, key)
	if err == nil {
		return newBriefOutput(snap, true), nil
	}
	if !errors.Is(err, ErrDraftNotFound) {
		return nil, err
	}

	b := entity.NewEmptyBrief()
	uc.Drafts.Save(key, b)
	uc.Log.Info("🆕 novo brief iniciado", "key", key, "brief_id", b.ID)
	return newBriefOutput(&DraftSnapshot{Brief: b}, false), nil
}

type GetBriefUseCase struct {
	Drafts *DraftRepository
}

func NewGetBriefUseCase(drafts *DraftRepository) *GetBriefUseCase {
	return &GetBriefUseCase{Drafts: drafts}
}

func (uc *GetBriefUseCase) Execute(ctx context.Context, key string) (*BriefOutput, error) {
	snap, err := uc.Drafts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return newBriefOutput(snap, true), nil
}

// ApplyStepUseCase decodifica o payload de um passo e o aplica sobre o
// rascunho. Sem rascunho, começa de um brief vazio.
type ApplyStepUseCase struct {
	Drafts *DraftRepository
	Log    *logger.Logger
}

func NewApplyStepUseCase(drafts *DraftRepository, log *logger.Logger) *ApplyStepUseCase {
	return &ApplyStepUseCase{Drafts: drafts, Log: log}
}

func (uc *ApplyStepUseCase) Execute(ctx context.Context, input ApplyStepInput) (*BriefOutput, error) {
	data, err := entity.DecodeStep(input.Step, input.Data)
	if err != nil {
		return nil, err
	}

	snap, err := uc.Drafts.Get(ctx, input.Key)
	if errors.Is(err, ErrDraftNotFound) {
		snap = &DraftSnapshot{Brief: entity.NewEmptyBrief()}
	} else if err != nil {
		return nil, err
	}

	b := snap.Brief.Clone()
	if err := b.ApplyStep(input.Step, data); err != nil {
		return nil, err
	}

	uc.Drafts.Save(input.Key, b)
	uc.Log.Debug("✏️ passo aplicado", "key", input.Key, "step", input.Step, "brief_id", b.ID)

	snap.Brief = b
	return newBriefOutput(snap, true), nil
}

type ClearDraftUseCase struct {
	Drafts *DraftRepository
	Log    *logger.Logger
}

func NewClearDraftUseCase(drafts *DraftRepository, log *logger.Logger) *ClearDraftUseCase {
	return &ClearDraftUseCase{Drafts: drafts, Log: log}
}

func (uc *ClearDraftUseCase) Execute(ctx context.Context, key string) error {
	if err := uc.Drafts.Clear(ctx, key); err != nil {
		// falha ao apagar não impede o usuário de recomeçar
		uc.Log.Warn("⚠️ falha ao limpar rascunho", "key", key, "error", err)
	}
	return nil
}

// PreviewBriefUseCase monta a leitura rotulada do rascunho e o scope draft.
type PreviewBriefUseCase struct {
	Drafts   *DraftRepository
	Location *time.Location
	Now      func() time.Time
}

func NewPreviewBriefUseCase(drafts *DraftRepository, loc *time.Location) *PreviewBriefUseCase {
	return &PreviewBriefUseCase{Drafts: drafts, Location: loc, Now: time.Now}
}

func (uc *PreviewBriefUseCase) Execute(ctx context.Context, key string) (*PreviewOutput, error) {
	snap, err := uc.Drafts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &PreviewOutput{
		View:    report.BuildView(snap.Brief, uc.Location),
		Missing: missingOrEmpty(snap.Brief),
	}, nil
}

func (uc *PreviewBriefUseCase) ScopeDraft(ctx context.Context, key string, lang report.Language) (string, error) {
	snap, err := uc.Drafts.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return report.ScopeDraft(snap.Brief, lang, uc.Now().In(uc.location())), nil
}

func (uc *PreviewBriefUseCase) location() *time.Location {
	if uc.Location == nil {
		return time.UTC
	}
	return uc.Location
}

func newBriefOutput(snap *DraftSnapshot, resumed bool) *BriefOutput {
	return &BriefOutput{
		Brief:         snap.Brief,
		LastSaved:     snap.LastSaved,
		HasStoredData: snap.HasStoredData,
		Resumed:       resumed,
		Missing:       missingOrEmpty(snap.Brief),
	}
}

func missingOrEmpty(b *entity.Brief) []entity.FieldError {
	missing := b.MissingFields()
	if missing == nil {
		return []entity.FieldError{}
	}
	return missing
}
