package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/infra/queue"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
)

var (
	errSheetsNotConfigured = errors.New("Google Sheets no configurado")
	errEmailNotConfigured  = errors.New("correo no configurado")
)

type SubmitBriefUseCase struct {
	Drafts        *DraftRepository
	Sheet         TabularStore
	Notifier      Notifier
	Queue         QueueProducerInterface
	Location      *time.Location
	ClearOnSubmit bool
	Log           *logger.Logger
}

func NewSubmitBriefUseCase(
	drafts *DraftRepository,
	sheet TabularStore,
	notifier Notifier,
	queue QueueProducerInterface,
	loc *time.Location,
	clearOnSubmit bool,
	log *logger.Logger,
) *SubmitBriefUseCase {
	return &SubmitBriefUseCase{
		Drafts:        drafts,
		Sheet:         sheet,
		Notifier:      notifier,
		Queue:         queue,
		Location:      loc,
		ClearOnSubmit: clearOnSubmit,
		Log:           log,
	}
}

func (uc *SubmitBriefUseCase) Execute(ctx context.Context, input SubmitBriefInput) (*SubmitBriefOutput, error) {
	snap, err := uc.Drafts.Get(ctx, input.Key)
	if errors.Is(err, ErrDraftNotFound) {
		return nil, &DomainError{Code: "DRAFT_NOT_FOUND", Message: "No hay un brief en curso para enviar"}
	}
	if err != nil {
		return nil, err
	}
	if snap.Brief.IsCompleted() {
		return nil, entity.ErrBriefCompleted
	}

	draft := snap.Brief.Clone()
	if len(input.Step7) > 0 {
		data, err := entity.DecodeStep(7, input.Step7)
		if err != nil {
			return nil, err
		}
		if err := draft.ApplyStep(7, data); err != nil {
			return nil, err
		}
		// o passo 7 fica salvo mesmo se o envio falhar
		if err := uc.Drafts.SaveNow(ctx, input.Key, draft); err != nil {
			uc.Log.Warn("⚠️ passo 7 não persistido antes do envio", "key", input.Key, "error", err)
		}
	}

	completed := draft.Clone()
	if err := completed.Complete(); err != nil {
		return nil, err
	}

	uc.Log.Info("📨 enviando brief", "brief_id", completed.ID, "client", completed.Step1.FullName)

	// as duas chamadas seguem até o fim mesmo se o cliente desconectar
	if err := uc.deliver(context.WithoutCancel(ctx), completed); err != nil {
		uc.Log.Error("❌ envio do brief falhou", "brief_id", completed.ID, "error", err)
		return nil, err
	}

	uc.persistCompleted(ctx, input.Key, completed)
	uc.publish(ctx, completed)

	uc.Log.Info("✅ brief enviado", "brief_id", completed.ID)
	return &SubmitBriefOutput{
		Brief:   completed,
		Message: "Brief enviado exitosamente",
	}, nil
}

// deliver grava a linha na planilha e envia o email em paralelo. As duas
// chamadas são independentes: uma falha não cancela a outra.
func (uc *SubmitBriefUseCase) deliver(ctx context.Context, b *entity.Brief) error {
	var sheetErr, mailErr error
	var g errgroup.Group

	g.Go(func() error {
		sheetErr = uc.appendRow(ctx, b)
		return nil
	})
	g.Go(func() error {
		mailErr = uc.notify(ctx, b)
		return nil
	})
	_ = g.Wait()

	var failed []string
	var errs []error
	if sheetErr != nil {
		failed = append(failed, ServiceSheets)
		errs = append(errs, fmt.Errorf("Google Sheets: %w", sheetErr))
	}
	if mailErr != nil {
		failed = append(failed, ServiceEmail)
		errs = append(errs, fmt.Errorf("email: %w", mailErr))
	}
	if len(failed) == 0 {
		return nil
	}
	return &ExternalServiceError{Services: failed, Err: errors.Join(errs...)}
}

func (uc *SubmitBriefUseCase) appendRow(ctx context.Context, b *entity.Brief) error {
	if uc.Sheet == nil {
		return errSheetsNotConfigured
	}
	if err := uc.Sheet.EnsureHeaders(ctx, entity.SheetHeaders()); err != nil {
		return err
	}
	return uc.Sheet.Append(ctx, b.ToRow(uc.Location))
}

func (uc *SubmitBriefUseCase) notify(ctx context.Context, b *entity.Brief) error {
	if uc.Notifier == nil {
		return errEmailNotConfigured
	}
	return uc.Notifier.SendBriefNotification(ctx, b)
}

func (uc *SubmitBriefUseCase) persistCompleted(ctx context.Context, key string, b *entity.Brief) {
	var err error
	if uc.ClearOnSubmit {
		err = uc.Drafts.Clear(ctx, key)
	} else {
		err = uc.Drafts.SaveNow(ctx, key, b)
	}
	if err != nil {
		// a linha e o email já saíram; só o estado local ficou para trás
		uc.Log.Warn("⚠️ brief enviado mas rascunho não atualizado", "key", key, "error", err)
	}
}

func (uc *SubmitBriefUseCase) publish(ctx context.Context, b *entity.Brief) {
	if uc.Queue == nil {
		return
	}
	raw, err := entity.Serialize(b)
	if err != nil {
		uc.Log.Warn("⚠️ evento não publicado", "brief_id", b.ID, "error", err)
		return
	}
	payload := queue.BriefCompletedPayload{
		BriefID:        b.ID,
		FullName:       b.Step1.FullName,
		CommercialName: b.Step1.CommercialName,
		Phone:          b.Step1.Phone,
		SquareMeters:   b.Step2.SquareMeters,
		Budget:         entity.Label(entity.FieldBudgetRange, string(b.Step7.BudgetRange)),
		SubmittedAt:    b.Timestamp,
		Origin:         "WEB_WIZARD",
		Brief:          raw,
	}
	if err := uc.Queue.PublishBriefCompleted(ctx, payload); err != nil {
		uc.Log.Warn("⚠️ CRITICAL: brief enviado, mas falha na fila", "brief_id", b.ID, "error", err)
	}
}
