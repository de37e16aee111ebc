package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/infra/queue"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
	"github.com/xavierca1/saint-brief/internal/testutil"
)

type submitFixture struct {
	store    *fakeStore
	drafts   *DraftRepository
	sheet    *MockTabularStore
	notifier *MockNotifier
	queue    *MockQueueProducer
	uc       *SubmitBriefUseCase
}

func newSubmitFixture(t *testing.T) *submitFixture {
	f := &submitFixture{
		store:    newFakeStore(),
		sheet:    new(MockTabularStore),
		notifier: new(MockNotifier),
		queue:    new(MockQueueProducer),
	}
	f.drafts = newTestDrafts(t, f.store)
	f.uc = NewSubmitBriefUseCase(f.drafts, f.sheet, f.notifier, f.queue, time.UTC, false, logger.NewNop())
	return f
}

// TestSubmitBriefSuccess - linha, email e evento com o brief concluído
func TestSubmitBriefSuccess(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)
	storeDraft(t, f.store, "s1", testutil.DraftBrief(t))

	f.sheet.On("EnsureHeaders", mock.Anything, entity.SheetHeaders()).Return(nil)
	f.sheet.On("Append", mock.Anything, mock.MatchedBy(func(row []string) bool {
		return len(row) == len(entity.SheetHeaders()) && row[1] == "Dra. Ana López" && row[len(row)-1] == "$250,000 – $330,000"
	})).Return(nil)
	f.notifier.On("SendBriefNotification", mock.Anything, mock.MatchedBy(func(b *entity.Brief) bool {
		return b.IsCompleted()
	})).Return(nil)
	f.queue.On("PublishBriefCompleted", mock.Anything, mock.MatchedBy(func(p queue.BriefCompletedPayload) bool {
		return p.FullName == "Dra. Ana López" && p.Origin == "WEB_WIZARD" && len(p.Brief) > 0
	})).Return(nil)

	out, err := f.uc.Execute(ctx, SubmitBriefInput{
		Key:   "s1",
		Step7: json.RawMessage(`{"budgetRange":"250-330k"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, out.Brief.Status)

	f.sheet.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.queue.AssertExpectations(t)

	stored := decodeStored(t, f.store, "s1")
	assert.True(t, stored.IsCompleted())

	// reenviar é recusado
	_, err = f.uc.Execute(ctx, SubmitBriefInput{Key: "s1"})
	assert.ErrorIs(t, err, entity.ErrBriefCompleted)
}

func TestSubmitBriefClearsDraftWhenConfigured(t *testing.T) {
	f := newSubmitFixture(t)
	f.uc.ClearOnSubmit = true
	storeDraft(t, f.store, "s1", testutil.CompleteBrief(t))

	f.sheet.On("EnsureHeaders", mock.Anything, mock.Anything).Return(nil)
	f.sheet.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBriefNotification", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("PublishBriefCompleted", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "s1"})
	require.NoError(t, err)

	_, ok := f.store.stored("s1")
	assert.False(t, ok)
}

// TestSubmitBriefIncomplete - passo 4 nunca aplicado bloqueia o envio
func TestSubmitBriefIncomplete(t *testing.T) {
	f := newSubmitFixture(t)
	b := entity.NewEmptyBrief()
	for i, step := range testutil.CompleteSteps() {
		if i == 3 {
			continue
		}
		require.NoError(t, b.ApplyStep(step.StepNumber(), step))
	}
	storeDraft(t, f.store, "s1", b)

	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "s1"})

	var ie *entity.IncompleteBriefError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.FieldNames(), "step4.cabinetType")
	assert.Equal(t, []int{4}, ie.Steps())
	f.sheet.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendBriefNotification", mock.Anything, mock.Anything)
}

// TestSubmitBriefTamperedDraft - passo aplicado que não valida mais é descartado
func TestSubmitBriefTamperedDraft(t *testing.T) {
	f := newSubmitFixture(t)
	b := testutil.CompleteBrief(t)
	b.Step4.CabinetType = entity.NewSelection()
	storeDraft(t, f.store, "s1", b)

	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "s1"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "DRAFT_NOT_FOUND", de.Code)
	f.sheet.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendBriefNotification", mock.Anything, mock.Anything)
}

func TestSubmitBriefInvalidStep7(t *testing.T) {
	f := newSubmitFixture(t)
	storeDraft(t, f.store, "s1", testutil.DraftBrief(t))

	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{
		Key:   "s1",
		Step7: json.RawMessage(`{"budgetRange":"1M"}`),
	})

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 7, ve.Step)
}

func TestSubmitBriefWithoutDraft(t *testing.T) {
	f := newSubmitFixture(t)
	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "none"})
	assert.True(t, IsDomainError(err))
}

// TestSubmitBriefServiceFailureKeepsDraft - email falha, planilha grava; o brief continua draft
func TestSubmitBriefServiceFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	f := newSubmitFixture(t)
	storeDraft(t, f.store, "s1", testutil.DraftBrief(t))

	f.sheet.On("EnsureHeaders", mock.Anything, mock.Anything).Return(nil)
	f.sheet.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBriefNotification", mock.Anything, mock.Anything).Return(errors.New("smtp: 535 auth failed"))

	_, err := f.uc.Execute(ctx, SubmitBriefInput{
		Key:   "s1",
		Step7: json.RawMessage(`{"budgetRange":"120-180k"}`),
	})

	var se *ExternalServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{ServiceEmail}, se.Services)
	assert.Contains(t, se.Error(), "535")

	// as duas chamadas foram feitas mesmo com a falha de uma delas
	f.sheet.AssertCalled(t, "Append", mock.Anything, mock.Anything)
	f.queue.AssertNotCalled(t, "PublishBriefCompleted", mock.Anything, mock.Anything)

	stored := decodeStored(t, f.store, "s1")
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.Equal(t, entity.Budget120To180, stored.Step7.BudgetRange)
}

func TestSubmitBriefBothServicesFail(t *testing.T) {
	f := newSubmitFixture(t)
	storeDraft(t, f.store, "s1", testutil.CompleteBrief(t))

	f.sheet.On("EnsureHeaders", mock.Anything, mock.Anything).Return(errors.New("403 forbidden"))
	f.notifier.On("SendBriefNotification", mock.Anything, mock.Anything).Return(errors.New("dial tcp: timeout"))

	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "s1"})

	var se *ExternalServiceError
	require.ErrorAs(t, err, &se)
	assert.ElementsMatch(t, []string{ServiceSheets, ServiceEmail}, se.Services)
	f.sheet.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSubmitBriefQueueFailureIsNotFatal(t *testing.T) {
	f := newSubmitFixture(t)
	storeDraft(t, f.store, "s1", testutil.CompleteBrief(t))

	f.sheet.On("EnsureHeaders", mock.Anything, mock.Anything).Return(nil)
	f.sheet.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBriefNotification", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("PublishBriefCompleted", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	out, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "s1"})
	require.NoError(t, err)
	assert.True(t, out.Brief.IsCompleted())
}

func TestSubmitBriefWithoutIntegrations(t *testing.T) {
	f := newSubmitFixture(t)
	f.uc.Sheet = nil
	f.uc.Notifier = nil
	f.uc.Queue = nil
	storeDraft(t, f.store, "s1", testutil.CompleteBrief(t))

	_, err := f.uc.Execute(context.Background(), SubmitBriefInput{Key: "s1"})

	var se *ExternalServiceError
	require.ErrorAs(t, err, &se)
	assert.ElementsMatch(t, []string{ServiceSheets, ServiceEmail}, se.Services)
}

func TestInitSheetUseCase(t *testing.T) {
	sheet := new(MockTabularStore)
	sheet.On("InitSheet", mock.Anything, entity.SheetHeaders()).Return(nil).Once()

	out, err := NewInitSheetUseCase(sheet, logger.NewNop()).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 28, out.Columns)
	sheet.AssertExpectations(t)

	failing := new(MockTabularStore)
	failing.On("InitSheet", mock.Anything, mock.Anything).Return(errors.New("quota"))
	_, err = NewInitSheetUseCase(failing, logger.NewNop()).Execute(context.Background())
	var se *ExternalServiceError
	assert.ErrorAs(t, err, &se)

	_, err = NewInitSheetUseCase(nil, logger.NewNop()).Execute(context.Background())
	assert.True(t, IsDomainError(err))
}
