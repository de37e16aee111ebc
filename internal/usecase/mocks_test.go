package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/infra/queue"
)

// fakeStore é um DraftStore em memória que conta as gravações.
type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	saveErr error
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	d, ok := s.data[key]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (s *fakeStore) Save(_ context.Context, key string, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data[key] = record
	return nil
}

func (s *fakeStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *fakeStore) put(key string, record []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = record
}

func (s *fakeStore) stored(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[key]
	return d, ok
}

// MockTabularStore
type MockTabularStore struct {
	mock.Mock
}

func (m *MockTabularStore) EnsureHeaders(ctx context.Context, headers []string) error {
	args := m.Called(ctx, headers)
	return args.Error(0)
}

func (m *MockTabularStore) Append(ctx context.Context, row []string) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockTabularStore) InitSheet(ctx context.Context, headers []string) error {
	args := m.Called(ctx, headers)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBriefNotification(ctx context.Context, b *entity.Brief) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishBriefCompleted(ctx context.Context, payload queue.BriefCompletedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
