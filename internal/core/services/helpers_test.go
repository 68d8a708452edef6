package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

func ptr[T any](v T) *T {
	return &v
}

// FakeStateRepo keeps persisted documents in memory and records every save.
type FakeStateRepo struct {
	mu      sync.Mutex
	saved   *domain.AppState
	changes []domain.Change
	insight string
	saveErr error
}

func (r *FakeStateRepo) Load(ctx context.Context) (*domain.AppState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		return domain.DefaultAppState(), nil
	}
	c := r.saved.Clone()
	return &c, nil
}

func (r *FakeStateRepo) Save(ctx context.Context, state *domain.AppState, changed domain.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	c := state.Clone()
	r.saved = &c
	r.changes = append(r.changes, changed)
	return nil
}

func (r *FakeStateRepo) SaveInsight(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insight = text
	return nil
}

func (r *FakeStateRepo) LastInsight(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insight == "" {
		return "", domain.ErrKeyNotFound
	}
	return r.insight, nil
}

func (r *FakeStateRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = nil
	r.insight = ""
	return nil
}

func (r *FakeStateRepo) lastChange() domain.Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.changes) == 0 {
		return domain.ChangeNone
	}
	return r.changes[len(r.changes)-1]
}

type MockStateRepo struct {
	mock.Mock
}

func (m *MockStateRepo) Load(ctx context.Context) (*domain.AppState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppState), args.Error(1)
}

func (m *MockStateRepo) Save(ctx context.Context, state *domain.AppState, changed domain.Change) error {
	args := m.Called(ctx, state, changed)
	return args.Error(0)
}

func (m *MockStateRepo) SaveInsight(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *MockStateRepo) LastInsight(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStateRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestState(t *testing.T, now time.Time) (*services.StateService, *FakeStateRepo, *clock) {
	t.Helper()
	repo := &FakeStateRepo{}
	clk := &clock{now: now}
	svc := services.NewStateService(repo, services.WithClock(clk.Now), services.WithLocation(now.Location()))
	return svc, repo, clk
}
