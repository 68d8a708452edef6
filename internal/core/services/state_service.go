package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

// ChangeHook observes every committed mutation with a copy of the new state.
type ChangeHook func(state domain.AppState, change domain.Change)

type StateOption func(*StateService)

func WithClock(now func() time.Time) StateOption {
	return func(s *StateService) {
		s.now = now
	}
}

func WithLocation(loc *time.Location) StateOption {
	return func(s *StateService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(logger *log.Logger) StateOption {
	return func(s *StateService) {
		if logger != nil {
			s.logger = logger.WithComponent(log.ComponentState)
		}
	}
}

// StateService owns the aggregate. Mutations are serialised by mu and each
// one is persisted before Update returns.
type StateService struct {
	mu     sync.Mutex
	repo   domain.StateRepository
	state  *domain.AppState
	hooks  []ChangeHook
	now    func() time.Time
	loc    *time.Location
	logger *log.Logger
}

func NewStateService(repo domain.StateRepository, opts ...StateOption) *StateService {
	s := &StateService{
		repo:   repo,
		state:  domain.DefaultAppState(),
		now:    time.Now,
		loc:    time.Local,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory aggregate with the persisted one.
func (s *StateService) Load(ctx context.Context) error {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "state loaded",
		log.FieldEntries, len(state.Stats.History),
		"habits", len(state.Habits),
		"tasks", len(state.Tasks),
	)
	return nil
}

// OnChange registers a hook run after each successful mutation.
func (s *StateService) OnChange(hook ChangeHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

func (s *StateService) Now() time.Time {
	return s.now()
}

func (s *StateService) Location() *time.Location {
	return s.loc
}

func (s *StateService) Today() string {
	return domain.LocalDay(s.now(), s.loc)
}

// View returns a deep copy of the aggregate.
func (s *StateService) View() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update runs fn against a working copy of the aggregate. When fn fails the
// aggregate is left untouched. Otherwise the copy is committed, today's
// snapshot is recorded if a ledger input changed, and the changed documents
// are persisted in one write. A persistence failure is returned but the
// committed in-memory state is kept.
func (s *StateService) Update(ctx context.Context, fn func(*domain.AppState) (domain.Change, error)) error {
	s.mu.Lock()

	next := s.state.Clone()
	change, err := fn(&next)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if change == domain.ChangeNone {
		s.mu.Unlock()
		return nil
	}

	if change.AffectsLedger() {
		today := s.Today()
		next.Stats.History.Record(next.Snapshot(today))
		change |= domain.ChangeStats
		s.logger.DebugContext(ctx, "snapshot recorded", log.FieldDate, today, log.FieldEntries, len(next.Stats.History))
	}

	s.state = &next
	saveErr := s.repo.Save(ctx, &next, change)
	hooks := append([]ChangeHook(nil), s.hooks...)
	view := next.Clone()
	s.mu.Unlock()

	if saveErr != nil {
		s.logger.ErrorContext(ctx, "persist state failed",
			log.NewFields().WithOperation(log.OpSave).WithError(saveErr).With(log.FieldChange, uint16(change)).ToSlice()...)
		return fmt.Errorf("persist state: %w", saveErr)
	}

	for _, hook := range hooks {
		hook(view, change)
	}
	return nil
}

// ClearAll wipes every persisted document and resets to defaults.
func (s *StateService) ClearAll(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	s.mu.Lock()
	if err := s.repo.Clear(ctx); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear state: %w", err)
	}
	s.state = domain.DefaultAppState()
	hooks := append([]ChangeHook(nil), s.hooks...)
	view := s.state.Clone()
	s.mu.Unlock()

	s.logger.WarnContext(ctx, "all local data cleared", log.FieldOperation, log.OpClear)
	for _, hook := range hooks {
		hook(view, domain.ChangeAll)
	}
	return nil
}
