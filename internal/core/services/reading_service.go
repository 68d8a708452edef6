package services

import (
	"context"
	"strings"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type ReadingService struct {
	state *StateService
}

func NewReadingService(state *StateService) *ReadingService {
	return &ReadingService{state: state}
}

type BookFilter struct {
	Status string
	Query  string
}

func (s *ReadingService) Create(ctx context.Context, in domain.BookInput) (*domain.ReadingItem, error) {
	book, err := domain.NewReadingItem(in, s.state.Today())
	if err != nil {
		return nil, err
	}

	err = s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Books = append(st.Books, *book)
		return domain.ChangeBooks, nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// List filters by status and by a case-insensitive match on title or author.
func (s *ReadingService) List(filter BookFilter) []domain.ReadingItem {
	books := s.state.View().Books
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]domain.ReadingItem, 0, len(books))
	for _, b := range books {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Title), query) &&
			!strings.Contains(strings.ToLower(b.Author), query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *ReadingService) Get(id string) (*domain.ReadingItem, error) {
	st := s.state.View()
	i, err := st.FindBook(id)
	if err != nil {
		return nil, err
	}
	b := st.Books[i]
	return &b, nil
}

func (s *ReadingService) Update(ctx context.Context, id string, in domain.BookInput) (*domain.ReadingItem, error) {
	today := s.state.Today()

	var updated domain.ReadingItem
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindBook(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		if err := st.Books[i].Update(in, today); err != nil {
			return domain.ChangeNone, err
		}
		updated = st.Books[i]
		return domain.ChangeBooks, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ReadingService) Delete(ctx context.Context, id string, confirmed bool) error {
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindBook(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		if !confirmed {
			return domain.ChangeNone, domain.ErrConfirmationRequired
		}
		st.Books = append(st.Books[:i], st.Books[i+1:]...)
		return domain.ChangeBooks, nil
	})
}

func (s *ReadingService) Goal() int {
	return s.state.View().ReadingGoal
}

func (s *ReadingService) SetGoal(ctx context.Context, goal int) error {
	if err := domain.ValidateReadingGoal(goal); err != nil {
		return err
	}
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.ReadingGoal = goal
		return domain.ChangeReadingGoal, nil
	})
}

// Monthly reports completions of the current month against the goal.
func (s *ReadingService) Monthly() domain.ReadingProgress {
	st := s.state.View()
	return domain.MonthlyReadingProgress(st.Books, st.ReadingGoal, s.state.Now(), s.state.Location())
}
