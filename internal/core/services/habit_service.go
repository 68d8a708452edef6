package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type HabitService struct {
	state *StateService
}

func NewHabitService(state *StateService) *HabitService {
	return &HabitService{
		state: state,
	}
}

type CreateHabitInput struct {
	Name      string
	Category  string
	Color     string
	Frequency int
}

type UpdateHabitInput struct {
	ID        string
	Name      string
	Category  string
	Color     string
	Frequency int
}

// HabitView is a habit together with its derived weekly figures.
type HabitView struct {
	domain.Habit
	Progress       domain.HabitProgress `json:"progress"`
	CompletedToday bool                 `json:"completedToday"`
	CurrentStreak  int                  `json:"currentStreak"`
	LongestStreak  int                  `json:"longestStreak"`
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func mergeInt(newVal, oldVal int) int {
	if newVal == 0 {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Category, input.Color, input.Frequency)
	if err != nil {
		return nil, err
	}

	err = s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Habits = append(st.Habits, *habit)
		return domain.ChangeHabits, nil
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) List() []HabitView {
	st := s.state.View()
	now := s.state.Now()
	today := s.state.Today()

	out := make([]HabitView, 0, len(st.Habits))
	for i := range st.Habits {
		out = append(out, s.view(st.Habits[i], now, today))
	}
	return out
}

func (s *HabitService) Get(id string) (*HabitView, error) {
	st := s.state.View()
	i, err := st.FindHabit(id)
	if err != nil {
		return nil, err
	}
	v := s.view(st.Habits[i], s.state.Now(), s.state.Today())
	return &v, nil
}

func (s *HabitService) view(h domain.Habit, now time.Time, today string) HabitView {
	current, longest := h.Streaks(now, s.state.Location())
	return HabitView{
		Habit:          h,
		Progress:       h.WeeklyProgress(now, s.state.Location()),
		CompletedToday: h.IsCompletedOn(today),
		CurrentStreak:  current,
		LongestStreak:  longest,
	}
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	var updated domain.Habit
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindHabit(input.ID)
		if err != nil {
			return domain.ChangeNone, err
		}
		h := &st.Habits[i]

		err = h.Update(
			input.Name,
			mergeString(input.Category, h.Category),
			input.Color,
			mergeInt(input.Frequency, h.Frequency),
		)
		if err != nil {
			return domain.ChangeNone, err
		}
		updated = *h
		return domain.ChangeHabits, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a habit. The habit count feeds today's snapshot, so the
// ledger is refreshed as well.
func (s *HabitService) Delete(ctx context.Context, id string, confirmed bool) error {
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindHabit(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		if !confirmed {
			return domain.ChangeNone, domain.ErrConfirmationRequired
		}
		st.Habits = append(st.Habits[:i], st.Habits[i+1:]...)
		return domain.ChangeHabits, nil
	})
}

// Toggle flips completion of the habit on day, defaulting to today.
func (s *HabitService) Toggle(ctx context.Context, id, day string) (bool, error) {
	if day == "" {
		day = s.state.Today()
	}

	var done bool
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindHabit(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		done, err = st.Habits[i].Toggle(day)
		if err != nil {
			return domain.ChangeNone, err
		}
		return domain.ChangeHabits, nil
	})
	return done, err
}
