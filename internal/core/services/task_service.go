package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type TaskService struct {
	state *StateService
}

func NewTaskService(state *StateService) *TaskService {
	return &TaskService{state: state}
}

// TaskInput describes a task. A non-nil Frequency makes it recurring;
// otherwise it is a one-off bound to Date (today when empty).
type TaskInput struct {
	Title        string
	Priority     string
	ReminderTime string
	Date         string
	Frequency    *int
}

func (s *TaskService) schedule(in TaskInput) domain.Schedule {
	if in.Frequency != nil {
		return domain.Recurring{Frequency: *in.Frequency}
	}
	date := in.Date
	if date == "" {
		date = s.state.Today()
	}
	return domain.OneOff{Date: date}
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(in.Title, in.Priority, in.ReminderTime, s.schedule(in))
	if err != nil {
		return nil, err
	}

	err = s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Tasks = append(st.Tasks, *task)
		return domain.ChangeTasks, nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List() []domain.Task {
	return s.state.View().Tasks
}

// ListForDay returns the plan for day (today when empty).
func (s *TaskService) ListForDay(day string) ([]domain.Task, error) {
	if day == "" {
		day = s.state.Today()
	}
	if !domain.IsValidDay(day) {
		return nil, domain.ErrTaskDateInvalid
	}
	st := s.state.View()
	return st.TasksOn(day), nil
}

func (s *TaskService) Get(id string) (*domain.Task, error) {
	st := s.state.View()
	i, err := st.FindTask(id)
	if err != nil {
		return nil, err
	}
	t := st.Tasks[i]
	return &t, nil
}

func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error) {
	var updated domain.Task
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindTask(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		t := &st.Tasks[i]

		if in.Frequency == nil && in.Date == "" {
			if prev, ok := t.Schedule.(domain.OneOff); ok {
				in.Date = prev.Date
			}
		}

		if err := t.Update(in.Title, in.Priority, in.ReminderTime, s.schedule(in)); err != nil {
			return domain.ChangeNone, err
		}
		updated = t.Clone()
		return domain.ChangeTasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindTask(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
		return domain.ChangeTasks, nil
	})
}

// Toggle flips completion. Recurring tasks toggle day, defaulting to today.
func (s *TaskService) Toggle(ctx context.Context, id, day string) (bool, error) {
	if day == "" {
		day = s.state.Today()
	}

	var done bool
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		i, err := st.FindTask(id)
		if err != nil {
			return domain.ChangeNone, err
		}
		done, err = st.Tasks[i].Toggle(day)
		if err != nil {
			return domain.ChangeNone, err
		}
		return domain.ChangeTasks, nil
	})
	return done, err
}

// DueReminders lists tasks whose reminder should fire at now.
func (s *TaskService) DueReminders(now time.Time) []domain.Task {
	st := s.state.View()
	var due []domain.Task
	for _, t := range st.Tasks {
		if t.ReminderDue(now, s.state.Location()) {
			due = append(due, t)
		}
	}
	return due
}

// MarkNotified flags the given tasks so their reminders fire only once.
// Unknown ids are ignored; they may have been deleted meanwhile.
func (s *TaskService) MarkNotified(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		change := domain.ChangeNone
		for _, id := range ids {
			i, err := st.FindTask(id)
			if err != nil {
				continue
			}
			st.Tasks[i].Notified = true
			change = domain.ChangeTasks
		}
		return change, nil
	})
}
