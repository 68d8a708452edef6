package domain

// Change is a bitmask of the persisted documents touched by a mutation.
type Change uint16

const (
	ChangeStats Change = 1 << iota
	ChangeHabits
	ChangeTasks
	ChangeBooks
	ChangeReadingGoal
	ChangePreferences
	ChangeProfile

	ChangeNone Change = 0
	ChangeAll         = ChangeStats | ChangeHabits | ChangeTasks | ChangeBooks |
		ChangeReadingGoal | ChangePreferences | ChangeProfile
)

func (c Change) Has(flag Change) bool {
	return c&flag != 0
}

// AffectsLedger reports whether the mutation changed any input of today's
// snapshot.
func (c Change) AffectsLedger() bool {
	return c.Has(ChangeStats) || c.Has(ChangeHabits)
}

// AppState is the whole local aggregate. It is owned by the state service
// and only handed out as a copy.
type AppState struct {
	Stats       HealthStats
	Habits      []Habit
	Tasks       []Task
	Books       []ReadingItem
	ReadingGoal int
	Preferences Preferences
	Profile     *UserProfile
}

func DefaultAppState() *AppState {
	return &AppState{
		Stats:       DefaultHealthStats(),
		Habits:      []Habit{},
		Tasks:       []Task{},
		Books:       []ReadingItem{},
		ReadingGoal: DefaultReadingGoal,
	}
}

// Clone returns a deep copy safe to hand to readers.
func (s *AppState) Clone() AppState {
	out := AppState{
		Stats:       s.Stats,
		Habits:      make([]Habit, len(s.Habits)),
		Tasks:       make([]Task, len(s.Tasks)),
		Books:       make([]ReadingItem, len(s.Books)),
		ReadingGoal: s.ReadingGoal,
		Preferences: s.Preferences,
	}
	out.Stats.History = s.Stats.History.Clone()

	for i, h := range s.Habits {
		h.CompletedDays = append([]string(nil), h.CompletedDays...)
		if h.CompletedDays == nil {
			h.CompletedDays = []string{}
		}
		out.Habits[i] = h
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	copy(out.Books, s.Books)

	if s.Profile != nil {
		p := *s.Profile
		p.CustomCategories = append([]string(nil), s.Profile.CustomCategories...)
		out.Profile = &p
	}
	return out
}

// Snapshot captures the current metrics and habit completion for day.
func (s *AppState) Snapshot(day string) DaySnapshot {
	return DaySnapshot{
		Date:            day,
		Water:           s.Stats.Water,
		Sleep:           s.Stats.Sleep,
		Energy:          s.Stats.Energy,
		Caffeine:        s.Stats.Caffeine,
		HabitsCompleted: CountCompletedOn(s.Habits, day),
		TotalHabits:     len(s.Habits),
	}
}

func (s *AppState) FindHabit(id string) (int, error) {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrHabitNotFound
}

func (s *AppState) FindTask(id string) (int, error) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrTaskNotFound
}

func (s *AppState) FindBook(id string) (int, error) {
	for i := range s.Books {
		if s.Books[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrBookNotFound
}

// TasksOn returns the tasks planned for day: one-off tasks dated that day and
// every recurring task.
func (s *AppState) TasksOn(day string) []Task {
	out := []Task{}
	for _, t := range s.Tasks {
		if t.OccursOn(day) {
			out = append(out, t.Clone())
		}
	}
	return out
}
