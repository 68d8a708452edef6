package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskTitleEmpty     = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong   = errors.New("task title is too long (max 100 chars)")
	ErrInvalidPriority    = errors.New("invalid priority (must be low, medium, or high)")
	ErrInvalidReminder    = errors.New("invalid reminder format (must be HH:MM 24h)")
	ErrTaskDateInvalid    = errors.New("invalid task date (must be YYYY-MM-DD)")
	ErrTaskScheduleMissed = errors.New("task schedule is missing")
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Schedule is either OneOff or Recurring.
type Schedule interface {
	isSchedule()
}

// OneOff binds a task to a single day with a single completion flag.
type OneOff struct {
	Date      string
	Completed bool
}

// Recurring tracks a weekly target and the set of days it was done.
type Recurring struct {
	Frequency     int
	CompletedDays []string
}

func (OneOff) isSchedule()    {}
func (Recurring) isSchedule() {}

type Task struct {
	ID           string
	Title        string
	Priority     string
	ReminderTime string
	Notified     bool
	Schedule     Schedule
}

func validateTask(title, priority, reminder string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTaskTitleEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", ErrTaskTitleTooLong
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return "", ErrInvalidPriority
	}
	if reminder != "" && !IsValidClock(reminder) {
		return "", ErrInvalidReminder
	}
	return trimmed, nil
}

func validateSchedule(s Schedule) error {
	switch v := s.(type) {
	case OneOff:
		if !IsValidDay(v.Date) {
			return ErrTaskDateInvalid
		}
	case Recurring:
		if v.Frequency < MinFrequency || v.Frequency > MaxFrequency {
			return ErrInvalidFrequency
		}
	default:
		return ErrTaskScheduleMissed
	}
	return nil
}

func NewTask(title, priority, reminder string, schedule Schedule) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	cleanTitle, err := validateTask(title, priority, reminder)
	if err != nil {
		return nil, err
	}
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}

	if r, ok := schedule.(Recurring); ok && r.CompletedDays == nil {
		r.CompletedDays = []string{}
		schedule = r
	}

	return &Task{
		ID:           uuid.NewString(),
		Title:        cleanTitle,
		Priority:     priority,
		ReminderTime: reminder,
		Schedule:     schedule,
	}, nil
}

// Update replaces the editable fields. Completion state carries over when
// the variant is unchanged; the notified flag resets if the reminder moves.
func (t *Task) Update(title, priority, reminder string, schedule Schedule) error {
	if priority == "" {
		priority = t.Priority
	}

	cleanTitle, err := validateTask(title, priority, reminder)
	if err != nil {
		return err
	}
	if err := validateSchedule(schedule); err != nil {
		return err
	}

	switch next := schedule.(type) {
	case OneOff:
		if prev, ok := t.Schedule.(OneOff); ok {
			next.Completed = prev.Completed
		}
		schedule = next
	case Recurring:
		if prev, ok := t.Schedule.(Recurring); ok {
			next.CompletedDays = prev.CompletedDays
		}
		if next.CompletedDays == nil {
			next.CompletedDays = []string{}
		}
		schedule = next
	}

	if reminder != t.ReminderTime {
		t.Notified = false
	}

	t.Title = cleanTitle
	t.Priority = priority
	t.ReminderTime = reminder
	t.Schedule = schedule
	return nil
}

func (t *Task) IsRecurring() bool {
	_, ok := t.Schedule.(Recurring)
	return ok
}

// Toggle flips completion. One-off tasks ignore day; recurring tasks toggle
// day in their completed set.
func (t *Task) Toggle(day string) (bool, error) {
	switch s := t.Schedule.(type) {
	case OneOff:
		s.Completed = !s.Completed
		t.Schedule = s
		return s.Completed, nil
	case Recurring:
		if !IsValidDay(day) {
			return false, ErrTaskDateInvalid
		}
		for i, d := range s.CompletedDays {
			if d == day {
				s.CompletedDays = append(s.CompletedDays[:i:i], s.CompletedDays[i+1:]...)
				t.Schedule = s
				return false, nil
			}
		}
		s.CompletedDays = append(s.CompletedDays, day)
		t.Schedule = s
		return true, nil
	}
	return false, ErrTaskScheduleMissed
}

// OccursOn reports whether the task shows up in the plan for day. Recurring
// tasks appear every day for check-in.
func (t *Task) OccursOn(day string) bool {
	switch s := t.Schedule.(type) {
	case OneOff:
		return s.Date == day
	case Recurring:
		return true
	}
	return false
}

func (t *Task) IsCompletedOn(day string) bool {
	switch s := t.Schedule.(type) {
	case OneOff:
		return s.Completed
	case Recurring:
		for _, d := range s.CompletedDays {
			if d == day {
				return true
			}
		}
	}
	return false
}

// ReminderDue reports whether a one-off task's reminder time has been
// reached on its day and has not fired yet.
func (t *Task) ReminderDue(now time.Time, loc *time.Location) bool {
	if t.ReminderTime == "" || t.Notified {
		return false
	}
	s, ok := t.Schedule.(OneOff)
	if !ok || s.Completed {
		return false
	}
	if s.Date != LocalDay(now, loc) {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format("15:04") >= t.ReminderTime
}

func (t Task) Clone() Task {
	if r, ok := t.Schedule.(Recurring); ok {
		days := make([]string, len(r.CompletedDays))
		copy(days, r.CompletedDays)
		t.Schedule = Recurring{Frequency: r.Frequency, CompletedDays: days}
	}
	return t
}

type taskJSON struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Date          string   `json:"date,omitempty"`
	ReminderTime  string   `json:"reminderTime,omitempty"`
	Completed     bool     `json:"completed"`
	CompletedDays *[]string `json:"completedDays,omitempty"`
	Frequency     *int     `json:"frequency,omitempty"`
	Priority      string   `json:"priority"`
	Notified      bool     `json:"notified,omitempty"`
}

// MarshalJSON keeps the persisted shape where a present frequency marks a
// recurring task. Recurring tasks always carry completedDays, even when empty.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		ID:           t.ID,
		Title:        t.Title,
		ReminderTime: t.ReminderTime,
		Priority:     t.Priority,
		Notified:     t.Notified,
	}

	switch s := t.Schedule.(type) {
	case OneOff:
		out.Date = s.Date
		out.Completed = s.Completed
	case Recurring:
		freq := s.Frequency
		out.Frequency = &freq
		days := s.CompletedDays
		if days == nil {
			days = []string{}
		}
		out.CompletedDays = &days
	}

	return json.Marshal(out)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	t.ID = in.ID
	t.Title = in.Title
	t.Priority = in.Priority
	t.ReminderTime = in.ReminderTime
	t.Notified = in.Notified

	if in.Frequency != nil {
		days := []string{}
		if in.CompletedDays != nil && *in.CompletedDays != nil {
			days = *in.CompletedDays
		}
		t.Schedule = Recurring{Frequency: *in.Frequency, CompletedDays: days}
		return nil
	}

	t.Schedule = OneOff{Date: in.Date, Completed: in.Completed}
	return nil
}
