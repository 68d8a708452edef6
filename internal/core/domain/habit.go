package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrInvalidFrequency = errors.New("invalid frequency (must be 1-7 times per week)")
	ErrInvalidColor     = errors.New("invalid color format (must be #RRGGBB)")
	ErrCategoryEmpty    = errors.New("category cannot be empty")
	ErrHabitDateInvalid = errors.New("invalid completion date (must be YYYY-MM-DD)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	MaxNameLen      = 100
	MinFrequency    = 1
	MaxFrequency    = 7
	DefaultCategory = "Health"
	DefaultColor    = "#6366f1"
)

var DefaultCategories = []string{"Health", "Focus", "Body", "Mind"}

type Habit struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	CompletedDays []string `json:"completedDays"`
	Frequency     int      `json:"frequency"`
	Color         string   `json:"color"`
}

type HabitProgress struct {
	Completed  int     `json:"completed"`
	Target     int     `json:"target"`
	Percentage float64 `json:"percentage"`
}

func validateHabit(name, category, color string, frequency int) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	if strings.TrimSpace(category) == "" {
		return "", ErrCategoryEmpty
	}
	if frequency < MinFrequency || frequency > MaxFrequency {
		return "", ErrInvalidFrequency
	}
	if color != "" && !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}
	return trimmed, nil
}

func NewHabit(name, category, color string, frequency int) (*Habit, error) {
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}

	cleanName, err := validateHabit(name, category, color, frequency)
	if err != nil {
		return nil, err
	}

	if color == "" {
		color = DefaultColor
	}

	return &Habit{
		ID:            uuid.NewString(),
		Name:          cleanName,
		Category:      strings.TrimSpace(category),
		CompletedDays: []string{},
		Frequency:     frequency,
		Color:         color,
	}, nil
}

func (h *Habit) Update(name, category, color string, frequency int) error {
	cleanName, err := validateHabit(name, category, color, frequency)
	if err != nil {
		return err
	}

	if color == "" {
		color = h.Color
	}

	h.Name = cleanName
	h.Category = strings.TrimSpace(category)
	h.Color = color
	h.Frequency = frequency
	return nil
}

func (h *Habit) IsCompletedOn(day string) bool {
	for _, d := range h.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

// Toggle flips the completion of day and reports the new state. Any date is
// accepted, past or future.
func (h *Habit) Toggle(day string) (bool, error) {
	if !IsValidDay(day) {
		return false, ErrHabitDateInvalid
	}

	for i, d := range h.CompletedDays {
		if d == day {
			h.CompletedDays = append(h.CompletedDays[:i:i], h.CompletedDays[i+1:]...)
			return false, nil
		}
	}

	h.CompletedDays = append(h.CompletedDays, day)
	return true, nil
}

// WeeklyProgress counts completions over the seven days ending on today
// against the weekly target frequency.
func (h *Habit) WeeklyProgress(today time.Time, loc *time.Location) HabitProgress {
	window := make(map[string]bool, 7)
	base := Noon(today, loc)
	for i := 0; i < 7; i++ {
		window[base.AddDate(0, 0, -i).Format(DateLayout)] = true
	}

	completed := 0
	for _, d := range h.CompletedDays {
		if window[d] {
			completed++
		}
	}

	target := h.Frequency
	if target < 1 {
		target = 1
	}

	pct := float64(completed) / float64(target) * 100
	if pct > 100 {
		pct = 100
	}

	return HabitProgress{Completed: completed, Target: h.Frequency, Percentage: pct}
}

// Streaks returns the current run of consecutive completed days ending today
// or yesterday, and the longest run ever recorded. Days after today are
// ignored for the current run.
func (h *Habit) Streaks(today time.Time, loc *time.Location) (int, int) {
	if len(h.CompletedDays) == 0 {
		return 0, 0
	}

	unique := make(map[string]bool)
	var days []time.Time
	for _, d := range h.CompletedDays {
		if unique[d] {
			continue
		}
		t, err := ParseDay(d, loc)
		if err != nil {
			continue
		}
		unique[d] = true
		days = append(days, t)
	}

	if len(days) == 0 {
		return 0, 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	consecutive := func(later, earlier time.Time) bool {
		return earlier.AddDate(0, 0, 1).Format(DateLayout) == later.Format(DateLayout)
	}

	now := Noon(today, loc)
	todayKey := now.Format(DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)

	// Future completions never extend or break the current run.
	past := days
	for len(past) > 0 && past[0].Format(DateLayout) > todayKey {
		past = past[1:]
	}

	current := 0
	if len(past) > 0 {
		latest := past[0].Format(DateLayout)
		if latest == todayKey || latest == yesterday {
			current = 1
			for i := 0; i < len(past)-1; i++ {
				if !consecutive(past[i], past[i+1]) {
					break
				}
				current++
			}
		}
	}

	longest := 0
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if consecutive(days[i], days[i+1]) {
			run++
			continue
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if run > longest {
		longest = run
	}

	return current, longest
}

// CountCompletedOn returns how many habits are completed on day.
func CountCompletedOn(habits []Habit, day string) int {
	count := 0
	for i := range habits {
		if habits[i].IsCompletedOn(day) {
			count++
		}
	}
	return count
}
