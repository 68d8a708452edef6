package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/pt_BR"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

// NewTranslator picks calendar labels for a locale code, falling back to
// English.
func NewTranslator(locale string) locales.Translator {
	switch strings.ToLower(strings.ReplaceAll(locale, "-", "_")) {
	case "it", "it_it":
		return it.New()
	case "pt", "pt_br":
		return pt_BR.New()
	}
	return en.New()
}

type StatsService struct {
	state *StateService
	tr    locales.Translator
}

func NewStatsService(state *StateService, tr locales.Translator) *StatsService {
	if tr == nil {
		tr = en.New()
	}
	return &StatsService{
		state: state,
		tr:    tr,
	}
}

type Score struct {
	Score  int     `json:"score"`
	Sleep  float64 `json:"sleep"`
	Water  float64 `json:"water"`
	Energy int     `json:"energy"`
}

type Overview struct {
	Score   Score                  `json:"score"`
	Reading domain.ReadingProgress `json:"reading"`
	Habits  []HabitView            `json:"habits"`
	Days    int                    `json:"daysTracked"`
}

// Window dispatches on scale. Offsets count whole weeks, months or years
// back from the current one and must not be positive.
func (s *StatsService) Window(scale domain.Scale, offset int) (domain.Window, error) {
	switch scale {
	case domain.ScaleWeek:
		return s.Week(offset)
	case domain.ScaleMonth:
		return s.Month(offset)
	case domain.ScaleYear:
		return s.Year(offset)
	}
	return domain.Window{}, domain.ErrInvalidScale
}

func (s *StatsService) Week(offset int) (domain.Window, error) {
	if offset > 0 {
		return domain.Window{}, domain.ErrFutureWindow
	}

	loc := s.state.Location()
	ref := s.state.Now()
	buckets := s.state.View().Stats.History.WeekBuckets(ref, offset, loc)

	for i := range buckets {
		day, _ := time.Parse(domain.DateLayout, buckets[i].Date)
		buckets[i].Label = s.tr.WeekdayAbbreviated(day.Weekday())
	}

	first, _ := time.Parse(domain.DateLayout, buckets[0].Date)
	last, _ := time.Parse(domain.DateLayout, buckets[len(buckets)-1].Date)

	return domain.Window{
		Scale:   domain.ScaleWeek,
		Title:   fmt.Sprintf("%s - %s", s.shortDate(first), s.shortDate(last)),
		Buckets: buckets,
	}, nil
}

func (s *StatsService) Month(offset int) (domain.Window, error) {
	if offset > 0 {
		return domain.Window{}, domain.ErrFutureWindow
	}

	now := domain.Noon(s.state.Now(), s.state.Location())
	target := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 12, 0, 0, 0, time.UTC)
	buckets := s.state.View().Stats.History.MonthBuckets(target.Year(), target.Month())

	for i := range buckets {
		buckets[i].Label = strconv.Itoa(i + 1)
	}

	return domain.Window{
		Scale:   domain.ScaleMonth,
		Title:   fmt.Sprintf("%s %d", s.tr.MonthWide(target.Month()), target.Year()),
		Buckets: buckets,
	}, nil
}

func (s *StatsService) Year(offset int) (domain.Window, error) {
	if offset > 0 {
		return domain.Window{}, domain.ErrFutureWindow
	}

	year := domain.Noon(s.state.Now(), s.state.Location()).Year() + offset
	buckets := s.state.View().Stats.History.YearBuckets(year)

	for i := range buckets {
		buckets[i].Label = s.tr.MonthAbbreviated(time.Month(i + 1))
	}

	return domain.Window{
		Scale:   domain.ScaleYear,
		Title:   strconv.Itoa(year),
		Buckets: buckets,
	}, nil
}

func (s *StatsService) shortDate(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), s.tr.MonthAbbreviated(t.Month()))
}

// Score is the composite of the current, not historical, metrics.
func (s *StatsService) Score() Score {
	stats := s.state.View().Stats
	return Score{
		Score:  domain.PerformanceScore(stats.Sleep, stats.Water, stats.Energy),
		Sleep:  stats.Sleep,
		Water:  stats.Water,
		Energy: stats.Energy,
	}
}

func (s *StatsService) Reading() domain.ReadingProgress {
	st := s.state.View()
	return domain.MonthlyReadingProgress(st.Books, st.ReadingGoal, s.state.Now(), s.state.Location())
}

func (s *StatsService) Overview(habits *HabitService) Overview {
	st := s.state.View()
	return Overview{
		Score:   s.Score(),
		Reading: s.Reading(),
		Habits:  habits.List(),
		Days:    len(st.Stats.History),
	}
}
