package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Record(t *testing.T) {
	t.Run("Same day updates collapse onto one entry", func(t *testing.T) {
		var l domain.Ledger
		l.Record(domain.DaySnapshot{Date: "2024-06-01", Water: 2.5, Sleep: 7.0, Energy: 8, HabitsCompleted: 3, TotalHabits: 4})
		l.Record(domain.DaySnapshot{Date: "2024-06-01", Water: 3.0, Sleep: 7.0, Energy: 8, HabitsCompleted: 3, TotalHabits: 4})

		require.Len(t, l, 1)
		s, ok := l.Find("2024-06-01")
		require.True(t, ok)
		assert.Equal(t, 3.0, s.Water)
	})

	t.Run("Replace keeps the original position", func(t *testing.T) {
		var l domain.Ledger
		l.Record(domain.DaySnapshot{Date: "2024-06-01"})
		l.Record(domain.DaySnapshot{Date: "2024-06-02"})
		l.Record(domain.DaySnapshot{Date: "2024-06-01", Energy: 9})

		require.Len(t, l, 2)
		assert.Equal(t, "2024-06-01", l[0].Date)
		assert.Equal(t, 9, l[0].Energy)
		assert.Equal(t, "2024-06-02", l[1].Date)
	})

	t.Run("Cap drops the oldest entries first", func(t *testing.T) {
		var l domain.Ledger
		start := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < domain.HistoryCap+1; i++ {
			l.Record(domain.DaySnapshot{Date: start.AddDate(0, 0, i).Format(domain.DateLayout)})
		}

		require.Len(t, l, domain.HistoryCap)
		assert.Equal(t, start.AddDate(0, 0, 1).Format(domain.DateLayout), l[0].Date)
		assert.Equal(t, start.AddDate(0, 0, domain.HistoryCap).Format(domain.DateLayout), l[len(l)-1].Date)

		_, found := l.Find(start.Format(domain.DateLayout))
		assert.False(t, found)
	})

	t.Run("Dates stay unique under arbitrary writes", func(t *testing.T) {
		var l domain.Ledger
		days := []string{"2024-01-03", "2024-01-01", "2024-01-03", "2024-01-02", "2024-01-01"}
		for i, d := range days {
			l.Record(domain.DaySnapshot{Date: d, Caffeine: i})
		}

		assert.Len(t, l, 3)
		assert.Len(t, l.ByDate(), 3)
		s, _ := l.Find("2024-01-01")
		assert.Equal(t, 4, s.Caffeine)
	})
}

func TestLedger_Last(t *testing.T) {
	l := domain.Ledger{{Date: "2024-01-01"}, {Date: "2024-01-02"}, {Date: "2024-01-03"}, {Date: "2024-01-04"}}

	last := l.Last(3)
	require.Len(t, last, 3)
	assert.Equal(t, "2024-01-02", last[0].Date)
	assert.Len(t, l.Last(10), 4)
	assert.Empty(t, l.Last(0))
}

func TestLedger_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDates []string
	}{
		{name: "Valid array", input: `[{"date":"2024-01-01","water":1},{"date":"2024-01-02"}]`, wantDates: []string{"2024-01-01", "2024-01-02"}},
		{name: "Object instead of array", input: `{"date":"2024-01-01"}`, wantDates: []string{}},
		{name: "String instead of array", input: `"broken"`, wantDates: []string{}},
		{name: "Null", input: `null`, wantDates: []string{}},
		{name: "Entry with wrong field type is skipped", input: `[{"date":"2024-01-01","water":"lots"},{"date":"2024-01-02"}]`, wantDates: []string{"2024-01-02"}},
		{name: "Missing or invalid date is skipped", input: `[{"water":1},{"date":"01/02/2024"},{"date":"2024-01-03"}]`, wantDates: []string{"2024-01-03"}},
		{name: "Duplicates collapse", input: `[{"date":"2024-01-01","energy":1},{"date":"2024-01-01","energy":7}]`, wantDates: []string{"2024-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l domain.Ledger
			err := json.Unmarshal([]byte(tt.input), &l)
			require.NoError(t, err)

			dates := []string{}
			for _, s := range l {
				dates = append(dates, s.Date)
			}
			assert.Equal(t, tt.wantDates, dates)
		})
	}

	t.Run("Duplicate keeps the last value", func(t *testing.T) {
		var l domain.Ledger
		require.NoError(t, json.Unmarshal([]byte(`[{"date":"2024-01-01","energy":1},{"date":"2024-01-01","energy":7}]`), &l))
		assert.Equal(t, 7, l[0].Energy)
	})

	t.Run("Malformed history inside stats yields empty ledger", func(t *testing.T) {
		var stats domain.HealthStats
		err := json.Unmarshal([]byte(`{"water":1.5,"energy":6,"history":{"oops":true}}`), &stats)
		require.NoError(t, err)
		assert.Equal(t, 1.5, stats.Water)
		assert.Empty(t, stats.History)
	})
}

func TestDaySnapshot_JSONShape(t *testing.T) {
	raw, err := json.Marshal(domain.DaySnapshot{Date: "2024-06-01", Water: 2.5, Sleep: 7, Energy: 8, HabitsCompleted: 3, TotalHabits: 4})
	require.NoError(t, err)

	assert.JSONEq(t, `{"date":"2024-06-01","water":2.5,"sleep":7,"energy":8,"caffeine":0,"habitsCompleted":3,"totalHabits":4}`, string(raw))
}
