package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

// wednesday is 2024-06-12.
var wednesday = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

func TestStatsService_Week(t *testing.T) {
	ctx := context.Background()
	state, _, clk := newTestState(t, wednesday.AddDate(0, 0, -1))
	metrics := services.NewMetricsService(state)
	require.NoError(t, metrics.SetWater(ctx, 2))
	clk.Set(wednesday)

	svc := services.NewStatsService(state, services.NewTranslator("en"))

	w, err := svc.Week(0)
	require.NoError(t, err)
	require.Len(t, w.Buckets, 7)

	labels := make([]string, 0, 7)
	for _, b := range w.Buckets {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}, labels)
	assert.Equal(t, "06 Jun - 12 Jun", w.Title)
	assert.Equal(t, 2.0, w.Buckets[5].Water)
	assert.Zero(t, w.Buckets[6].Water, "missing days are zero-filled")

	prev, err := svc.Week(-1)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-30", prev.Buckets[0].Date)
	assert.Equal(t, "2024-06-05", prev.Buckets[6].Date)

	_, err = svc.Week(1)
	assert.ErrorIs(t, err, domain.ErrFutureWindow)
}

func TestStatsService_MonthAndYear(t *testing.T) {
	state, _, _ := newTestState(t, wednesday)
	svc := services.NewStatsService(state, services.NewTranslator("en"))

	june, err := svc.Month(0)
	require.NoError(t, err)
	assert.Equal(t, "June 2024", june.Title)
	assert.Len(t, june.Buckets, 30)
	assert.Equal(t, "1", june.Buckets[0].Label)

	may, err := svc.Window(domain.ScaleMonth, -1)
	require.NoError(t, err)
	assert.Equal(t, "May 2024", may.Title)
	assert.Len(t, may.Buckets, 31)

	feb, err := svc.Month(-4)
	require.NoError(t, err)
	assert.Len(t, feb.Buckets, 29)

	year, err := svc.Year(0)
	require.NoError(t, err)
	assert.Equal(t, "2024", year.Title)
	require.Len(t, year.Buckets, 12)
	assert.Equal(t, "Jan", year.Buckets[0].Label)
	assert.Equal(t, "2024-12", year.Buckets[11].Date)

	_, err = svc.Window("decade", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)
	_, err = svc.Window(domain.ScaleYear, 1)
	assert.ErrorIs(t, err, domain.ErrFutureWindow)
}

func TestStatsService_Localised(t *testing.T) {
	state, _, _ := newTestState(t, wednesday)
	svc := services.NewStatsService(state, services.NewTranslator("it-IT"))

	june, err := svc.Month(0)
	require.NoError(t, err)
	assert.Equal(t, "giugno 2024", june.Title)
}

func TestStatsService_ScoreAndOverview(t *testing.T) {
	ctx := context.Background()
	state, _, _ := newTestState(t, wednesday)
	metrics := services.NewMetricsService(state)
	habits := services.NewHabitService(state)
	reading := services.NewReadingService(state)
	svc := services.NewStatsService(state, nil)

	_, err := metrics.Apply(ctx, services.UpdateMetricsInput{Sleep: ptr(8.0), Water: ptr(3.0), Energy: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, 100, svc.Score().Score)

	require.NoError(t, reading.SetGoal(ctx, 4))
	_, _ = reading.Create(ctx, domain.BookInput{Title: "A", Status: domain.StatusCompleted})
	_, _ = reading.Create(ctx, domain.BookInput{Title: "B", Status: domain.StatusCompleted})
	_, _ = habits.Create(ctx, services.CreateHabitInput{Name: "Walk", Frequency: 3})

	o := svc.Overview(habits)
	assert.Equal(t, 100, o.Score.Score)
	assert.Equal(t, 50.0, o.Reading.Percentage)
	assert.Len(t, o.Habits, 1)
	assert.Equal(t, 1, o.Days)
}
