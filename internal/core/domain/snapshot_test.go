package domain_test

import (
	"math"
	"testing"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceScore(t *testing.T) {
	t.Run("Targets met", func(t *testing.T) {
		assert.Equal(t, 100, domain.PerformanceScore(8, 3, 10))
	})

	t.Run("Nothing logged", func(t *testing.T) {
		assert.Equal(t, 0, domain.PerformanceScore(0, 0, 0))
	})

	t.Run("Clamped above targets", func(t *testing.T) {
		assert.Equal(t, 100, domain.PerformanceScore(12, 6, 10))
	})

	t.Run("Half of every target", func(t *testing.T) {
		assert.Equal(t, 50, domain.PerformanceScore(4, 1.5, 5))
	})

	t.Run("Monotone in each input", func(t *testing.T) {
		prev := -1
		for sleep := 0.0; sleep <= 14; sleep += 0.5 {
			got := domain.PerformanceScore(sleep, 1.2, 4)
			assert.GreaterOrEqual(t, got, prev)
			assert.LessOrEqual(t, got, 100)
			prev = got
		}

		prev = -1
		for water := 0.0; water <= 6; water += 0.25 {
			got := domain.PerformanceScore(6, water, 4)
			assert.GreaterOrEqual(t, got, prev)
			assert.LessOrEqual(t, got, 100)
			prev = got
		}

		prev = -1
		for energy := 0; energy <= domain.MaxEnergy; energy++ {
			got := domain.PerformanceScore(6, 1.2, energy)
			assert.GreaterOrEqual(t, got, prev)
			assert.LessOrEqual(t, got, 100)
			prev = got
		}
	})
}

func TestAddWater(t *testing.T) {
	assert.Equal(t, 0.75, domain.AddWater(0.5, 0.25))
	assert.Equal(t, 0.0, domain.AddWater(0.2, -0.5))
	assert.Equal(t, 0.3, domain.AddWater(0.1, 0.2))
}

func TestSleepBetween(t *testing.T) {
	tests := []struct {
		bed, wake string
		want      float64
	}{
		{"23:00", "07:00", 8},
		{"22:15", "06:00", 7.8},
		{"01:30", "09:00", 7.5},
		{"07:00", "07:00", 0},
	}
	for _, tt := range tests {
		got, err := domain.SleepBetween(tt.bed, tt.wake)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.bed, tt.wake)
	}

	_, err := domain.SleepBetween("25:00", "07:00")
	assert.ErrorIs(t, err, domain.ErrInvalidClockTime)
}

func TestMetricValidation(t *testing.T) {
	assert.NoError(t, domain.ValidateWater(0))
	assert.ErrorIs(t, domain.ValidateWater(-1), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateSleep(25), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateSleep(math.NaN()), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateSleep(math.Inf(1)), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateSleep(math.Inf(-1)), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateWater(math.Inf(1)), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateEnergy(11), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateEnergy(-1), domain.ErrInvalidMetric)
	assert.ErrorIs(t, domain.ValidateCaffeine(-2), domain.ErrInvalidMetric)
	assert.NoError(t, domain.ValidateSocialBattery(domain.SocialBatteryLow))
	assert.ErrorIs(t, domain.ValidateSocialBattery("full"), domain.ErrInvalidSocialBattery)
}

func TestDaySnapshot_HabitRate(t *testing.T) {
	assert.Equal(t, 0.75, domain.DaySnapshot{HabitsCompleted: 3, TotalHabits: 4}.HabitRate())
	assert.Equal(t, 0.0, domain.DaySnapshot{}.HabitRate())
	assert.Equal(t, 2.0, domain.DaySnapshot{HabitsCompleted: 2}.HabitRate(), "stale completions over zero habits divide by one")
}
