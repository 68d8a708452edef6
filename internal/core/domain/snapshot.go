package domain

import (
	"errors"
	"math"
)

var (
	ErrInvalidMetric        = errors.New("invalid metric value")
	ErrInvalidSocialBattery = errors.New("invalid social battery (must be empty, low, or charged)")
	ErrInvalidClockTime     = errors.New("invalid time format (must be HH:MM 24h)")
)

const (
	SocialBatteryEmpty   = "empty"
	SocialBatteryLow     = "low"
	SocialBatteryCharged = "charged"

	DefaultEnergy   = 5
	DefaultBedTime  = "23:00"
	DefaultWakeTime = "07:00"
	MaxEnergy       = 10

	WaterGoalLiters = 3.0
	SleepGoalHours  = 8.0
)

type DaySnapshot struct {
	Date            string  `json:"date"`
	Water           float64 `json:"water"`
	Sleep           float64 `json:"sleep"`
	Energy          int     `json:"energy"`
	Caffeine        int     `json:"caffeine"`
	HabitsCompleted int     `json:"habitsCompleted"`
	TotalHabits     int     `json:"totalHabits"`
	CognitiveLoad   *int    `json:"cognitiveLoad,omitempty"`
}

// HabitRate is the day's habit adherence in [0, 1]. A day without habits
// divides by one and therefore reports zero.
func (s DaySnapshot) HabitRate() float64 {
	total := s.TotalHabits
	if total == 0 {
		total = 1
	}
	return float64(s.HabitsCompleted) / float64(total)
}

// HealthStats holds the live metrics of the current day and the ledger of
// past snapshots. Both are persisted together as one document.
type HealthStats struct {
	Water         float64 `json:"water"`
	Sleep         float64 `json:"sleep"`
	Energy        int     `json:"energy"`
	Caffeine      int     `json:"caffeine"`
	SocialBattery string  `json:"socialBattery"`
	BedTime       string  `json:"bedTime,omitempty"`
	WakeTime      string  `json:"wakeTime,omitempty"`
	History       Ledger  `json:"history"`
}

func DefaultHealthStats() HealthStats {
	return HealthStats{
		Energy:        DefaultEnergy,
		SocialBattery: SocialBatteryCharged,
		BedTime:       DefaultBedTime,
		WakeTime:      DefaultWakeTime,
		History:       Ledger{},
	}
}

func ValidateWater(liters float64) error {
	if liters < 0 || math.IsNaN(liters) || math.IsInf(liters, 0) {
		return ErrInvalidMetric
	}
	return nil
}

func ValidateSleep(hours float64) error {
	if hours < 0 || hours > 24 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return ErrInvalidMetric
	}
	return nil
}

func ValidateEnergy(energy int) error {
	if energy < 0 || energy > MaxEnergy {
		return ErrInvalidMetric
	}
	return nil
}

func ValidateCaffeine(doses int) error {
	if doses < 0 {
		return ErrInvalidMetric
	}
	return nil
}

func ValidateSocialBattery(level string) error {
	switch level {
	case SocialBatteryEmpty, SocialBatteryLow, SocialBatteryCharged:
		return nil
	}
	return ErrInvalidSocialBattery
}

// AddWater applies delta to the current intake, never going below zero and
// keeping two decimals.
func AddWater(current, delta float64) float64 {
	return math.Max(0, Round(current+delta, 2))
}

// SleepBetween returns the hours slept between bed and wake (HH:MM),
// wrapping past midnight, rounded to one decimal.
func SleepBetween(bed, wake string) (float64, error) {
	bh, bm, err := parseClock(bed)
	if err != nil {
		return 0, err
	}
	wh, wm, err := parseClock(wake)
	if err != nil {
		return 0, err
	}

	diff := (float64(wh) + float64(wm)/60) - (float64(bh) + float64(bm)/60)
	if diff < 0 {
		diff += 24
	}
	return Round(diff, 1), nil
}

func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// PerformanceScore is the unweighted composite of sleep, water and energy
// against their fixed targets, in [0, 100].
func PerformanceScore(sleep, water float64, energy int) int {
	s := sleep / SleepGoalHours
	w := water / WaterGoalLiters
	e := float64(energy) / MaxEnergy

	score := math.Round(((s + w + e) / 3) * 100)
	return int(math.Max(0, math.Min(100, score)))
}
