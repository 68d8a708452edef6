package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

// MetricsService edits the live metrics of the current day.
type MetricsService struct {
	state *StateService
}

func NewMetricsService(state *StateService) *MetricsService {
	return &MetricsService{state: state}
}

// Current returns today's metrics without the history ledger.
func (s *MetricsService) Current() domain.HealthStats {
	stats := s.state.View().Stats
	stats.History = nil
	return stats
}

type UpdateMetricsInput struct {
	Water         *float64
	Sleep         *float64
	Energy        *int
	Caffeine      *int
	SocialBattery *string
}

// Apply validates every provided field first and then sets them together.
func (s *MetricsService) Apply(ctx context.Context, in UpdateMetricsInput) (domain.HealthStats, error) {
	if in.Water != nil {
		if err := domain.ValidateWater(*in.Water); err != nil {
			return domain.HealthStats{}, err
		}
	}
	if in.Sleep != nil {
		if err := domain.ValidateSleep(*in.Sleep); err != nil {
			return domain.HealthStats{}, err
		}
	}
	if in.Energy != nil {
		if err := domain.ValidateEnergy(*in.Energy); err != nil {
			return domain.HealthStats{}, err
		}
	}
	if in.Caffeine != nil {
		if err := domain.ValidateCaffeine(*in.Caffeine); err != nil {
			return domain.HealthStats{}, err
		}
	}
	if in.SocialBattery != nil {
		if err := domain.ValidateSocialBattery(*in.SocialBattery); err != nil {
			return domain.HealthStats{}, err
		}
	}

	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		if in.Water != nil {
			st.Stats.Water = domain.Round(*in.Water, 2)
		}
		if in.Sleep != nil {
			st.Stats.Sleep = domain.Round(*in.Sleep, 1)
		}
		if in.Energy != nil {
			st.Stats.Energy = *in.Energy
		}
		if in.Caffeine != nil {
			st.Stats.Caffeine = *in.Caffeine
		}
		if in.SocialBattery != nil {
			st.Stats.SocialBattery = *in.SocialBattery
		}
		return domain.ChangeStats, nil
	})
	if err != nil {
		return domain.HealthStats{}, err
	}
	return s.Current(), nil
}

func (s *MetricsService) SetWater(ctx context.Context, liters float64) error {
	_, err := s.Apply(ctx, UpdateMetricsInput{Water: &liters})
	return err
}

// AddWater applies a signed delta and returns the new intake.
func (s *MetricsService) AddWater(ctx context.Context, delta float64) (float64, error) {
	if err := domain.ValidateWater(abs(delta)); err != nil {
		return 0, err
	}

	var water float64
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Stats.Water = domain.AddWater(st.Stats.Water, delta)
		water = st.Stats.Water
		return domain.ChangeStats, nil
	})
	return water, err
}

func (s *MetricsService) SetSleep(ctx context.Context, hours float64) error {
	_, err := s.Apply(ctx, UpdateMetricsInput{Sleep: &hours})
	return err
}

// SetSleepWindow stores bed and wake times and derives the hours slept.
func (s *MetricsService) SetSleepWindow(ctx context.Context, bed, wake string) (float64, error) {
	hours, err := domain.SleepBetween(bed, wake)
	if err != nil {
		return 0, err
	}

	err = s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Stats.BedTime = bed
		st.Stats.WakeTime = wake
		st.Stats.Sleep = hours
		return domain.ChangeStats, nil
	})
	return hours, err
}

func (s *MetricsService) SetEnergy(ctx context.Context, energy int) error {
	_, err := s.Apply(ctx, UpdateMetricsInput{Energy: &energy})
	return err
}

func (s *MetricsService) SetCaffeine(ctx context.Context, doses int) error {
	_, err := s.Apply(ctx, UpdateMetricsInput{Caffeine: &doses})
	return err
}

// AddCaffeine bumps the dose count by one.
func (s *MetricsService) AddCaffeine(ctx context.Context) (int, error) {
	var doses int
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Stats.Caffeine++
		doses = st.Stats.Caffeine
		return domain.ChangeStats, nil
	})
	return doses, err
}

func (s *MetricsService) SetSocialBattery(ctx context.Context, level string) error {
	_, err := s.Apply(ctx, UpdateMetricsInput{SocialBattery: &level})
	return err
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
