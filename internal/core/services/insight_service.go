package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

const (
	VariantWellness    = "wellness"
	VariantHydration   = "hydration"
	VariantSleepEnergy = "sleep"
)

var ErrUnknownVariant = errors.New("unknown insight variant")

// Fallback texts returned when generation is unavailable. They are advisory
// only and never cached.
const (
	FallbackWellnessOffline    = "Kanso is running offline. Connect to the network to receive new insights."
	FallbackWellnessFailure    = "Insights are temporarily unavailable. Keep following your local routine."
	FallbackHydrationOffline   = "Offline: hydration insight unavailable."
	FallbackHydrationFailure   = "Keep your water intake steady through the day."
	FallbackSleepEnergyOffline = "Connect to the network to enable sleep analysis."
	FallbackSleepEnergyFailure = "Sleep analysis is unavailable right now."
)

type InsightConfig struct {
	Model       string
	QuickModel  string
	Timeout     time.Duration
	HistoryDays int
}

func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		Model:       "gemini-3-pro-preview",
		QuickModel:  "gemini-3-flash-preview",
		Timeout:     30 * time.Second,
		HistoryDays: 3,
	}
}

type Insight struct {
	Variant  string `json:"variant"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// InsightService builds prompts from the current state and asks the text
// generator for advice. It only reads the aggregate; the last wellness
// insight is cached separately and the newest response wins.
type InsightService struct {
	state  *StateService
	repo   domain.StateRepository
	gen    domain.TextGenerator
	cfg    InsightConfig
	logger *log.Logger
}

func NewInsightService(state *StateService, repo domain.StateRepository, gen domain.TextGenerator, cfg InsightConfig, logger *log.Logger) *InsightService {
	if logger == nil {
		logger = log.Discard()
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 3
	}
	return &InsightService{
		state:  state,
		repo:   repo,
		gen:    gen,
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentInsight),
	}
}

func (s *InsightService) Generate(ctx context.Context, variant string) (Insight, error) {
	switch variant {
	case VariantWellness:
		return s.Wellness(ctx), nil
	case VariantHydration:
		return s.Hydration(ctx), nil
	case VariantSleepEnergy:
		return s.SleepEnergy(ctx), nil
	}
	return Insight{}, fmt.Errorf("%w %q", ErrUnknownVariant, variant)
}

func (s *InsightService) Wellness(ctx context.Context) Insight {
	prompt := s.WellnessPrompt()
	text, ok := s.generate(ctx, VariantWellness, prompt, domain.GenerateOptions{Model: s.cfg.Model, Temperature: 0.8},
		FallbackWellnessOffline, FallbackWellnessFailure)
	if ok {
		if err := s.repo.SaveInsight(ctx, text); err != nil {
			s.logger.WarnContext(ctx, "cache insight failed", log.FieldError, err)
		}
	}
	return Insight{Variant: VariantWellness, Text: text, Fallback: !ok}
}

func (s *InsightService) Hydration(ctx context.Context) Insight {
	prompt := s.HydrationPrompt()
	text, ok := s.generate(ctx, VariantHydration, prompt, domain.GenerateOptions{Model: s.cfg.QuickModel, Temperature: 0.7},
		FallbackHydrationOffline, FallbackHydrationFailure)
	return Insight{Variant: VariantHydration, Text: text, Fallback: !ok}
}

func (s *InsightService) SleepEnergy(ctx context.Context) Insight {
	prompt := s.SleepEnergyPrompt()
	text, ok := s.generate(ctx, VariantSleepEnergy, prompt, domain.GenerateOptions{Model: s.cfg.QuickModel, Temperature: 0.7},
		FallbackSleepEnergyOffline, FallbackSleepEnergyFailure)
	return Insight{Variant: VariantSleepEnergy, Text: text, Fallback: !ok}
}

// Last returns the most recently cached wellness insight, if any.
func (s *InsightService) Last(ctx context.Context) (string, error) {
	return s.repo.LastInsight(ctx)
}

func (s *InsightService) generate(ctx context.Context, variant, prompt string, opts domain.GenerateOptions, offline, failure string) (string, bool) {
	if s.gen == nil {
		return offline, false
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, prompt, opts)
	switch {
	case errors.Is(err, domain.ErrGeneratorOffline):
		s.logger.InfoContext(ctx, "generator offline", log.FieldVariant, variant)
		return offline, false
	case err != nil:
		s.logger.WarnContext(ctx, "insight generation failed",
			log.NewFields().WithOperation(log.OpGenerate).WithError(err).With(log.FieldVariant, variant).ToSlice()...)
		return failure, false
	case strings.TrimSpace(text) == "":
		s.logger.WarnContext(ctx, "insight generation returned empty text", log.FieldVariant, variant)
		return failure, false
	}
	return strings.TrimSpace(text), true
}

func (s *InsightService) WellnessPrompt() string {
	st := s.state.View()
	now := s.state.Now().In(s.state.Location())
	today := domain.LocalDay(now, s.state.Location())
	name := st.Profile.DisplayName()

	var habits []string
	for _, h := range st.Habits {
		status := "Pending"
		if h.IsCompletedOn(today) {
			status = "Done"
		}
		habits = append(habits, fmt.Sprintf("%s (%s): %s", h.Name, h.Category, status))
	}
	habitsStatus := strings.Join(habits, "\n")
	if habitsStatus == "" {
		habitsStatus = "No habits configured."
	}

	var tasks []string
	for _, t := range st.TasksOn(today) {
		status := "To do"
		if t.IsCompletedOn(today) {
			status = "Done"
		}
		tasks = append(tasks, fmt.Sprintf("%s [%s]: %s", t.Title, t.Priority, status))
	}
	tasksStatus := strings.Join(tasks, "\n")
	if tasksStatus == "" {
		tasksStatus = "No tasks planned for today."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as a high-performance coach for the Kanso wellness app. You are talking to %s.\n\n", name)
	fmt.Fprintf(&b, "Analyse %s's data for today (%s):\n\n", name, now.Weekday())
	b.WriteString("VITAL STATS:\n")
	fmt.Fprintf(&b, "- Hydration: %gL (goal %gL)\n", st.Stats.Water, domain.WaterGoalLiters)
	fmt.Fprintf(&b, "- Sleep: %gh (goal %gh)\n", st.Stats.Sleep, domain.SleepGoalHours)
	fmt.Fprintf(&b, "- Energy: %d/%d\n", st.Stats.Energy, domain.MaxEnergy)
	fmt.Fprintf(&b, "- Caffeine: %d doses\n", st.Stats.Caffeine)
	fmt.Fprintf(&b, "- Social battery: %s\n\n", st.Stats.SocialBattery)
	fmt.Fprintf(&b, "TODAY'S HABITS:\n%s\n\n", habitsStatus)
	fmt.Fprintf(&b, "PLAN (today):\n%s\n\n", tasksStatus)
	b.WriteString("INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "1. Give %s personalised feedback.\n", name)
	b.WriteString("2. Correlate sleep and energy with the pending tasks.\n")
	b.WriteString("3. Use Markdown.\n\n")
	fmt.Fprintf(&b, "Structure:\n- \"%s's performance state\"\n- \"Strategy for today\"\n- \"Optimisation for tomorrow\"\n", name)
	return b.String()
}

func (s *InsightService) HydrationPrompt() string {
	st := s.state.View()
	now := s.state.Now().In(s.state.Location())

	history, err := json.Marshal(st.Stats.History.Last(s.cfg.HistoryDays))
	if err != nil {
		history = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hydration analysis for %s:\n", st.Profile.DisplayName())
	fmt.Fprintf(&b, "- Current intake: %gL of a %gL goal.\n", st.Stats.Water, domain.WaterGoalLiters)
	fmt.Fprintf(&b, "- Hour of day: %dh.\n", now.Hour())
	fmt.Fprintf(&b, "- Recent history: %s.\n\n", history)
	b.WriteString("As a wellness assistant, give an ultra-short motivating tip (20 words max) on hydration and mental clarity.")
	return b.String()
}

func (s *InsightService) SleepEnergyPrompt() string {
	st := s.state.View()

	var b strings.Builder
	fmt.Fprintf(&b, "Analyse the relation between sleep and energy for %s:\n", st.Profile.DisplayName())
	fmt.Fprintf(&b, "Data: sleep %gh, energy %d/%d, caffeine %d doses.\n\n", st.Stats.Sleep, st.Stats.Energy, domain.MaxEnergy, st.Stats.Caffeine)
	b.WriteString("Give a short insight (3 sentences max) on how sleep affected today's vitality. ")
	b.WriteString("Be technical but direct; mention circadian rhythm or adenosine if relevant.")
	return b.String()
}
