package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

// CurrentSchemaVersion is written into the stats document.
const CurrentSchemaVersion = 1

const (
	KeyStats       = "stats"
	KeyHabits      = "habits"
	KeyTasks       = "tasks"
	KeyBooks       = "books"
	KeyReadingGoal = "reading_goal"
	KeyPreferences = "preferences"
	KeyUser        = "user"
	KeyLastInsight = "last_insight"

	DefaultNamespace = "kanso_"
)

var _ domain.StateRepository = (*StateRepository)(nil)

// StateRepository stores the aggregate as one JSON document per key.
type StateRepository struct {
	store     domain.KeyValueStore
	namespace string
	logger    *log.Logger
}

func NewStateRepository(store domain.KeyValueStore, namespace string, logger *log.Logger) *StateRepository {
	if logger == nil {
		logger = log.Discard()
	}
	return &StateRepository{
		store:     store,
		namespace: namespace,
		logger:    logger.WithComponent(log.ComponentStorage),
	}
}

func (r *StateRepository) key(name string) string {
	return r.namespace + name
}

type statsDocument struct {
	SchemaVersion int `json:"schemaVersion"`
	domain.HealthStats
}

func (r *StateRepository) Load(ctx context.Context) (*domain.AppState, error) {
	st := domain.DefaultAppState()

	read := func(name string) ([]byte, bool, error) {
		raw, err := r.store.Get(ctx, r.key(name))
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("load %s: %w", name, err)
		}
		return raw, true, nil
	}

	if raw, ok, err := read(KeyStats); err != nil {
		return nil, err
	} else if ok {
		st.Stats = r.decodeStats(ctx, raw)
	}

	if raw, ok, err := read(KeyHabits); err != nil {
		return nil, err
	} else if ok {
		st.Habits = decodeList[domain.Habit](raw, r.dropped(ctx, KeyHabits))
		for i := range st.Habits {
			if st.Habits[i].CompletedDays == nil {
				st.Habits[i].CompletedDays = []string{}
			}
		}
	}

	if raw, ok, err := read(KeyTasks); err != nil {
		return nil, err
	} else if ok {
		st.Tasks = decodeList[domain.Task](raw, r.dropped(ctx, KeyTasks))
	}

	if raw, ok, err := read(KeyBooks); err != nil {
		return nil, err
	} else if ok {
		st.Books = decodeList[domain.ReadingItem](raw, r.dropped(ctx, KeyBooks))
	}

	if raw, ok, err := read(KeyReadingGoal); err != nil {
		return nil, err
	} else if ok {
		var goal int
		if err := json.Unmarshal(raw, &goal); err != nil || domain.ValidateReadingGoal(goal) != nil {
			r.warnMalformed(ctx, KeyReadingGoal, err)
		} else {
			st.ReadingGoal = goal
		}
	}

	if raw, ok, err := read(KeyPreferences); err != nil {
		return nil, err
	} else if ok {
		var prefs domain.Preferences
		if err := json.Unmarshal(raw, &prefs); err != nil || prefs.ThemeIndex < 0 {
			r.warnMalformed(ctx, KeyPreferences, err)
		} else {
			st.Preferences = prefs
		}
	}

	if raw, ok, err := read(KeyUser); err != nil {
		return nil, err
	} else if ok {
		var user domain.UserProfile
		if err := json.Unmarshal(raw, &user); err != nil || user.Name == "" {
			r.warnMalformed(ctx, KeyUser, err)
		} else {
			st.Profile = &user
		}
	}

	r.logger.DebugContext(ctx, "state loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldEntries, len(st.Stats.History),
	)
	return st, nil
}

// decodeStats reads each field on its own so one bad value does not lose the
// rest of the document.
func (r *StateRepository) decodeStats(ctx context.Context, raw []byte) domain.HealthStats {
	stats := domain.DefaultHealthStats()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		r.warnMalformed(ctx, KeyStats, err)
		return stats
	}

	version := CurrentSchemaVersion
	if v, ok := fields["schemaVersion"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			version = CurrentSchemaVersion
		}
	}
	if version > CurrentSchemaVersion {
		r.logger.WarnContext(ctx, "stats document written by a newer version, decoding best effort",
			log.FieldVersion, version,
			log.FieldKey, r.key(KeyStats),
		)
	}

	targets := map[string]any{
		"water":         &stats.Water,
		"sleep":         &stats.Sleep,
		"energy":        &stats.Energy,
		"caffeine":      &stats.Caffeine,
		"socialBattery": &stats.SocialBattery,
		"bedTime":       &stats.BedTime,
		"wakeTime":      &stats.WakeTime,
		"history":       &stats.History,
	}
	for name, target := range targets {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, target); err != nil {
			r.warnMalformed(ctx, KeyStats+"."+name, err)
		}
	}

	defaults := domain.DefaultHealthStats()
	if domain.ValidateWater(stats.Water) != nil {
		stats.Water = defaults.Water
	}
	if domain.ValidateSleep(stats.Sleep) != nil {
		stats.Sleep = defaults.Sleep
	}
	if domain.ValidateEnergy(stats.Energy) != nil {
		stats.Energy = defaults.Energy
	}
	if domain.ValidateCaffeine(stats.Caffeine) != nil {
		stats.Caffeine = defaults.Caffeine
	}
	if domain.ValidateSocialBattery(stats.SocialBattery) != nil {
		stats.SocialBattery = defaults.SocialBattery
	}
	if stats.History == nil {
		stats.History = domain.Ledger{}
	}
	return stats
}

func (r *StateRepository) dropped(ctx context.Context, name string) func(error) {
	return func(err error) {
		r.warnMalformed(ctx, name, err)
	}
}

func (r *StateRepository) warnMalformed(ctx context.Context, name string, err error) {
	fields := log.NewFields().
		WithOperation(log.OpLoad).
		WithError(err).
		With(log.FieldKey, r.namespace+name)
	r.logger.WarnContext(ctx, "malformed document, using default", fields.ToSlice()...)
}

// decodeList keeps every element that decodes and reports the rest.
func decodeList[T any](raw []byte, onDrop func(error)) []T {
	out := []T{}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		onDrop(err)
		return out
	}

	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			onDrop(err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// Save writes the documents selected by changed with one SetMany call. A
// logged-out profile removes the user document instead.
func (r *StateRepository) Save(ctx context.Context, st *domain.AppState, changed domain.Change) error {
	docs := make(map[string][]byte)
	put := func(name string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		docs[r.key(name)] = raw
		return nil
	}

	var deletes []string
	var err error

	if changed.Has(domain.ChangeStats) {
		err = errors.Join(err, put(KeyStats, statsDocument{SchemaVersion: CurrentSchemaVersion, HealthStats: st.Stats}))
	}
	if changed.Has(domain.ChangeHabits) {
		err = errors.Join(err, put(KeyHabits, st.Habits))
	}
	if changed.Has(domain.ChangeTasks) {
		err = errors.Join(err, put(KeyTasks, st.Tasks))
	}
	if changed.Has(domain.ChangeBooks) {
		err = errors.Join(err, put(KeyBooks, st.Books))
	}
	if changed.Has(domain.ChangeReadingGoal) {
		err = errors.Join(err, put(KeyReadingGoal, st.ReadingGoal))
	}
	if changed.Has(domain.ChangePreferences) {
		err = errors.Join(err, put(KeyPreferences, st.Preferences))
	}
	if changed.Has(domain.ChangeProfile) {
		if st.Profile == nil {
			deletes = append(deletes, r.key(KeyUser))
		} else {
			err = errors.Join(err, put(KeyUser, st.Profile))
		}
	}
	if err != nil {
		return err
	}

	if err := r.store.SetMany(ctx, docs); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := r.store.Delete(ctx, deletes...); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *StateRepository) SaveInsight(ctx context.Context, text string) error {
	return r.store.Set(ctx, r.key(KeyLastInsight), []byte(text))
}

func (r *StateRepository) LastInsight(ctx context.Context) (string, error) {
	raw, err := r.store.Get(ctx, r.key(KeyLastInsight))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Clear drops every document under the namespace.
func (r *StateRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx, r.namespace); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	r.logger.InfoContext(ctx, "state cleared", log.FieldOperation, log.OpClear)
	return nil
}
