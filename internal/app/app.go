// Package app wires configuration, storage, services and transports into a
// runnable process. Both the API binary and the CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/notify"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/textgen"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/workers"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
	"github.com/comitanigiacomo/kanso-wellness/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *log.Logger

	Store domain.KeyValueStore
	Redis *redis.Client

	State    *services.StateService
	Metrics  *services.MetricsService
	Habits   *services.HabitService
	Tasks    *services.TaskService
	Reading  *services.ReadingService
	Profile  *services.ProfileService
	Stats    *services.StatsService
	Insights *services.InsightService

	Notifier  domain.Notifier
	Reminders *workers.ReminderWorker
	Telemetry *metrics.Metrics

	pinger    adapterHTTP.Pinger
	startTime time.Time
	closers   []func() error
}

// NewLogger builds the process logger from the configured level and format.
func NewLogger(cfg *config.Config, out io.Writer) *log.Logger {
	return log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
		Format:    cfg.LogFormat,
		Output:    out,
	})
}

// New opens the configured store (plus the optional Redis cache) and loads
// the persisted state.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Discard()
	}

	var (
		store   domain.KeyValueStore
		pinger  adapterHTTP.Pinger
		closers []func() error
	)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = repository.NewMemoryStore()
	case config.DriverSQLite:
		s, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, pinger = s, s
		closers = append(closers, s.Close)
	case config.DriverPostgres:
		s, err := repository.OpenPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		store, pinger = s, s
		closers = append(closers, s.Close)
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.StoreDriver)
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		client, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			ClientName: "kanso",
		})
		if err != nil {
			logger.WithComponent(log.ComponentCache).Warn("redis unavailable, continuing without cache", log.FieldError, err)
		} else {
			rdb = client
			store = repository.NewCachedStore(store, rdb, cfg.CacheTTL, logger)
			closers = append(closers, rdb.Close)
		}
	}

	a, err := Build(ctx, cfg, logger, store)
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, err
	}
	a.Redis = rdb
	a.pinger = pinger
	a.closers = append(closers, a.closers...)

	if rdb != nil {
		a.Notifier = notify.NewRedisNotifier(rdb, cfg.NotifyChannel, cfg.NotificationsOn, logger)
		a.Reminders = a.newReminderWorker()
	}
	return a, nil
}

// Build assembles the services over an already opened store.
func Build(ctx context.Context, cfg *config.Config, logger *log.Logger, store domain.KeyValueStore) (*App, error) {
	if logger == nil {
		logger = log.Discard()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	repo := repository.NewStateRepository(store, cfg.Namespace, logger)
	state := services.NewStateService(repo,
		services.WithLocation(loc),
		services.WithLogger(logger),
	)
	if err := state.Load(ctx); err != nil {
		return nil, err
	}

	gen, err := textgen.New(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	if err != nil {
		return nil, err
	}

	insightCfg := services.DefaultInsightConfig()
	if cfg.InsightModel != "" {
		insightCfg.Model = cfg.InsightModel
	}
	if cfg.QuickModel != "" {
		insightCfg.QuickModel = cfg.QuickModel
	}
	if cfg.InsightTimeout > 0 {
		insightCfg.Timeout = cfg.InsightTimeout
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	telemetry := metrics.New(reg)
	state.OnChange(telemetry.ObserveState)
	telemetry.ObserveState(state.View(), domain.ChangeNone)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		State:     state,
		Metrics:   services.NewMetricsService(state),
		Habits:    services.NewHabitService(state),
		Tasks:     services.NewTaskService(state),
		Reading:   services.NewReadingService(state),
		Profile:   services.NewProfileService(state),
		Stats:     services.NewStatsService(state, services.NewTranslator(cfg.Locale)),
		Insights:  services.NewInsightService(state, repo, gen, insightCfg, logger),
		Notifier:  notify.NewLogNotifier(cfg.NotificationsOn, logger),
		Telemetry: telemetry,
		startTime: time.Now(),
	}
	if c, ok := gen.(io.Closer); ok {
		a.closers = append(a.closers, c.Close)
	}
	a.Reminders = a.newReminderWorker()
	return a, nil
}

func (a *App) newReminderWorker() *workers.ReminderWorker {
	return workers.NewReminderWorker(a.Tasks, a.Notifier,
		workers.WithInterval(a.Config.ReminderEvery),
		workers.WithIcon(a.Config.NotifyIcon),
		workers.WithNow(a.State.Now),
		workers.WithLogger(a.Logger),
	)
}

func (a *App) Router() *gin.Engine {
	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StatsHandler:     adapterHTTP.NewStatsHandler(a.Metrics),
		HabitHandler:     adapterHTTP.NewHabitHandler(a.Habits),
		TaskHandler:      adapterHTTP.NewTaskHandler(a.Tasks, a.Reminders),
		BookHandler:      adapterHTTP.NewBookHandler(a.Reading),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(a.Stats, a.Habits),
		InsightHandler:   adapterHTTP.NewInsightHandler(a.Insights),
		ProfileHandler:   adapterHTTP.NewProfileHandler(a.Profile, a.State),

		Store:       a.pinger,
		Redis:       a.Redis,
		Metrics:     a.Telemetry,
		Logger:      a.Logger,
		StartTime:   a.startTime,
		RateLimit:   a.Config.RateLimit,
		RateWindow:  a.Config.RateLimitEvery,
		CORSOrigins: a.Config.CORSOrigins,
	})
}

// Serve runs the HTTP API and the reminder worker until ctx is cancelled or
// either of them fails, then shuts the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router(),
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("Kanso API listening", "addr", "http://localhost:"+a.Config.Port, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.Reminders.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i]())
	}
	return err
}
