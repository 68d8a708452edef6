package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

// @title           Kanso Wellness API
// @version         1.0
// @description     Personal wellness tracking: daily metrics, habits, tasks, reading and insights.
// @BasePath        /api/v1
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.New(log.DefaultConfig()).Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, os.Stdout)
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Kanso API", "driver", cfg.StoreDriver, log.FieldOperation, log.OpStartup)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialise", log.FieldError, err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		logger.Error("Server stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server exiting")
}
