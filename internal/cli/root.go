// Package cli is the kanso command line: quick logging of the day's metrics,
// habits, tasks and books, analytics, and the API server.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

const Version = "0.1.0"

// Opener builds the application for one command invocation.
type Opener func(ctx context.Context, configPath string) (*app.App, error)

// DefaultOpener loads the configuration and opens the configured store.
// Logs go to stderr so command output stays clean.
func DefaultOpener(ctx context.Context, configPath string) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.NewLogger(cfg, os.Stderr))
}

type runtime struct {
	open       Opener
	configPath string
}

// withApp opens the app, runs fn and closes it again.
func (r *runtime) withApp(cmd *cobra.Command, fn func(a *app.App, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := r.open(ctx, r.configPath)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, cmd.OutOrStdout())
}

func NewRootCmd(open Opener) *cobra.Command {
	if open == nil {
		open = DefaultOpener
	}
	rt := &runtime{open: open}

	root := &cobra.Command{
		Use:           "kanso",
		Short:         "Kanso, a personal wellness tracker",
		Long:          "Kanso tracks water, sleep, energy, habits, tasks and reading, and serves the same data over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	root.PersistentFlags().StringVarP(&rt.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(rt),
		newTodayCmd(rt),
		newWaterCmd(rt),
		newSleepCmd(rt),
		newEnergyCmd(rt),
		newCaffeineCmd(rt),
		newSocialCmd(rt),
		newHabitCmd(rt),
		newTaskCmd(rt),
		newBookCmd(rt),
		newStatsCmd(rt),
		newInsightCmd(rt),
		newResetCmd(rt),
		newNotificationsCmd(rt),
	)
	return root
}

func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
