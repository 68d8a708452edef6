package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/notify"
	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

func newNotificationsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Task reminder notifications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listen",
		Short: "Print reminders published by a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				rn, ok := a.Notifier.(*notify.RedisNotifier)
				if !ok {
					return errors.New("notifications listen needs redis (set REDIS_ADDR)")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				fmt.Fprintln(out, ui.Muted.Render("listening, Ctrl+C to stop"))
				return rn.Listen(ctx, func(n domain.Notification) {
					fmt.Fprintf(out, "%s %s %s\n", ui.IconBell, ui.Key.Render(n.Title), n.Body)
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Send any due reminders now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				sent, err := a.Reminders.Check(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.LabelValue(ui.IconBell+" Sent", sent))
				return nil
			})
		},
	})
	return cmd
}
