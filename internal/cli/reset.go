package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

func newResetCmd(rt *runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if err := a.State.ClearAll(cmd.Context(), yes); err != nil {
					return confirmHint(err)
				}
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" all data erased"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm erasing everything")
	return cmd
}
