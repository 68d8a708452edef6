package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

func newInsightCmd(rt *runtime) *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:       "insight [wellness|hydration|sleep]",
		Short:     "Ask the coach for advice on today's data",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{services.VariantWellness, services.VariantHydration, services.VariantSleepEnergy},
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := services.VariantWellness
			if len(args) == 1 {
				variant = args[0]
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if last {
					text, err := a.Insights.Last(cmd.Context())
					if err != nil {
						return fmt.Errorf("no cached insight: %w", err)
					}
					fmt.Fprintln(out, ui.Panel.Render(text))
					return nil
				}

				in, err := a.Insights.Generate(cmd.Context(), variant)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Heading(ui.IconInsight, "Insight"))
				fmt.Fprintln(out, ui.Panel.Render(in.Text))
				if in.Fallback {
					fmt.Fprintln(out, ui.Muted.Render("(offline suggestion)"))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&last, "last", false, "show the last cached wellness insight")
	return cmd
}
