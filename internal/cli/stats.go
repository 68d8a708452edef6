package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

var metricScale = map[string]float64{
	"water":  3,
	"sleep":  10,
	"energy": 10,
	"habits": 100,
}

func newStatsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Weekly, monthly and yearly analytics",
	}
	cmd.AddCommand(
		newWindowCmd(rt, domain.ScaleWeek),
		newWindowCmd(rt, domain.ScaleMonth),
		newWindowCmd(rt, domain.ScaleYear),
		newScoreCmd(rt),
	)
	return cmd
}

func newWindowCmd(rt *runtime, scale domain.Scale) *cobra.Command {
	var (
		offset int
		metric string
	)

	cmd := &cobra.Command{
		Use:   string(scale),
		Short: fmt.Sprintf("Chart one metric over a %s", scale),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			top, ok := metricScale[metric]
			if !ok {
				return fmt.Errorf("unknown metric %q (water, sleep, energy or habits)", metric)
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				w, err := a.Stats.Window(scale, offset)
				if err != nil {
					return err
				}
				printWindow(out, w, metric, top)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "periods back from the current one (0, -1, ...)")
	cmd.Flags().StringVarP(&metric, "metric", "m", "water", "water, sleep, energy or habits")
	return cmd
}

func printWindow(out io.Writer, w domain.Window, metric string, top float64) {
	fmt.Fprintln(out, ui.Heading(ui.IconChart, w.Title))
	for _, b := range w.Buckets {
		v := b.Metric(metric)
		fmt.Fprintf(out, "%-6s %s %6.1f\n", b.Label, ui.Bar(v/top*100, 24), v)
	}
	fmt.Fprintln(out, ui.LabelValue("Average", fmt.Sprintf("%.2f", w.Average(metric))))
}

func newScoreCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Today's performance score and reading progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				o := a.Stats.Overview(a.Habits)
				fmt.Fprintln(out, ui.Heading(ui.IconChart, "Performance"))
				fmt.Fprintln(out, ui.LabelValue("Score", fmt.Sprintf("%d/100 %s", o.Score.Score, ui.Bar(float64(o.Score.Score), 20))))
				fmt.Fprintln(out, ui.LabelValue("Reading", fmt.Sprintf("%d/%d this month", o.Reading.Completed, o.Reading.Goal)))
				fmt.Fprintln(out, ui.LabelValue("Days tracked", o.Days))
				return nil
			})
		},
	}
}
