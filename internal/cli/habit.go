package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

func habitID(a *app.App, prefix string) (string, error) {
	views := a.Habits.List()
	ids := make([]string, len(views))
	for i := range views {
		ids[i] = views[i].ID
	}
	return resolveID(prefix, ids)
}

func newHabitCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Manage weekly habits",
	}
	cmd.AddCommand(newHabitAddCmd(rt), newHabitListCmd(rt), newHabitToggleCmd(rt), newHabitDeleteCmd(rt))
	return cmd
}

func newHabitAddCmd(rt *runtime) *cobra.Command {
	var in services.CreateHabitInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				h, err := a.Habits.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconHabit+" Created"), h.Name, ui.Muted.Render("#"+shortID(h.ID)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Category, "category", "", "category (defaults to Health)")
	cmd.Flags().StringVar(&in.Color, "color", "", "display color")
	cmd.Flags().IntVarP(&in.Frequency, "frequency", "f", 7, "target days per week (1-7)")
	return cmd
}

func newHabitListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with this week's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				views := a.Habits.List()
				fmt.Fprintln(out, ui.Heading(ui.IconHabit, "Habits"))
				if len(views) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No habits yet. Add one with: kanso habit add <name>"))
					return nil
				}
				for _, v := range views {
					fmt.Fprintf(out, "%s %s %s %s %d/%d %s\n",
						ui.Check(v.CompletedToday),
						ui.Muted.Render(shortID(v.ID)),
						v.Name,
						ui.Bar(v.Progress.Percentage, 14),
						v.Progress.Completed, v.Progress.Target,
						ui.Muted.Render(fmt.Sprintf("(%s, streak %d, best %d)", v.Category, v.CurrentStreak, v.LongestStreak)),
					)
				}
				return nil
			})
		},
	}
}

func newHabitToggleCmd(rt *runtime) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a habit done (or undone) for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				id, err := habitID(a, args[0])
				if err != nil {
					return err
				}
				done, err := a.Habits.Toggle(cmd.Context(), id, day)
				if err != nil {
					return err
				}
				if done {
					fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" done"))
				} else {
					fmt.Fprintln(out, ui.Muted.Render("undone"))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "day to toggle, YYYY-MM-DD (defaults to today)")
	return cmd
}

func newHabitDeleteCmd(rt *runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a habit and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				id, err := habitID(a, args[0])
				if err != nil {
					return err
				}
				if err := a.Habits.Delete(cmd.Context(), id, yes); err != nil {
					return confirmHint(err)
				}
				fmt.Fprintln(out, ui.Good.Render("deleted"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}
