package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

func taskID(a *app.App, prefix string) (string, error) {
	tasks := a.Tasks.List()
	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}
	return resolveID(prefix, ids)
}

func newTaskCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage the daily plan",
	}
	cmd.AddCommand(newTaskAddCmd(rt), newTaskListCmd(rt), newTaskToggleCmd(rt), newTaskDeleteCmd(rt))
	return cmd
}

func newTaskAddCmd(rt *runtime) *cobra.Command {
	var (
		in    services.TaskInput
		every int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a one-off task, or a recurring one with --every",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			if cmd.Flags().Changed("every") {
				in.Frequency = &every
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				t, err := a.Tasks.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				if a.Reminders != nil && t.ReminderTime != "" {
					_, _ = a.Reminders.Check(cmd.Context())
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconTask+" Added"), t.Title, ui.Muted.Render("#"+shortID(t.ID)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "", "low, medium or high (defaults to medium)")
	cmd.Flags().StringVar(&in.ReminderTime, "remind", "", "reminder time, HH:MM")
	cmd.Flags().StringVar(&in.Date, "date", "", "day of a one-off task, YYYY-MM-DD (defaults to today)")
	cmd.Flags().IntVar(&every, "every", 7, "make the task recurring, target days per week")
	return cmd
}

func newTaskListCmd(rt *runtime) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the plan for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if day == "" {
					day = a.State.Today()
				}
				tasks, err := a.Tasks.ListForDay(day)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Heading(ui.IconTask, "Plan for "+day))
				if len(tasks) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("Nothing planned."))
					return nil
				}
				for i := range tasks {
					printTask(out, &tasks[i], day)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "day to show, YYYY-MM-DD (defaults to today)")
	return cmd
}

func printTask(out io.Writer, t *domain.Task, day string) {
	extra := ""
	if t.ReminderTime != "" {
		extra += " " + ui.IconBell + " " + t.ReminderTime
	}
	if t.IsRecurring() {
		extra += " " + ui.IconHabit
	}
	fmt.Fprintf(out, "%s %s %s [%s]%s\n",
		ui.Check(t.IsCompletedOn(day)),
		ui.Muted.Render(shortID(t.ID)),
		t.Title,
		ui.Priority(t.Priority),
		extra,
	)
}

func newTaskToggleCmd(rt *runtime) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Complete (or reopen) a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				id, err := taskID(a, args[0])
				if err != nil {
					return err
				}
				done, err := a.Tasks.Toggle(cmd.Context(), id, day)
				if err != nil {
					return err
				}
				if done {
					fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" done"))
				} else {
					fmt.Fprintln(out, ui.Muted.Render("reopened"))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "day for recurring tasks, YYYY-MM-DD (defaults to today)")
	return cmd
}

func newTaskDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				id, err := taskID(a, args[0])
				if err != nil {
					return err
				}
				if err := a.Tasks.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("deleted"))
				return nil
			})
		},
	}
}
