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

func newBookCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "book",
		Aliases: []string{"books"},
		Short:   "Track reading",
	}
	cmd.AddCommand(newBookAddCmd(rt), newBookListCmd(rt), newBookProgressCmd(rt), newBookGoalCmd(rt))
	return cmd
}

func newBookAddCmd(rt *runtime) *cobra.Command {
	var in domain.BookInput

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				b, err := a.Reading.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s by %s %s\n", ui.Good.Render(ui.IconBook+" Added"), b.Title, b.Author, ui.Muted.Render("#"+shortID(b.ID)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in.Author, "author", "a", "", "author")
	cmd.Flags().IntVar(&in.TotalPages, "pages", 0, "total pages")
	cmd.Flags().StringVar(&in.Status, "status", "", "reading, queued or completed (defaults to queued)")
	return cmd
}

func newBookListCmd(rt *runtime) *cobra.Command {
	var filter services.BookFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				books := a.Reading.List(filter)
				fmt.Fprintln(out, ui.Heading(ui.IconBook, "Library"))
				if len(books) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No books."))
					return nil
				}
				for _, b := range books {
					fmt.Fprintf(out, "%s %s %s %s %d%% %s\n",
						ui.Muted.Render(shortID(b.ID)),
						b.Title,
						ui.Muted.Render("by "+b.Author),
						ui.Bar(float64(b.Progress), 10),
						b.Progress,
						ui.Muted.Render("("+b.Status+")"),
					)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter.Status, "status", "", "only books with this status")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "match title or author")
	return cmd
}

func newBookProgressCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "page <id> <page>",
		Short: "Record the current page of a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := parseIntArg(args[1], "page")
			if err != nil {
				return err
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				books := a.Reading.List(services.BookFilter{})
				ids := make([]string, len(books))
				for i := range books {
					ids[i] = books[i].ID
				}
				id, err := resolveID(args[0], ids)
				if err != nil {
					return err
				}
				b, err := a.Reading.Get(id)
				if err != nil {
					return err
				}
				b, err = a.Reading.Update(cmd.Context(), id, domain.BookInput{
					Title:       b.Title,
					Author:      b.Author,
					CurrentPage: page,
					TotalPages:  b.TotalPages,
					Status:      b.Status,
					CoverURL:    b.CoverURL,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s %d%%\n", ui.Good.Render(ui.IconBook), b.Title, b.Progress)
				return nil
			})
		},
	}
}

func newBookGoalCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "goal [books]",
		Short: "Show or set the monthly reading goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if len(args) == 1 {
					goal, err := parseIntArg(args[0], "goal")
					if err != nil {
						return err
					}
					if err := a.Reading.SetGoal(cmd.Context(), goal); err != nil {
						return err
					}
				}
				p := a.Reading.Monthly()
				fmt.Fprintln(out, ui.LabelValue("This month", fmt.Sprintf("%d/%d %s", p.Completed, p.Goal, ui.Bar(p.Percentage, 20))))
				return nil
			})
		},
	}
}
