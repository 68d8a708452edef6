package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/ui"
)

func parseFloatArg(arg, name string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func parseIntArg(arg, name string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func printStats(out io.Writer, s domain.HealthStats) {
	fmt.Fprintln(out, ui.Heading(ui.IconChart, "Today"))
	fmt.Fprintln(out, ui.LabelValue(ui.IconWater+" Water", fmt.Sprintf("%.2f L", s.Water)))
	sleep := fmt.Sprintf("%.1f h", s.Sleep)
	if s.BedTime != "" && s.WakeTime != "" {
		sleep += " " + ui.Muted.Render(fmt.Sprintf("(%s to %s)", s.BedTime, s.WakeTime))
	}
	fmt.Fprintln(out, ui.LabelValue(ui.IconSleep+" Sleep", sleep))
	fmt.Fprintln(out, ui.LabelValue(ui.IconEnergy+" Energy", fmt.Sprintf("%d/10", s.Energy)))
	fmt.Fprintln(out, ui.LabelValue(ui.IconCoffee+" Caffeine", s.Caffeine))
	fmt.Fprintln(out, ui.LabelValue("Social battery", s.SocialBattery))
}

func newTodayCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				printStats(out, a.Metrics.Current())
				return nil
			})
		},
	}
}

func newWaterCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water",
		Short: "Log water intake in liters",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <liters>",
		Short: "Add (or with a negative value remove) water",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseFloatArg(args[0], "liters")
			if err != nil {
				return err
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				total, err := a.Metrics.AddWater(cmd.Context(), delta)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %.2f L today", ui.IconWater, total)))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <liters>",
		Short: "Set today's water total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			liters, err := parseFloatArg(args[0], "liters")
			if err != nil {
				return err
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if err := a.Metrics.SetWater(cmd.Context(), liters); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %.2f L today", ui.IconWater, liters)))
				return nil
			})
		},
	})
	return cmd
}

func newSleepCmd(rt *runtime) *cobra.Command {
	var bed, wake string

	cmd := &cobra.Command{
		Use:   "sleep [hours]",
		Short: "Log last night's sleep, as hours or as a --bed/--wake window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window := bed != "" || wake != ""
			if window && len(args) == 1 {
				return errors.New("give either hours or --bed/--wake, not both")
			}
			if window && (bed == "" || wake == "") {
				return errors.New("--bed and --wake go together")
			}
			if !window && len(args) == 0 {
				return errors.New("hours or --bed/--wake is required")
			}

			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				var hours float64
				if window {
					h, err := a.Metrics.SetSleepWindow(cmd.Context(), bed, wake)
					if err != nil {
						return err
					}
					hours = h
				} else {
					h, err := parseFloatArg(args[0], "hours")
					if err != nil {
						return err
					}
					if err := a.Metrics.SetSleep(cmd.Context(), h); err != nil {
						return err
					}
					hours = h
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %.1f h of sleep", ui.IconSleep, hours)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&bed, "bed", "", "bed time, HH:MM")
	cmd.Flags().StringVar(&wake, "wake", "", "wake time, HH:MM")
	return cmd
}

func newEnergyCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "energy <1-10>",
		Short: "Set today's energy level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseIntArg(args[0], "energy")
			if err != nil {
				return err
			}
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if err := a.Metrics.SetEnergy(cmd.Context(), level); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s energy %d/10", ui.IconEnergy, level)))
				return nil
			})
		},
	}
}

func newCaffeineCmd(rt *runtime) *cobra.Command {
	var set int

	cmd := &cobra.Command{
		Use:   "caffeine",
		Short: "Log one caffeine dose, or --set the day's count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				doses := set
				if cmd.Flags().Changed("set") {
					if err := a.Metrics.SetCaffeine(cmd.Context(), set); err != nil {
						return err
					}
				} else {
					n, err := a.Metrics.AddCaffeine(cmd.Context())
					if err != nil {
						return err
					}
					doses = n
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %d today", ui.IconCoffee, doses)))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&set, "set", 0, "set the number of doses instead of adding one")
	return cmd
}

func newSocialCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "social <empty|low|charged>",
		Short:     "Set today's social battery",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{domain.SocialBatteryEmpty, domain.SocialBatteryLow, domain.SocialBatteryCharged},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(a *app.App, out io.Writer) error {
				if err := a.Metrics.SetSocialBattery(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("social battery "+args[0]))
				return nil
			})
		},
	}
}
