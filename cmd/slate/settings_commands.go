package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/scheduler"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change budgets and scheduling behaviour",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, ctx)
		},
	}

	cmd.AddCommand(newSettingsShowCommand(ctx))
	cmd.AddCommand(newSettingsSetCommand(ctx))

	return cmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, ctx)
		},
	}
}

func runSettingsShow(cmd *cobra.Command, ctx *commandContext) error {
	return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
		settings, err := svc.Settings(runCtx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Weekday budget:  %d min\n", settings.WeekdayMinutes)
		fmt.Fprintf(out, "Weekend budget:  %d min\n", settings.WeekendMinutes)
		fmt.Fprintf(out, "Scheduling mode: %s\n", settings.SchedulingMode)
		fmt.Fprintf(out, "Auto-promote:    %s\n", yesNo(settings.AutoPromote))
		for weekday, override := range settings.Overrides {
			if override == nil {
				continue
			}
			fmt.Fprintf(out, "Override %s:    %d min\n", weekdayName(weekday), *override)
		}
		return nil
	})
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	var (
		weekdayMinutes int
		weekendMinutes int
		mode           string
		autoPromote    string
		overrides      []string
		clearOverrides []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the stored settings",
		Long: "Only the flags that are passed change; everything else keeps its\n" +
			"stored value. Overrides are written as day=minutes, e.g.\n" +
			"--override fri=180.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				settings, err := svc.Settings(runCtx)
				if err != nil {
					return err
				}

				if cmd.Flags().Changed("weekday") {
					settings.WeekdayMinutes = weekdayMinutes
				}
				if cmd.Flags().Changed("weekend") {
					settings.WeekendMinutes = weekendMinutes
				}
				if cmd.Flags().Changed("mode") {
					normalized := strings.ToLower(strings.TrimSpace(mode))
					if normalized != "sequential" && normalized != "round_robin" {
						return fmt.Errorf("unsupported mode %q (use sequential or round_robin)", mode)
					}
					settings.SchedulingMode = normalized
				}
				if cmd.Flags().Changed("auto-promote") {
					enabled, err := strconv.ParseBool(autoPromote)
					if err != nil {
						return fmt.Errorf("invalid --auto-promote value %q", autoPromote)
					}
					settings.AutoPromote = enabled
				}
				for _, override := range overrides {
					weekday, minutes, err := parseOverride(override)
					if err != nil {
						return err
					}
					settings.Overrides[weekday] = &minutes
				}
				for _, day := range clearOverrides {
					weekday, err := parseWeekday(day)
					if err != nil {
						return err
					}
					settings.Overrides[weekday] = nil
				}

				if settings.WeekdayMinutes <= 0 || settings.WeekendMinutes <= 0 {
					return fmt.Errorf("budgets must be positive")
				}

				if err := svc.SaveSettings(runCtx, settings); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&weekdayMinutes, "weekday", 0, "Weekday budget in minutes")
	cmd.Flags().IntVar(&weekendMinutes, "weekend", 0, "Weekend budget in minutes")
	cmd.Flags().StringVar(&mode, "mode", "", "Scheduling mode (sequential or round_robin)")
	cmd.Flags().StringVar(&autoPromote, "auto-promote", "", "Promote from the queue when a slot frees up (true or false)")
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "Per-day budget override as day=minutes")
	cmd.Flags().StringArrayVar(&clearOverrides, "clear-override", nil, "Remove the override for a day")

	return cmd
}

func parseOverride(value string) (int, int, error) {
	day, minutesText, found := strings.Cut(value, "=")
	if !found {
		return 0, 0, fmt.Errorf("invalid override %q (expected day=minutes)", value)
	}
	weekday, err := parseWeekday(day)
	if err != nil {
		return 0, 0, err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesText))
	if err != nil || minutes <= 0 {
		return 0, 0, fmt.Errorf("invalid override minutes in %q", value)
	}
	return weekday, minutes, nil
}
