package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/scheduler"
)

func newDaysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "Show the weekly capacity board",
		Long: "For each weekday: the time budget, the minutes already committed\n" +
			"to watching shows, what remains, and which shows and genres sit on\n" +
			"that day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				overview, err := svc.Overview(runCtx)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(overview))
				for _, day := range overview {
					rows = append(rows, []string{
						weekdayName(day.Weekday),
						strconv.Itoa(day.Capacity.Total),
						strconv.Itoa(day.Capacity.Used),
						strconv.Itoa(day.Capacity.Available),
						joinOrDash(day.Shows),
						joinOrDash(day.Genres),
					})
				}
				table := renderTable(
					[]string{"Day", "Budget", "Used", "Free", "Shows", "Genres"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
