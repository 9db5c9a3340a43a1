package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/scheduler"
	"slate/internal/services"
	"slate/internal/watchlist"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the watch queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueueList(cmd, ctx, "")
		},
	}

	cmd.AddCommand(newQueueListCommand(ctx))
	cmd.AddCommand(newQueuePromoteCommand(ctx))
	cmd.AddCommand(newQueueDemoteCommand(ctx))
	cmd.AddCommand(newQueueFinishCommand(ctx))
	cmd.AddCommand(newQueueDropCommand(ctx))
	cmd.AddCommand(newQueueSetDaysCommand(ctx))
	cmd.AddCommand(newQueuePriorityCommand(ctx))

	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List watchlist entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueueList(cmd, ctx, statusFilter)
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (queued, watching, finished, dropped)")
	return cmd
}

func runQueueList(cmd *cobra.Command, ctx *commandContext, statusFilter string) error {
	var statuses []watchlist.Status
	if statusFilter != "" {
		status, ok := watchlist.ParseStatus(statusFilter)
		if !ok {
			return fmt.Errorf("unknown status %q", statusFilter)
		}
		statuses = append(statuses, status)
	}

	return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
		entries, err := svc.Entries(runCtx, statuses...)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				strconv.FormatInt(entry.ID, 10),
				entry.Title,
				statusLabel(string(entry.Status)),
				strconv.Itoa(entry.Priority),
				formatPosition(entry.CurrentSeason, entry.CurrentEpisode),
				strconv.Itoa(entry.RuntimeMinutes),
				formatWeekdays(entry.Weekdays()),
			})
		}
		table := renderTable(
			[]string{"ID", "Title", "Status", "Priority", "Next", "Runtime", "Days"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
		)
		fmt.Fprintln(cmd.OutOrStdout(), table)
		return nil
	})
}

func newQueuePromoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <entry-id>",
		Short: "Move a queued entry to watching and pin its best day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				entry, err := svc.Promote(runCtx, entryID)
				if err != nil {
					var availability *services.AvailabilityError
					if errors.As(err, &availability) {
						fmt.Fprintln(cmd.OutOrStdout(), availability.Error())
						return nil
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now watching %s on %s\n",
					entry.Title, formatWeekdays(entry.Weekdays()))
				return nil
			})
		},
	}
}

func newQueueDemoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "demote <entry-id>",
		Short: "Move a watching entry back to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				entry, err := svc.Demote(runCtx, entryID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Returned %s to the queue\n", entry.Title)
				return nil
			})
		},
	}
}

func newQueueFinishCommand(ctx *commandContext) *cobra.Command {
	var autoPromote bool

	cmd := &cobra.Command{
		Use:   "finish <entry-id>",
		Short: "Finish the current run of a watching entry",
		Long: "Finishing an ended show marks it finished. Finishing an ongoing\n" +
			"show returns it to the queue so it can be promoted again when new\n" +
			"episodes air. With --auto-promote the freed slot is offered to the\n" +
			"queued entry whose runtime best matches the finished show.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				result, err := svc.Finish(runCtx, entryID)
				if err != nil {
					return err
				}
				if result.MovedToQueue {
					fmt.Fprintf(cmd.OutOrStdout(), "Finished %s for now; moved back to the queue\n", result.Entry.Title)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Finished %s\n", result.Entry.Title)
				}

				settings, err := svc.Settings(runCtx)
				if err != nil {
					return err
				}
				if !autoPromote && !settings.AutoPromote {
					return nil
				}
				promoted, err := svc.AutoPromote(runCtx, result.Entry.RuntimeMinutes)
				if err != nil {
					var availability *services.AvailabilityError
					if errors.As(err, &availability) {
						fmt.Fprintln(cmd.OutOrStdout(), availability.Error())
						return nil
					}
					return err
				}
				if promoted == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty; nothing to promote")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Promoted %s on %s\n",
					promoted.Title, formatWeekdays(promoted.Weekdays()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&autoPromote, "auto-promote", false, "Promote the closest-runtime queued entry into the freed slot")
	return cmd
}

func newQueueDropCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <entry-id>",
		Short: "Drop an entry without finishing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				entry, err := svc.Drop(runCtx, entryID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dropped %s\n", entry.Title)
				return nil
			})
		},
	}
}

func newQueueSetDaysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-days <entry-id> <day>...",
		Short: "Replace the weekdays an entry is watched on",
		Long: "Days are given as names (mon, tuesday) or indices (0=Sunday).\n" +
			"Duplicates are collapsed.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			weekdays := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				weekday, err := parseWeekday(arg)
				if err != nil {
					return err
				}
				weekdays = append(weekdays, weekday)
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				entry, err := svc.SetWeekdays(runCtx, entryID, weekdays)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now watched on %s\n",
					entry.Title, formatWeekdays(entry.Weekdays()))
				return nil
			})
		},
	}
}

func newQueuePriorityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <entry-id> <priority>",
		Short: "Change an entry's queue priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			priority, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("invalid priority %q", args[1])
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				entry, err := svc.SetPriority(runCtx, entryID, priority)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s now has priority %d\n", entry.Title, entry.Priority)
				return nil
			})
		},
	}
}

func parseEntryID(value string) (int64, error) {
	entryID, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry ID %q", value)
	}
	return entryID, nil
}
