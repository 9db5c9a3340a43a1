package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/scheduler"
)

func newFollowCommand(ctx *commandContext) *cobra.Command {
	var (
		priority     int
		startSeason  int
		startEpisode int
	)

	cmd := &cobra.Command{
		Use:   "follow <show-id|query>",
		Short: "Follow a show and add it to the queue",
		Long: "Follow a show by its catalog ID, or search the catalog by name.\n" +
			"A search that matches more than one show prints the candidates\n" +
			"so the ID can be passed explicitly.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				opts := scheduler.FollowOptions{
					Priority:     priority,
					StartSeason:  startSeason,
					StartEpisode: startEpisode,
				}

				if len(args) == 1 {
					if showID, err := strconv.ParseInt(args[0], 10, 64); err == nil {
						return followShow(cmd, runCtx, svc, showID, opts)
					}
				}

				query := strings.Join(args, " ")
				results, err := svc.Search(runCtx, query)
				if err != nil {
					return err
				}
				switch len(results) {
				case 0:
					return fmt.Errorf("no shows match %q", query)
				case 1:
					return followShow(cmd, runCtx, svc, results[0].ID, opts)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%d shows match %q; follow one by ID:\n", len(results), query)
					rows := make([][]string, 0, len(results))
					for _, result := range results {
						rows = append(rows, []string{
							strconv.FormatInt(result.ID, 10),
							result.Name,
							result.FirstAirDate,
						})
					}
					table := renderTable(
						[]string{"ID", "Title", "First Aired"},
						rows,
						[]columnAlignment{alignRight, alignLeft, alignLeft},
					)
					fmt.Fprintln(cmd.OutOrStdout(), table)
					return nil
				}
			})
		},
	}

	cmd.Flags().IntVar(&priority, "priority", 0, "Queue priority (lower is sooner)")
	cmd.Flags().IntVar(&startSeason, "season", 0, "Season to start from")
	cmd.Flags().IntVar(&startEpisode, "episode", 0, "Episode to start from")

	return cmd
}

func followShow(cmd *cobra.Command, runCtx context.Context, svc *scheduler.Service, showID int64, opts scheduler.FollowOptions) error {
	entry, err := svc.Follow(runCtx, showID, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Following %s (entry %d), queued at %s\n",
		entry.Title, entry.ID, formatPosition(entry.CurrentSeason, entry.CurrentEpisode))
	return nil
}


func newUnfollowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <entry-id>",
		Short: "Remove an entry and its schedule history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry ID %q", args[0])
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				if err := svc.Unfollow(runCtx, entryID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", entryID)
				return nil
			})
		},
	}
}
