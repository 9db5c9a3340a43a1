package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"slate/internal/scheduler"
	"slate/internal/watchlist"
)

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and inspect the viewing schedule",
	}

	cmd.AddCommand(newScheduleGenerateCommand(ctx))
	cmd.AddCommand(newScheduleShowCommand(ctx))
	cmd.AddCommand(newScheduleCheckInCommand(ctx))

	return cmd
}

func newScheduleGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		startFlag string
		days      int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rebuild the schedule for a range of dates",
		Long: "Each date in the range is planned from scratch: one upcoming\n" +
			"episode per watching show assigned to that weekday, in priority\n" +
			"order, until the day's time budget runs out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if startFlag != "" {
				parsed, err := parseDate(startFlag)
				if err != nil {
					return err
				}
				start = parsed
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				horizon := days
				if horizon <= 0 {
					cfg, err := ctx.ensureConfig()
					if err != nil {
						return err
					}
					horizon = cfg.Scheduling.DefaultHorizonDays
				}
				scheduleDays, err := svc.Generate(runCtx, start, horizon)
				if err != nil {
					return err
				}
				planned := 0
				for _, day := range scheduleDays {
					planned += len(day.Episodes)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Planned %d episodes across %d days\n", planned, len(scheduleDays))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "First date to plan (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days to plan (default from configuration)")

	return cmd
}

type scheduleDayJSON struct {
	Date           string                `json:"date"`
	PlannedMinutes int                   `json:"planned_minutes"`
	UsedMinutes    int                   `json:"used_minutes"`
	Episodes       []scheduleEpisodeJSON `json:"episodes"`
}

type scheduleEpisodeJSON struct {
	ID             int64  `json:"id"`
	EntryID        int64  `json:"entry_id"`
	Title          string `json:"title"`
	Season         int    `json:"season"`
	Episode        int    `json:"episode"`
	RuntimeMinutes int    `json:"runtime_minutes"`
	Status         string `json:"status"`
}

func newScheduleShowCommand(ctx *commandContext) *cobra.Command {
	var (
		fromFlag   string
		toFlag     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			from := now
			to := now.AddDate(0, 0, 6)
			if fromFlag != "" {
				parsed, err := parseDate(fromFlag)
				if err != nil {
					return err
				}
				from = parsed
				to = parsed.AddDate(0, 0, 6)
			}
			if toFlag != "" {
				parsed, err := parseDate(toFlag)
				if err != nil {
					return err
				}
				to = parsed
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				scheduleDays, err := svc.Days(runCtx, from, to)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeScheduleJSON(cmd, scheduleDays)
				}
				if len(scheduleDays) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No schedule stored for this range; run \"slate schedule generate\".")
					return nil
				}
				for _, day := range scheduleDays {
					writeScheduleDay(cmd, day)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "First date to show (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last date to show (YYYY-MM-DD, default a week out)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the schedule as JSON")

	return cmd
}

func writeScheduleJSON(cmd *cobra.Command, days []*watchlist.ScheduleDay) error {
	payload := make([]scheduleDayJSON, 0, len(days))
	for _, day := range days {
		entry := scheduleDayJSON{
			Date:           day.Date.Format("2006-01-02"),
			PlannedMinutes: day.PlannedMinutes,
			UsedMinutes:    day.UsedMinutes(),
			Episodes:       make([]scheduleEpisodeJSON, 0, len(day.Episodes)),
		}
		for _, episode := range day.Episodes {
			entry.Episodes = append(entry.Episodes, scheduleEpisodeJSON{
				ID:             episode.ID,
				EntryID:        episode.EntryID,
				Title:          episode.Title,
				Season:         episode.Season,
				Episode:        episode.Episode,
				RuntimeMinutes: episode.RuntimeMinutes,
				Status:         string(episode.Status),
			})
		}
		payload = append(payload, entry)
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writeScheduleDay(cmd *cobra.Command, day *watchlist.ScheduleDay) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s): %d/%d min\n",
		day.Date.Format("2006-01-02"), day.Date.Weekday(), day.UsedMinutes(), day.PlannedMinutes)
	if len(day.Episodes) == 0 {
		fmt.Fprintln(out, "  nothing planned")
		return
	}
	if !stdoutIsTerminal() {
		for _, episode := range day.Episodes {
			fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%s\n",
				episode.ID, episode.Title,
				formatPosition(episode.Season, episode.Episode),
				episode.RuntimeMinutes, episode.Status)
		}
		return
	}
	rows := make([][]string, 0, len(day.Episodes))
	for _, episode := range day.Episodes {
		rows = append(rows, []string{
			strconv.FormatInt(episode.ID, 10),
			episode.Title,
			formatPosition(episode.Season, episode.Episode),
			strconv.Itoa(episode.RuntimeMinutes),
			statusLabel(string(episode.Status)),
		})
	}
	table := renderTable(
		[]string{"ID", "Title", "Episode", "Minutes", "Status"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
	fmt.Fprintln(out, table)
}

func newScheduleCheckInCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-in <episode-id> <watched|skipped|pending>",
		Short: "Record what happened to a scheduled episode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			episodeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid episode ID %q", args[0])
			}
			status, ok := watchlist.ParseEpisodeStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown episode status %q", args[1])
			}
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				if err := svc.CheckIn(runCtx, episodeID, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Episode %d marked %s\n", episodeID, status)
				return nil
			})
		},
	}
}
