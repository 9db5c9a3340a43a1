package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slate/internal/logging"
	"slate/internal/services"
	"slate/internal/watchlist"
)

// Generate rebuilds the schedule for numDays starting at startDate. Each
// date is committed in its own transaction, so a mid-range failure leaves
// the dates already written as valid committed state.
//
// Placement walks a day's watching assignments in priority order, one
// episode per show per day: an episode is placed when it fits the remaining
// budget, its number is within the show's episode count, and, for ongoing
// shows, the catalog confirms it has aired. Skipped shows consume no budget.
func (s *Service) Generate(ctx context.Context, startDate time.Time, numDays int) ([]*watchlist.ScheduleDay, error) {
	if numDays <= 0 {
		return nil, services.Wrap(services.ErrValidation, "scheduler", "generate",
			fmt.Sprintf("numDays must be positive, got %d", numDays), nil)
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, s.logger)

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	policy := settings.BudgetPolicy()

	// Positions advanced by earlier dates in this run, threaded explicitly
	// so later dates schedule the next episode rather than re-reading stale
	// store state.
	positions := make(map[int64]watchlist.Position)

	days := make([]*watchlist.ScheduleDay, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := startDate.AddDate(0, 0, i)
		weekday := int(date.Weekday())
		budget := policy.MinutesForWeekday(weekday)

		assigned, err := s.store.WatchingAssignments(ctx, weekday)
		if err != nil {
			return days, err
		}

		episodes := make([]watchlist.ScheduledEpisode, 0, len(assigned))
		advanced := make(map[int64]watchlist.Position)
		remaining := budget

		for _, wa := range assigned {
			entry := wa.Entry
			position, ok := positions[entry.ID]
			if !ok {
				position = entry.Current()
			}

			if entry.RuntimeMinutes > remaining {
				continue
			}
			if entry.TotalEpisodes > 0 && position.Episode > entry.TotalEpisodes {
				continue
			}
			if entry.IsOngoing() {
				result, err := s.checkAvailability(ctx, entry, position)
				if err != nil {
					logger.Warn("availability check failed, skipping show for this day",
						logging.Int64(logging.FieldEntryID, entry.ID),
						logging.String(logging.FieldDay, date.Format("2006-01-02")),
						logging.Error(err))
					continue
				}
				if !result.available {
					continue
				}
			}

			episodes = append(episodes, watchlist.ScheduledEpisode{
				EntryID:        entry.ID,
				ShowID:         entry.ShowID,
				Title:          entry.Title,
				Season:         position.Season,
				Episode:        position.Episode,
				RuntimeMinutes: entry.RuntimeMinutes,
				Status:         watchlist.EpisodePending,
			})
			remaining -= entry.RuntimeMinutes

			next := s.advancePosition(ctx, entry, position)
			positions[entry.ID] = next
			advanced[entry.ID] = next
		}

		day, err := s.store.RebuildDay(ctx, date, budget, episodes, advanced)
		if err != nil {
			return days, err
		}
		days = append(days, day)

		logger.Info("generated day",
			logging.String(logging.FieldDay, date.Format("2006-01-02")),
			logging.Int("episodes", len(day.Episodes)),
			logging.Int("planned_minutes", budget))
	}

	return days, nil
}

// Day fetches a generated schedule day, or nil when the date has not been
// generated.
func (s *Service) Day(ctx context.Context, date time.Time) (*watchlist.ScheduleDay, error) {
	return s.store.GetDay(ctx, date)
}

// Days fetches the generated schedule days within [start, end].
func (s *Service) Days(ctx context.Context, start, end time.Time) ([]*watchlist.ScheduleDay, error) {
	return s.store.Days(ctx, start, end)
}

// CheckIn records what happened to a scheduled episode.
func (s *Service) CheckIn(ctx context.Context, episodeID int64, status watchlist.EpisodeStatus) error {
	updated, err := s.store.SetEpisodeStatus(ctx, episodeID, status)
	if err != nil {
		return err
	}
	if !updated {
		return services.Wrap(services.ErrNotFound, "scheduler", "check-in",
			fmt.Sprintf("scheduled episode %d", episodeID), nil)
	}
	return nil
}
