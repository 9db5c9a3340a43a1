package scheduler

import (
	"context"
	"fmt"

	"slate/internal/logging"
	"slate/internal/planner"
	"slate/internal/services"
	"slate/internal/watchlist"
)

// Promote moves a queued entry to watching and assigns it the best weekday.
// Ongoing shows are checked for episode availability first; an unaired next
// episode blocks promotion without touching any state.
func (s *Service) Promote(ctx context.Context, entryID int64) (*watchlist.Entry, error) {
	ctx = services.WithOperation(services.WithEntryID(ctx, entryID), "promote")
	logger := logging.WithContext(ctx, s.logger)

	entry, err := s.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != watchlist.StatusQueued {
		return nil, services.Wrap(services.ErrInvalidTransition, "scheduler", "promote",
			fmt.Sprintf("entry %d has status %s, want %s", entryID, entry.Status, watchlist.StatusQueued), nil)
	}

	if entry.IsOngoing() {
		result, err := s.checkAvailability(ctx, entry, entry.Current())
		if err != nil {
			return nil, services.Wrap(services.ErrExternalUnavailable, "scheduler", "promote",
				fmt.Sprintf("availability check for entry %d", entryID), err)
		}
		if !result.available {
			return nil, &services.AvailabilityError{
				ShowID:  entry.ShowID,
				Season:  entry.CurrentSeason,
				Episode: entry.CurrentEpisode,
				AirDate: result.airDate,
			}
		}
	}

	weekday, err := s.bestDay(ctx, entry.RuntimeMinutes, entry.Genres)
	if err != nil {
		return nil, err
	}

	promoted, err := s.store.PromoteEntry(ctx, entryID, weekday)
	if err != nil {
		return nil, err
	}
	if !promoted {
		return nil, services.Wrap(services.ErrInvalidTransition, "scheduler", "promote",
			fmt.Sprintf("entry %d left the queued state", entryID), nil)
	}

	logger.Info("promoted entry", logging.Int(logging.FieldWeekday, weekday))
	return s.Entry(ctx, entryID)
}

// Demote returns a watching entry to the queue and clears its assignments.
func (s *Service) Demote(ctx context.Context, entryID int64) (*watchlist.Entry, error) {
	ctx = services.WithOperation(services.WithEntryID(ctx, entryID), "demote")
	logger := logging.WithContext(ctx, s.logger)

	entry, err := s.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != watchlist.StatusWatching {
		return nil, services.Wrap(services.ErrInvalidTransition, "scheduler", "demote",
			fmt.Sprintf("entry %d has status %s, want %s", entryID, entry.Status, watchlist.StatusWatching), nil)
	}

	demoted, err := s.store.DemoteEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !demoted {
		return nil, services.Wrap(services.ErrInvalidTransition, "scheduler", "demote",
			fmt.Sprintf("entry %d left the watching state", entryID), nil)
	}

	logger.Info("demoted entry")
	return s.Entry(ctx, entryID)
}

// FinishResult reports what finishing an entry did.
type FinishResult struct {
	Entry        *watchlist.Entry
	MovedToQueue bool
}

// Finish completes an entry's current run. Ongoing shows go back to the
// queue to wait for new episodes; ended shows become finished. Assignment
// cleanup happens regardless of the entry's prior status.
func (s *Service) Finish(ctx context.Context, entryID int64) (FinishResult, error) {
	ctx = services.WithOperation(services.WithEntryID(ctx, entryID), "finish")
	logger := logging.WithContext(ctx, s.logger)

	entry, err := s.Entry(ctx, entryID)
	if err != nil {
		return FinishResult{}, err
	}

	target := watchlist.StatusFinished
	movedToQueue := false
	if entry.IsOngoing() {
		target = watchlist.StatusQueued
		movedToQueue = true
	}

	if err := s.store.FinishEntry(ctx, entryID, target); err != nil {
		return FinishResult{}, err
	}

	logger.Info("finished entry",
		logging.String("target", string(target)),
		logging.Bool("moved_to_queue", movedToQueue))

	updated, err := s.Entry(ctx, entryID)
	if err != nil {
		return FinishResult{}, err
	}
	return FinishResult{Entry: updated, MovedToQueue: movedToQueue}, nil
}

// Drop marks an entry dropped and clears its assignments. Explicit user
// action, not a state-machine transition.
func (s *Service) Drop(ctx context.Context, entryID int64) (*watchlist.Entry, error) {
	if _, err := s.Entry(ctx, entryID); err != nil {
		return nil, err
	}
	if err := s.store.FinishEntry(ctx, entryID, watchlist.StatusDropped); err != nil {
		return nil, err
	}
	s.logger.Info("dropped entry", logging.Int64(logging.FieldEntryID, entryID))
	return s.Entry(ctx, entryID)
}

// SetWeekdays replaces an entry's assignments with the given weekdays,
// bypassing best-day selection. Duplicates and out-of-range values are
// discarded.
func (s *Service) SetWeekdays(ctx context.Context, entryID int64, weekdays []int) (*watchlist.Entry, error) {
	if _, err := s.Entry(ctx, entryID); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(weekdays))
	valid := make([]int, 0, len(weekdays))
	for _, weekday := range weekdays {
		if weekday < 0 || weekday > 6 {
			continue
		}
		if _, ok := seen[weekday]; ok {
			continue
		}
		seen[weekday] = struct{}{}
		valid = append(valid, weekday)
	}

	if err := s.store.ReplaceAssignments(ctx, entryID, valid); err != nil {
		return nil, err
	}
	s.logger.Info("set weekdays",
		logging.Int64(logging.FieldEntryID, entryID),
		logging.Any("weekdays", valid))
	return s.Entry(ctx, entryID)
}

// SetPriority changes an entry's position in the queue ordering.
func (s *Service) SetPriority(ctx context.Context, entryID int64, priority int) (*watchlist.Entry, error) {
	if _, err := s.Entry(ctx, entryID); err != nil {
		return nil, err
	}
	if err := s.store.UpdatePriority(ctx, entryID, priority); err != nil {
		return nil, err
	}
	return s.Entry(ctx, entryID)
}

// AutoPromote selects the queued entry whose runtime is closest to the
// freed runtime and promotes it. Returns nil without error when the queue
// is empty.
func (s *Service) AutoPromote(ctx context.Context, freedRuntimeMinutes int) (*watchlist.Entry, error) {
	queued, err := s.store.List(ctx, watchlist.StatusQueued)
	if err != nil {
		return nil, err
	}
	candidates := make([]planner.Candidate, 0, len(queued))
	for _, entry := range queued {
		candidates = append(candidates, planner.Candidate{
			EntryID:        entry.ID,
			RuntimeMinutes: entry.RuntimeMinutes,
			Priority:       entry.Priority,
		})
	}

	best, ok := planner.BestReplacement(candidates, freedRuntimeMinutes)
	if !ok {
		return nil, nil
	}
	return s.Promote(ctx, best.EntryID)
}

func (s *Service) bestDay(ctx context.Context, runtimeMinutes int, genres []string) (int, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	assignments, err := s.activeAssignments(ctx)
	if err != nil {
		return 0, err
	}
	return planner.BestDay(settings.BudgetPolicy(), assignments, runtimeMinutes, genres), nil
}

func (s *Service) activeAssignments(ctx context.Context) ([]planner.Assignment, error) {
	watching, err := s.store.WatchingAssignments(ctx, -1)
	if err != nil {
		return nil, err
	}
	assignments := make([]planner.Assignment, 0, len(watching))
	for _, wa := range watching {
		assignments = append(assignments, planner.Assignment{
			EntryID:        wa.Entry.ID,
			Weekday:        wa.Assignment.Weekday,
			RuntimeMinutes: wa.Entry.RuntimeMinutes,
			Genres:         wa.Entry.Genres,
		})
	}
	return assignments, nil
}
