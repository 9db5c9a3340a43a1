package scheduler

import (
	"context"
	"sort"

	"slate/internal/planner"
)

// DayOverview summarizes one weekday's load for the capacity board.
type DayOverview struct {
	Weekday  int
	Capacity planner.Capacity
	Genres   []string
	Shows    []string
}

// Overview computes the capacity board for all seven weekdays from the
// current watching assignments and settings.
func (s *Service) Overview(ctx context.Context) ([7]DayOverview, error) {
	var overview [7]DayOverview

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return overview, err
	}
	policy := settings.BudgetPolicy()

	assignments, err := s.activeAssignments(ctx)
	if err != nil {
		return overview, err
	}

	watching, err := s.store.WatchingAssignments(ctx, -1)
	if err != nil {
		return overview, err
	}

	for weekday := 0; weekday < 7; weekday++ {
		genres := planner.GenresOnDay(weekday, assignments)
		names := make([]string, 0, len(genres))
		for genre := range genres {
			names = append(names, genre)
		}
		sort.Strings(names)

		var shows []string
		for _, wa := range watching {
			if wa.Assignment.Weekday == weekday {
				shows = append(shows, wa.Entry.Title)
			}
		}

		overview[weekday] = DayOverview{
			Weekday:  weekday,
			Capacity: planner.DayCapacity(policy, weekday, assignments),
			Genres:   names,
			Shows:    shows,
		}
	}
	return overview, nil
}
