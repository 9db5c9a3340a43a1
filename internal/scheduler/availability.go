package scheduler

import (
	"context"
	"time"

	"slate/internal/watchlist"
)

// availability is the outcome of one episode availability check.
type availability struct {
	available bool
	airDate   *time.Time
}

// checkAvailability asks the catalog whether an entry's episode has aired as
// of today. An episode missing from the season payload, or carrying no air
// date, counts as unavailable.
func (s *Service) checkAvailability(ctx context.Context, entry *watchlist.Entry, position watchlist.Position) (availability, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.catalogTimeout)
	defer cancel()

	season, err := s.catalog.GetSeason(callCtx, entry.ShowID, position.Season)
	if err != nil {
		return availability{}, err
	}

	airDate, ok := season.EpisodeAirDate(position.Episode)
	if !ok || airDate == nil {
		return availability{available: false, airDate: airDate}, nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if airDate.After(today) {
		return availability{available: false, airDate: airDate}, nil
	}
	return availability{available: true, airDate: airDate}, nil
}

// advancePosition moves an entry's position forward one episode, rolling
// over to the next season when the catalog knows the current season's
// length. When the catalog cannot answer, the episode number increments
// within the current season.
func (s *Service) advancePosition(ctx context.Context, entry *watchlist.Entry, position watchlist.Position) watchlist.Position {
	next := watchlist.Position{Season: position.Season, Episode: position.Episode + 1}

	callCtx, cancel := context.WithTimeout(ctx, s.catalogTimeout)
	defer cancel()

	season, err := s.catalog.GetSeason(callCtx, entry.ShowID, position.Season)
	if err != nil || season.EpisodeCount() == 0 {
		return next
	}
	if next.Episode > season.EpisodeCount() && (entry.TotalSeasons == 0 || position.Season < entry.TotalSeasons) {
		return watchlist.Position{Season: position.Season + 1, Episode: 1}
	}
	return next
}
