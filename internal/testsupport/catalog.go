package testsupport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slate/internal/catalog"
)

// FakeCatalog is an in-memory catalog.Service for tests. Shows and seasons
// are registered up front; Err, when set, is returned from every call to
// simulate an unreachable catalog.
type FakeCatalog struct {
	mu      sync.Mutex
	shows   map[int64]*catalog.Show
	seasons map[string]*catalog.Season
	Err     error
}

var _ catalog.Service = (*FakeCatalog)(nil)

// NewFakeCatalog returns an empty fake catalog.
func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		shows:   make(map[int64]*catalog.Show),
		seasons: make(map[string]*catalog.Season),
	}
}

// AddShow registers a show payload.
func (f *FakeCatalog) AddShow(show *catalog.Show) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows[show.ID] = show
}

// AddSeason registers a season payload for a show.
func (f *FakeCatalog) AddSeason(season *catalog.Season) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasons[seasonKey(season.ShowID, season.Number)] = season
}

// SetEpisodeAirDate registers a single-episode season entry, creating the
// season payload on demand.
func (f *FakeCatalog) SetEpisodeAirDate(showID int64, season, episode int, airDate *time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := seasonKey(showID, season)
	payload, ok := f.seasons[key]
	if !ok {
		payload = &catalog.Season{ShowID: showID, Number: season}
		f.seasons[key] = payload
	}
	for i := range payload.Episodes {
		if payload.Episodes[i].Number == episode {
			payload.Episodes[i].AirDate = airDate
			return
		}
	}
	payload.Episodes = append(payload.Episodes, catalog.Episode{Season: season, Number: episode, AirDate: airDate})
}

func (f *FakeCatalog) GetShow(ctx context.Context, showID int64) (*catalog.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	show, ok := f.shows[showID]
	if !ok {
		return nil, catalog.ErrShowNotFound
	}
	return show, nil
}

func (f *FakeCatalog) GetSeason(ctx context.Context, showID int64, seasonNumber int) (*catalog.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	season, ok := f.seasons[seasonKey(showID, seasonNumber)]
	if !ok {
		return nil, catalog.ErrShowNotFound
	}
	return season, nil
}

func (f *FakeCatalog) SearchShow(ctx context.Context, query string) (*catalog.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	resp := &catalog.Response{Page: 1}
	for _, show := range f.shows {
		resp.Results = append(resp.Results, catalog.Result{ID: show.ID, Name: show.Title})
	}
	resp.TotalResults = len(resp.Results)
	return resp, nil
}

func seasonKey(showID int64, season int) string {
	return fmt.Sprintf("%d|%d", showID, season)
}
