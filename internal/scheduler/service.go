package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slate/internal/catalog"
	"slate/internal/logging"
	"slate/internal/services"
	"slate/internal/watchlist"
)

const defaultCatalogTimeout = 10 * time.Second

// Service exposes the watch-queue operations and schedule generation.
type Service struct {
	store          *watchlist.Store
	catalog        catalog.Service
	logger         *slog.Logger
	catalogTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithCatalogTimeout bounds each catalog call made by the service.
func WithCatalogTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.catalogTimeout = timeout
		}
	}
}

// New creates a scheduler service.
func New(store *watchlist.Store, catalogSvc catalog.Service, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:          store,
		catalog:        catalogSvc,
		logger:         logging.NewComponentLogger(logger, "scheduler"),
		catalogTimeout: defaultCatalogTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// FollowOptions carries optional parameters for Follow.
type FollowOptions struct {
	Priority     int
	StartSeason  int
	StartEpisode int
}

// Follow fetches the show from the catalog and creates a queued entry.
func (s *Service) Follow(ctx context.Context, showID int64, opts FollowOptions) (*watchlist.Entry, error) {
	existing, err := s.store.GetByShowID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, services.Wrap(services.ErrValidation, "scheduler", "follow",
			fmt.Sprintf("show %d is already followed as entry %d", showID, existing.ID), nil)
	}

	show, err := s.fetchShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.Follow(ctx, watchlist.NewEntryParams{
		Show:         show,
		Priority:     opts.Priority,
		StartSeason:  opts.StartSeason,
		StartEpisode: opts.StartEpisode,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("followed show",
		logging.Int64(logging.FieldEntryID, entry.ID),
		logging.Int64(logging.FieldShowID, showID),
		logging.String("title", entry.Title))
	return entry, nil
}

// Unfollow removes an entry and everything attached to it.
func (s *Service) Unfollow(ctx context.Context, entryID int64) error {
	removed, err := s.store.Unfollow(ctx, entryID)
	if err != nil {
		return err
	}
	if !removed {
		return services.Wrap(services.ErrNotFound, "scheduler", "unfollow",
			fmt.Sprintf("entry %d", entryID), nil)
	}
	s.logger.Info("unfollowed show", logging.Int64(logging.FieldEntryID, entryID))
	return nil
}

// Entry fetches an entry with its assignments.
func (s *Service) Entry(ctx context.Context, entryID int64) (*watchlist.Entry, error) {
	entry, err := s.store.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, services.Wrap(services.ErrNotFound, "scheduler", "get entry",
			fmt.Sprintf("entry %d", entryID), nil)
	}
	return entry, nil
}

// Entries lists entries filtered by status.
func (s *Service) Entries(ctx context.Context, statuses ...watchlist.Status) ([]*watchlist.Entry, error) {
	return s.store.List(ctx, statuses...)
}

// Refresh re-fetches catalog metadata for one entry.
func (s *Service) Refresh(ctx context.Context, entryID int64) (*watchlist.Entry, error) {
	entry, err := s.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	show, err := s.fetchShow(ctx, entry.ShowID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateSnapshot(ctx, entry.ID, show); err != nil {
		return nil, err
	}
	s.logger.Info("refreshed catalog snapshot",
		logging.Int64(logging.FieldEntryID, entry.ID),
		logging.Int64(logging.FieldShowID, entry.ShowID))
	return s.Entry(ctx, entryID)
}

// RefreshAll re-fetches catalog metadata for every non-terminal entry.
// Individual failures are logged and skipped; the count of refreshed
// entries is returned.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	entries, err := s.store.List(ctx, watchlist.StatusQueued, watchlist.StatusWatching)
	if err != nil {
		return 0, err
	}
	refreshed := 0
	for _, entry := range entries {
		show, err := s.fetchShow(ctx, entry.ShowID)
		if err != nil {
			s.logger.Warn("refresh skipped",
				logging.Int64(logging.FieldEntryID, entry.ID),
				logging.Error(err))
			continue
		}
		if err := s.store.UpdateSnapshot(ctx, entry.ID, show); err != nil {
			return refreshed, err
		}
		refreshed++
	}
	return refreshed, nil
}

// Search queries the catalog for shows matching query.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.catalogTimeout)
	defer cancel()

	response, err := s.catalog.SearchShow(callCtx, query)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalUnavailable, "scheduler", "catalog search",
			fmt.Sprintf("query %q", query), err)
	}
	return response.Results, nil
}

// Settings returns the current settings row.
func (s *Service) Settings(ctx context.Context) (watchlist.Settings, error) {
	return s.store.GetSettings(ctx)
}

// SaveSettings persists the settings row.
func (s *Service) SaveSettings(ctx context.Context, settings watchlist.Settings) error {
	return s.store.SaveSettings(ctx, settings)
}

func (s *Service) fetchShow(ctx context.Context, showID int64) (*catalog.Show, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.catalogTimeout)
	defer cancel()

	show, err := s.catalog.GetShow(callCtx, showID)
	if err != nil {
		if errors.Is(err, catalog.ErrShowNotFound) {
			return nil, services.Wrap(services.ErrNotFound, "scheduler", "catalog lookup",
				fmt.Sprintf("show %d", showID), err)
		}
		return nil, services.Wrap(services.ErrExternalUnavailable, "scheduler", "catalog lookup",
			fmt.Sprintf("show %d", showID), err)
	}
	return show, nil
}
