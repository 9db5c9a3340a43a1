package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"slate/internal/catalog"
	"slate/internal/logging"
	"slate/internal/scheduler"
	"slate/internal/services"
	"slate/internal/testsupport"
	"slate/internal/watchlist"
)

func newService(t *testing.T) (*scheduler.Service, *watchlist.Store, *testsupport.FakeCatalog) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fake := testsupport.NewFakeCatalog()
	svc := scheduler.New(store, fake, logging.NewNop())
	return svc, store, fake
}

func endedShow(id int64, runtime int, genres ...string) *catalog.Show {
	return &catalog.Show{
		ID:             id,
		Title:          "Ended Show",
		Genres:         genres,
		RuntimeMinutes: runtime,
		TotalSeasons:   1,
		TotalEpisodes:  10,
		Lifecycle:      catalog.LifecycleEnded,
	}
}

func ongoingShow(id int64, runtime int, genres ...string) *catalog.Show {
	return &catalog.Show{
		ID:             id,
		Title:          "Ongoing Show",
		Genres:         genres,
		RuntimeMinutes: runtime,
		TotalSeasons:   2,
		TotalEpisodes:  20,
		Lifecycle:      catalog.LifecycleOngoing,
	}
}

func pastDate() *time.Time {
	d := time.Now().UTC().AddDate(0, 0, -30)
	return &d
}

func futureDate() *time.Time {
	d := time.Now().UTC().AddDate(0, 0, 14)
	return &d
}

func TestFollowCreatesEntryFromCatalog(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45, "Drama"))

	entry, err := svc.Follow(context.Background(), 100, scheduler.FollowOptions{})
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if entry.Status != watchlist.StatusQueued {
		t.Fatalf("expected queued entry, got %q", entry.Status)
	}
	if entry.Title != "Ended Show" || entry.RuntimeMinutes != 45 {
		t.Fatalf("catalog snapshot missing: %#v", entry)
	}
}

func TestFollowUnknownShow(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Follow(context.Background(), 404, scheduler.FollowOptions{})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestFollowDuplicate(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45))

	if _, err := svc.Follow(context.Background(), 100, scheduler.FollowOptions{}); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	_, err := svc.Follow(context.Background(), 100, scheduler.FollowOptions{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnfollowUnknownEntry(t *testing.T) {
	svc, _, _ := newService(t)
	if err := svc.Unfollow(context.Background(), 42); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestPromoteEndedShow(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45, "Drama"))

	ctx := context.Background()
	entry, err := svc.Follow(ctx, 100, scheduler.FollowOptions{})
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	promoted, err := svc.Promote(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Promote failed: %v", err)
	}
	if promoted.Status != watchlist.StatusWatching {
		t.Fatalf("expected watching, got %q", promoted.Status)
	}
	if len(promoted.Assignments) != 1 {
		t.Fatalf("expected one assignment after promote, got %d", len(promoted.Assignments))
	}
}

func TestPromoteRequiresQueued(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45))

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 100, scheduler.FollowOptions{})
	if _, err := svc.Promote(ctx, entry.ID); err != nil {
		t.Fatalf("Promote failed: %v", err)
	}

	_, err := svc.Promote(ctx, entry.ID)
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
}

func TestPromoteOngoingBlockedByUnairedEpisode(t *testing.T) {
	svc, store, fake := newService(t)
	show := ongoingShow(200, 30, "Comedy")
	fake.AddShow(show)
	fake.SetEpisodeAirDate(200, 1, 1, futureDate())

	ctx := context.Background()
	entry, err := svc.Follow(ctx, 200, scheduler.FollowOptions{})
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	_, err = svc.Promote(ctx, entry.ID)
	if !errors.Is(err, services.ErrNotYetAvailable) {
		t.Fatalf("expected NotYetAvailable, got %v", err)
	}
	var availErr *services.AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected AvailabilityError, got %T", err)
	}
	if availErr.AirDate == nil {
		t.Fatal("expected air date carried on the error")
	}

	// Failed promotion must not mutate state.
	fetched, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Status != watchlist.StatusQueued {
		t.Fatalf("expected entry to stay queued, got %q", fetched.Status)
	}
	if len(fetched.Assignments) != 0 {
		t.Fatalf("expected no assignments after failed promote, got %d", len(fetched.Assignments))
	}
}

func TestPromoteOngoingUnknownAirDate(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(ongoingShow(200, 30))
	fake.SetEpisodeAirDate(200, 1, 1, nil)

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 200, scheduler.FollowOptions{})

	_, err := svc.Promote(ctx, entry.ID)
	if !errors.Is(err, services.ErrNotYetAvailable) {
		t.Fatalf("expected NotYetAvailable, got %v", err)
	}
	var availErr *services.AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected AvailabilityError, got %T", err)
	}
	if availErr.AirDate != nil {
		t.Fatalf("expected unknown air date, got %v", availErr.AirDate)
	}
}

func TestPromoteOngoingCatalogFailure(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(ongoingShow(200, 30))

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 200, scheduler.FollowOptions{})
	fake.Err = errors.New("connection refused")

	_, err := svc.Promote(ctx, entry.ID)
	if !errors.Is(err, services.ErrExternalUnavailable) {
		t.Fatalf("expected ExternalUnavailable, got %v", err)
	}
}

func TestPromoteAiredOngoingShow(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(ongoingShow(200, 30))
	fake.SetEpisodeAirDate(200, 1, 1, pastDate())

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 200, scheduler.FollowOptions{})

	promoted, err := svc.Promote(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Promote failed: %v", err)
	}
	if promoted.Status != watchlist.StatusWatching {
		t.Fatalf("expected watching, got %q", promoted.Status)
	}
}

func TestDemoteRequiresWatching(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45))

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 100, scheduler.FollowOptions{})

	_, err := svc.Demote(ctx, entry.ID)
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
}

func TestFinishOngoingMovesBackToQueue(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(ongoingShow(200, 30))
	fake.SetEpisodeAirDate(200, 1, 1, pastDate())

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 200, scheduler.FollowOptions{})
	if _, err := svc.Promote(ctx, entry.ID); err != nil {
		t.Fatalf("Promote failed: %v", err)
	}

	result, err := svc.Finish(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if !result.MovedToQueue {
		t.Fatal("expected ongoing show to move back to queue")
	}
	if result.Entry.Status != watchlist.StatusQueued {
		t.Fatalf("expected queued, got %q", result.Entry.Status)
	}
	if len(result.Entry.Assignments) != 0 {
		t.Fatalf("expected assignments cleared, got %d", len(result.Entry.Assignments))
	}
}

func TestFinishEndedShow(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45))

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 100, scheduler.FollowOptions{})
	if _, err := svc.Promote(ctx, entry.ID); err != nil {
		t.Fatalf("Promote failed: %v", err)
	}

	result, err := svc.Finish(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if result.MovedToQueue {
		t.Fatal("ended show must not move back to queue")
	}
	if result.Entry.Status != watchlist.StatusFinished {
		t.Fatalf("expected finished, got %q", result.Entry.Status)
	}
}

func TestSetWeekdaysValidatesInput(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 45))

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 100, scheduler.FollowOptions{})

	updated, err := svc.SetWeekdays(ctx, entry.ID, []int{3, 3, -1, 9, 5})
	if err != nil {
		t.Fatalf("SetWeekdays failed: %v", err)
	}
	if days := updated.Weekdays(); len(days) != 2 || days[0] != 3 || days[1] != 5 {
		t.Fatalf("expected weekdays [3 5], got %#v", days)
	}
}

func TestAutoPromotePicksClosestRuntime(t *testing.T) {
	svc, _, fake := newService(t)
	fake.AddShow(endedShow(100, 44))
	long := endedShow(101, 90)
	long.Title = "Long Show"
	fake.AddShow(long)

	ctx := context.Background()
	first, _ := svc.Follow(ctx, 100, scheduler.FollowOptions{})
	if _, err := svc.Follow(ctx, 101, scheduler.FollowOptions{}); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	promoted, err := svc.AutoPromote(ctx, 45)
	if err != nil {
		t.Fatalf("AutoPromote failed: %v", err)
	}
	if promoted == nil || promoted.ID != first.ID {
		t.Fatalf("expected closest-runtime entry %d promoted, got %#v", first.ID, promoted)
	}
}

func TestAutoPromoteEmptyQueue(t *testing.T) {
	svc, _, _ := newService(t)
	promoted, err := svc.AutoPromote(context.Background(), 45)
	if err != nil {
		t.Fatalf("AutoPromote failed: %v", err)
	}
	if promoted != nil {
		t.Fatalf("expected no promotion from empty queue, got %#v", promoted)
	}
}

func TestRefreshUpdatesSnapshot(t *testing.T) {
	svc, _, fake := newService(t)
	show := endedShow(100, 45)
	fake.AddShow(show)

	ctx := context.Background()
	entry, _ := svc.Follow(ctx, 100, scheduler.FollowOptions{})

	renamed := endedShow(100, 50)
	renamed.Title = "Renamed"
	fake.AddShow(renamed)

	refreshed, err := svc.Refresh(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.Title != "Renamed" || refreshed.RuntimeMinutes != 50 {
		t.Fatalf("snapshot not refreshed: %#v", refreshed)
	}
}
