package watchlist_test

import (
	"context"
	"testing"

	"slate/internal/catalog"
	"slate/internal/testsupport"
	"slate/internal/watchlist"
)

func sampleShow(id int64) *catalog.Show {
	return &catalog.Show{
		ID:             id,
		Title:          "Sample Show",
		Genres:         []string{"Drama", "Crime"},
		RuntimeMinutes: 45,
		TotalSeasons:   2,
		TotalEpisodes:  20,
		Lifecycle:      catalog.LifecycleEnded,
	}
}

func TestFollowCreatesQueuedEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry, err := store.Follow(ctx, watchlist.NewEntryParams{Show: sampleShow(100)})
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected entry ID to be assigned")
	}
	if entry.Status != watchlist.StatusQueued {
		t.Fatalf("expected queued status, got %q", entry.Status)
	}
	if entry.CurrentSeason != 1 || entry.CurrentEpisode != 1 {
		t.Fatalf("expected default start position, got S%dE%d", entry.CurrentSeason, entry.CurrentEpisode)
	}
	if len(entry.Genres) != 2 || entry.Genres[0] != "Drama" {
		t.Fatalf("unexpected genres %#v", entry.Genres)
	}

	fetched, err := store.GetByShowID(ctx, 100)
	if err != nil {
		t.Fatalf("GetByShowID failed: %v", err)
	}
	if fetched == nil || fetched.ID != entry.ID {
		t.Fatalf("expected to find entry by show id, got %#v", fetched)
	}
}

func TestFollowRejectsDuplicateShow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.Follow(ctx, watchlist.NewEntryParams{Show: sampleShow(100)}); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if _, err := store.Follow(ctx, watchlist.NewEntryParams{Show: sampleShow(100)}); err == nil {
		t.Fatal("expected error following the same show twice")
	}
}

func TestFollowWithStartPosition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	entry, err := store.Follow(context.Background(), watchlist.NewEntryParams{
		Show:         sampleShow(200),
		StartSeason:  2,
		StartEpisode: 5,
	})
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if entry.StartSeason != 2 || entry.StartEpisode != 5 {
		t.Fatalf("unexpected start position S%dE%d", entry.StartSeason, entry.StartEpisode)
	}
	if entry.CurrentSeason != 2 || entry.CurrentEpisode != 5 {
		t.Fatalf("expected current position to match start, got S%dE%d", entry.CurrentSeason, entry.CurrentEpisode)
	}
}

func TestUnfollowCascadesAssignments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := testsupport.FollowShow(t, store, sampleShow(100))
	if _, err := store.PromoteEntry(ctx, entry.ID, 1); err != nil {
		t.Fatalf("PromoteEntry failed: %v", err)
	}

	removed, err := store.Unfollow(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	if !removed {
		t.Fatal("expected entry to be removed")
	}

	assignments, err := store.AssignmentsForEntry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("AssignmentsForEntry failed: %v", err)
	}
	if len(assignments) != 0 {
		t.Fatalf("expected cascade to remove assignments, got %d", len(assignments))
	}
}

func TestListFiltersByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.FollowShow(t, store, sampleShow(100))
	second := testsupport.FollowShow(t, store, sampleShow(101))
	if _, err := store.PromoteEntry(ctx, first.ID, 2); err != nil {
		t.Fatalf("PromoteEntry failed: %v", err)
	}

	queued, err := store.List(ctx, watchlist.StatusQueued)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(queued) != 1 || queued[0].ID != second.ID {
		t.Fatalf("expected only the second entry queued, got %#v", queued)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
}

func TestUpdateSnapshotRefreshesMetadata(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := testsupport.FollowShow(t, store, sampleShow(100))

	refreshed := sampleShow(100)
	refreshed.Title = "Renamed Show"
	refreshed.TotalEpisodes = 30
	refreshed.Lifecycle = catalog.LifecycleOngoing
	if err := store.UpdateSnapshot(ctx, entry.ID, refreshed); err != nil {
		t.Fatalf("UpdateSnapshot failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Title != "Renamed Show" || fetched.TotalEpisodes != 30 {
		t.Fatalf("snapshot not applied: %#v", fetched)
	}
	if !fetched.IsOngoing() {
		t.Fatal("expected refreshed entry to be ongoing")
	}
}

func TestParseStatus(t *testing.T) {
	status, ok := watchlist.ParseStatus(" Watching ")
	if !ok || status != watchlist.StatusWatching {
		t.Fatalf("unexpected parse result %q ok=%v", status, ok)
	}
	if _, ok := watchlist.ParseStatus("bogus"); ok {
		t.Fatal("expected unknown status to fail parsing")
	}
	if _, ok := watchlist.ParseStatus(""); ok {
		t.Fatal("expected empty status to fail parsing")
	}
}
