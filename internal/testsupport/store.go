package testsupport

import (
	"context"
	"testing"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/watchlist"
)

// MustOpenStore opens a watchlist.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *watchlist.Store {
	t.Helper()

	store, err := watchlist.Open(cfg)
	if err != nil {
		t.Fatalf("watchlist.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// FollowShow creates a queued entry for tests using the provided store.
func FollowShow(t testing.TB, store *watchlist.Store, show *catalog.Show) *watchlist.Entry {
	t.Helper()

	entry, err := store.Follow(context.Background(), watchlist.NewEntryParams{Show: show})
	if err != nil {
		t.Fatalf("store.Follow: %v", err)
	}
	return entry
}
