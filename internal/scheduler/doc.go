// Package scheduler implements the watch-queue state machine and the
// schedule generator.
//
// It coordinates the watchlist store, the catalog service, and the planner's
// scoring rules: promotion picks a weekday and moves an entry to watching,
// demotion and finishing free its days, and generation materializes a
// day-by-day episode plan for a date range. Catalog lookups run under a
// per-call timeout and degrade to "unavailable" on failure so a slow or
// broken catalog can delay a show but never corrupt committed schedule
// state.
package scheduler
