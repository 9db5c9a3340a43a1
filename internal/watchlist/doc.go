// Package watchlist persists followed shows, their weekday assignments, and
// the generated day-by-day episode schedule in SQLite.
//
// The store is the single source of truth for watch state: entry status and
// episode position, day assignments, the settings singleton, and the derived
// schedule_days/scheduled_episodes cache. Multi-step mutations (promotion,
// demotion, finishing, schedule rebuilds) run inside transactions so a crash
// cannot leave an entry marked watching without a day assignment.
package watchlist
