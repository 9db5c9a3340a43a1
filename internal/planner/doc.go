// Package planner holds the pure day-assignment arithmetic: weekday budget
// resolution, per-day capacity, genre variety indexing, and best-day
// selection. Functions here take explicit state snapshots and never touch
// the store, which keeps the scoring rules deterministic and directly
// testable.
package planner
