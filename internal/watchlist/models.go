package watchlist

import (
	"strings"
	"time"

	"slate/internal/catalog"
)

// Status represents the lifecycle of a watchlist entry.
type Status string

const (
	StatusQueued   Status = "queued"
	StatusWatching Status = "watching"
	StatusFinished Status = "finished"
	StatusDropped  Status = "dropped"
)

var allStatuses = []Status{
	StatusQueued,
	StatusWatching,
	StatusFinished,
	StatusDropped,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// EpisodeStatus tracks what happened to a scheduled episode after planning.
type EpisodeStatus string

const (
	EpisodePending EpisodeStatus = "pending"
	EpisodeWatched EpisodeStatus = "watched"
	EpisodeSkipped EpisodeStatus = "skipped"
)

var episodeStatusSet = map[EpisodeStatus]struct{}{
	EpisodePending: {},
	EpisodeWatched: {},
	EpisodeSkipped: {},
}

// ParseEpisodeStatus converts a string into a known EpisodeStatus.
func ParseEpisodeStatus(value string) (EpisodeStatus, bool) {
	normalized := EpisodeStatus(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := episodeStatusSet[normalized]
	return normalized, ok
}

// Position is an entry's next episode to schedule.
type Position struct {
	Season  int
	Episode int
}

// Entry represents one followed show persisted in SQLite. Catalog metadata
// is snapshotted at follow time and updated by refresh.
type Entry struct {
	ID             int64
	ShowID         int64
	Title          string
	Genres         []string
	RuntimeMinutes int
	TotalSeasons   int
	TotalEpisodes  int
	Lifecycle      catalog.Lifecycle
	Status         Status
	Priority       int
	CurrentSeason  int
	CurrentEpisode int
	StartSeason    int
	StartEpisode   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Assignments    []DayAssignment
}

// Current returns the entry's next episode position.
func (e *Entry) Current() Position {
	return Position{Season: e.CurrentSeason, Episode: e.CurrentEpisode}
}

// IsOngoing reports whether the underlying show still produces episodes.
func (e *Entry) IsOngoing() bool {
	return e.Lifecycle == catalog.LifecycleOngoing
}

// Weekdays returns the sorted weekday indices the entry is assigned to.
func (e *Entry) Weekdays() []int {
	days := make([]int, 0, len(e.Assignments))
	for _, assignment := range e.Assignments {
		days = append(days, assignment.Weekday)
	}
	return days
}

// DayAssignment pins an entry to one weekday (0=Sunday).
type DayAssignment struct {
	ID        int64
	EntryID   int64
	Weekday   int
	CreatedAt time.Time
}

// ScheduleDay is the derived plan for one calendar date.
type ScheduleDay struct {
	ID             int64
	Date           time.Time
	PlannedMinutes int
	Episodes       []ScheduledEpisode
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UsedMinutes sums the runtime of all episodes placed on the day.
func (d *ScheduleDay) UsedMinutes() int {
	total := 0
	for _, ep := range d.Episodes {
		total += ep.RuntimeMinutes
	}
	return total
}

// ScheduledEpisode is one (entry, season, episode) placed into a day.
type ScheduledEpisode struct {
	ID             int64
	DayID          int64
	EntryID        int64
	ShowID         int64
	Title          string
	Season         int
	Episode        int
	RuntimeMinutes int
	Position       int
	Status         EpisodeStatus
}

// Settings is the singleton budget and scheduling configuration row.
// Overrides are indexed Sunday through Saturday; nil means "use the
// weekday or weekend default".
type Settings struct {
	WeekdayMinutes int
	WeekendMinutes int
	Overrides      [7]*int
	SchedulingMode string
	AutoPromote    bool
	UpdatedAt      time.Time
}
