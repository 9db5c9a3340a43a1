package catalog

import "time"

// Lifecycle describes whether a show is still producing new episodes.
type Lifecycle string

const (
	LifecycleOngoing Lifecycle = "ongoing"
	LifecycleEnded   Lifecycle = "ended"
)

// Show captures the subset of TMDB TV metadata the scheduler works with.
type Show struct {
	ID             int64
	Title          string
	Genres         []string
	RuntimeMinutes int
	TotalSeasons   int
	TotalEpisodes  int
	Lifecycle      Lifecycle
	FirstAirDate   *time.Time
	LastAirDate    *time.Time
}

// Episode describes a single episode within a season payload.
type Episode struct {
	Season  int
	Number  int
	Title   string
	Runtime int
	AirDate *time.Time
}

// Season holds the ordered episode list for one season of a show.
type Season struct {
	ShowID   int64
	Number   int
	Episodes []Episode
}

// EpisodeAirDate reports the air date for the given episode number, if the
// season payload includes it.
func (s *Season) EpisodeAirDate(episode int) (*time.Time, bool) {
	if s == nil {
		return nil, false
	}
	for _, ep := range s.Episodes {
		if ep.Number == episode {
			return ep.AirDate, true
		}
	}
	return nil, false
}

// EpisodeCount returns the number of episodes in the season payload.
func (s *Season) EpisodeCount() int {
	if s == nil {
		return 0
	}
	return len(s.Episodes)
}

// Result represents a single TMDB TV search match.
type Result struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}
