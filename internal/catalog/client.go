package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service defines the catalog operations consumed by scheduling code.
type Service interface {
	GetShow(ctx context.Context, showID int64) (*Show, error)
	GetSeason(ctx context.Context, showID int64, seasonNumber int) (*Season, error)
	SearchShow(ctx context.Context, query string) (*Response, error)
}

// Client provides access to the TMDB TV API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a TMDB catalog client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	language = strings.TrimSpace(language)
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type showPayload struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	EpisodeRunTime   []int  `json:"episode_run_time"`
	NumberOfSeasons  int    `json:"number_of_seasons"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
	Status           string `json:"status"`
	InProduction     bool   `json:"in_production"`
	FirstAirDate     string `json:"first_air_date"`
	LastAirDate      string `json:"last_air_date"`
	LastEpisodeToAir *struct {
		Runtime int `json:"runtime"`
	} `json:"last_episode_to_air"`
}

type seasonPayload struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
	Episodes     []struct {
		Name          string `json:"name"`
		SeasonNumber  int    `json:"season_number"`
		EpisodeNumber int    `json:"episode_number"`
		Runtime       int    `json:"runtime"`
		AirDate       string `json:"air_date"`
	} `json:"episodes"`
}

// GetShow fetches TV show metadata by TMDB ID.
func (c *Client) GetShow(ctx context.Context, showID int64) (*Show, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	var payload showPayload
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", showID), nil, &payload); err != nil {
		return nil, err
	}

	show := &Show{
		ID:            payload.ID,
		Title:         payload.Name,
		TotalSeasons:  payload.NumberOfSeasons,
		TotalEpisodes: payload.NumberOfEpisodes,
		Lifecycle:     lifecycleFromStatus(payload.Status, payload.InProduction),
		FirstAirDate:  parseAirDate(payload.FirstAirDate),
		LastAirDate:   parseAirDate(payload.LastAirDate),
	}
	for _, genre := range payload.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			show.Genres = append(show.Genres, name)
		}
	}
	show.RuntimeMinutes = runtimeFromPayload(payload)
	return show, nil
}

// GetSeason fetches the episode list for one season of a show.
func (c *Client) GetSeason(ctx context.Context, showID int64, seasonNumber int) (*Season, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	if seasonNumber <= 0 {
		return nil, errors.New("season number must be positive")
	}
	var payload seasonPayload
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", showID, seasonNumber), nil, &payload); err != nil {
		return nil, err
	}

	season := &Season{ShowID: showID, Number: seasonNumber}
	for _, ep := range payload.Episodes {
		season.Episodes = append(season.Episodes, Episode{
			Season:  ep.SeasonNumber,
			Number:  ep.EpisodeNumber,
			Title:   ep.Name,
			Runtime: ep.Runtime,
			AirDate: parseAirDate(ep.AirDate),
		})
	}
	return season, nil
}

// SearchShow performs a TMDB TV search for the supplied title.
func (c *Client) SearchShow(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload Response
	if err := c.get(ctx, "/search/tv", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("tmdb %s returned 404 (latency=%v): %w", path, latency, ErrShowNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// ErrShowNotFound reports that TMDB has no record for the requested show or season.
var ErrShowNotFound = errors.New("show not found in catalog")

func lifecycleFromStatus(status string, inProduction bool) Lifecycle {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "ended", "canceled", "cancelled":
		return LifecycleEnded
	}
	if inProduction {
		return LifecycleOngoing
	}
	// TMDB sometimes reports returning shows between seasons with
	// in_production false; trust the status string first.
	return LifecycleOngoing
}

func runtimeFromPayload(payload showPayload) int {
	if len(payload.EpisodeRunTime) > 0 && payload.EpisodeRunTime[0] > 0 {
		return payload.EpisodeRunTime[0]
	}
	if payload.LastEpisodeToAir != nil && payload.LastEpisodeToAir.Runtime > 0 {
		return payload.LastEpisodeToAir.Runtime
	}
	return 0
}

func parseAirDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
