package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

// CachedService wraps a Service with a TTL cache and a minimum spacing
// between live catalog lookups.
type CachedService struct {
	service    Service
	cache      map[string]cacheEntry
	cacheTTL   time.Duration
	rateLimit  time.Duration
	mu         sync.Mutex
	lastLookup time.Time
}

var _ Service = (*CachedService)(nil)

// NewCached wraps service with caching. A non-positive ttl disables caching
// but keeps lookup spacing in place.
func NewCached(service Service, ttl time.Duration) *CachedService {
	return &CachedService{
		service:    service,
		cache:      make(map[string]cacheEntry),
		cacheTTL:   ttl,
		rateLimit:  250 * time.Millisecond,
		lastLookup: time.Unix(0, 0),
	}
}

func (s *CachedService) GetShow(ctx context.Context, showID int64) (*Show, error) {
	key := fmt.Sprintf("show|%d", showID)
	value, err := s.lookup(ctx, key, func(ctx context.Context) (any, error) {
		return s.service.GetShow(ctx, showID)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Show), nil
}

func (s *CachedService) GetSeason(ctx context.Context, showID int64, seasonNumber int) (*Season, error) {
	key := fmt.Sprintf("season|%d|%d", showID, seasonNumber)
	value, err := s.lookup(ctx, key, func(ctx context.Context) (any, error) {
		return s.service.GetSeason(ctx, showID, seasonNumber)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Season), nil
}

func (s *CachedService) SearchShow(ctx context.Context, query string) (*Response, error) {
	key := "search|" + strings.ToLower(strings.TrimSpace(query))
	value, err := s.lookup(ctx, key, func(ctx context.Context) (any, error) {
		return s.service.SearchShow(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Response), nil
}

func (s *CachedService) lookup(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if s == nil || s.service == nil {
		return nil, errors.New("catalog service unavailable")
	}

	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		value := entry.value
		s.mu.Unlock()
		return value, nil
	}

	wait := s.rateLimit - now.Sub(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
		// Another caller may have filled the cache while we waited.
		if entry, ok := s.cache[key]; ok && time.Now().Before(entry.expires) {
			value := entry.value
			s.mu.Unlock()
			return value, nil
		}
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cacheTTL > 0 {
		s.cache[key] = cacheEntry{value: value, expires: time.Now().Add(s.cacheTTL)}
	}
	s.mu.Unlock()
	return value, nil
}
