// Package catalog provides access to the TMDB television API.
//
// It exposes show metadata (genres, runtime, episode counts, production
// status) and per-season episode air dates, which the scheduler uses to
// decide whether an episode of an ongoing show can be planned yet. A caching
// wrapper bounds request volume with a TTL cache and a minimum spacing
// between live lookups.
package catalog
