// Package services defines shared utilities consumed by the scheduling
// operations and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp watchlist entry IDs, operation names, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (not found, invalid transition, availability blocks,
//     catalog outages) consistent across the codebase.
//
// Use these helpers when wiring new operations so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
