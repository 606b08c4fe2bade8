// Package services defines shared utilities consumed by the transfer pipeline
// and its external API clients.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, season tokens, and pipeline stages
//     for logging.
//   - Structured error markers plus the Wrap helper so failures can be
//     classified into run statuses (completed, partial, fetch_failed, ...).
//
// Use these helpers when wiring new client code so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
