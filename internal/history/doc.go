// Package history keeps an optional SQLite record of finished transfer runs.
//
// The store is written once per run, after the last write attempt, and is
// never consulted while transferring. A lock file next to the database
// serializes concurrent cour processes recording at the same time.
package history
