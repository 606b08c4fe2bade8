// Package transfer runs the season transfer pipeline: one catalog fetch, then
// a strictly sequential map-and-write pass over the fetched works in source
// order.
//
// Credentials arrive with each Request and are handed to the fetcher and
// writer factories; nothing is read from process-wide state. A failed fetch
// ends the run early with zero attempted writes. A failed write is recorded in
// the report and the run moves on to the next work. Every processed work
// leaves exactly one outcome in the report.
package transfer
