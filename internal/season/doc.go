// Package season converts broadcast season identifiers between the catalog's
// `<year>-<season>` tokens and the localized labels written to the
// destination database (for example "2025春").
//
// Conversion never fails: unknown season names fall back to the raw value so a
// malformed token still produces a usable label.
package season
