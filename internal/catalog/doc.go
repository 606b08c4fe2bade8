// Package catalog defines the canonical shape of a work fetched from the
// season catalog.
//
// Source adapters normalize whatever wire shape the upstream API returns into
// Work before any mapping logic runs, so downstream packages never deal with
// optional wrapper lists or embedded season years.
package catalog
