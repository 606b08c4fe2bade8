// Package mapper converts a catalog work into the flat record written to the
// destination database.
//
// Mapping is pure and never fails. Director and studio extraction go through
// named RoleMatcher rules so the matching policy can be swapped and tested on
// its own; staff and cast summaries are joined first and then hard-truncated
// to the destination's rich-text limit. Placeholders for blank values are not
// applied here: the destination payload builder owns that step.
package mapper
