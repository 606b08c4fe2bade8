// Package notion provides the minimal Notion API client used to create one
// database page per mapped work.
//
// The payload builder owns the attribute-name-to-property mapping and the
// per-type envelopes (title, select, rich_text, url, number), and is where
// blank values are replaced with placeholders. CreatePage never returns an
// error: every failure, transport errors included, is reported through the
// returned Outcome with the status code and raw body preserved.
package notion
