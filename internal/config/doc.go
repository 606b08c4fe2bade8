// Package config loads, normalizes, and validates cour configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ANNICT_TOKEN and NOTION_TOKEN. Tokens live here only long enough for the
// CLI to pass them explicitly into the transfer pipeline.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
