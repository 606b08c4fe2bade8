package textutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts value to at most limit characters (runes). The cut is a hard
// slice with no word awareness and no ellipsis. A non-positive limit returns
// value unchanged.
func Truncate(value string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	count := 0
	for idx := range value {
		if count == limit {
			return value[:idx]
		}
		count++
	}
	return value
}

// Coalesce returns fallback when value is empty or whitespace, value otherwise.
func Coalesce(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
