package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"cour/internal/textutil"
)

// consoleValueLimit caps one attribute value on the console. Destination
// response bodies can run to several kilobytes; the JSON handler keeps them
// whole.
const consoleValueLimit = 240

const elision = "…"

// attrString renders a value without quoting, for use in line prefixes.
func attrString(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		return anyString(v.Any())
	default:
		return formatValue(v)
	}
}

// formatValue renders a value for the key=value tail of a console line.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		return quoteIfNeeded(clip(anyString(v.Any())))
	default:
		return quoteIfNeeded(clip(v.String()))
	}
}

func anyString(value any) string {
	if err, ok := value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(value)
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= consoleValueLimit {
		return s
	}
	return textutil.Truncate(s, consoleValueLimit) + elision
}

func quoteIfNeeded(s string) string {
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
