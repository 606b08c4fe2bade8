package season

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Season names as the catalog spells them in season tokens.
const (
	Winter = "winter"
	Spring = "spring"
	Summer = "summer"
	Autumn = "autumn"
)

// tokenSeparator joins the year and season name in a season token.
const tokenSeparator = "-"

// labels keys are case-folded season names. "fall" is accepted alongside
// "autumn" because older catalog versions spell it that way.
var labels = map[string]string{
	Winter: "冬",
	Spring: "春",
	Summer: "夏",
	Autumn: "秋",
	"fall": "秋",
}

// newestFirst orders the seasons within one year from latest to earliest.
var newestFirst = []string{Autumn, Summer, Spring, Winter}

// Label returns the localized label for a season name and year, such as
// "2025春". The name may carry the year itself ("2025-fall") when year is
// zero. Matching is case-insensitive. Unrecognized names are returned as-is
// after the year.
func Label(name string, year int) string {
	name = strings.TrimSpace(name)
	if splitYear, splitName, ok := Split(name); ok {
		name = splitName
		if year <= 0 {
			year = splitYear
		}
	}

	label, ok := labels[fold(name)]
	if !ok {
		label = name
	}
	if year <= 0 {
		return label
	}
	return strconv.Itoa(year) + label
}

// Split parses a `<year>-<season>` token. ok is false when the token has no
// separator, the year is not a positive integer, or the season part is empty.
func Split(token string) (year int, name string, ok bool) {
	yearPart, namePart, found := strings.Cut(strings.TrimSpace(token), tokenSeparator)
	if !found {
		return 0, "", false
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearPart))
	if err != nil || year <= 0 {
		return 0, "", false
	}
	name = strings.TrimSpace(namePart)
	if name == "" {
		return 0, "", false
	}
	return year, name, true
}

// Token formats a season token for the catalog query.
func Token(year int, name string) string {
	return fmt.Sprintf("%d%s%s", year, tokenSeparator, strings.ToLower(strings.TrimSpace(name)))
}

// Tokens lists every season token from the year of now back to startYear,
// most recent first. Seasons of the current year are all included because
// catalogs announce upcoming works ahead of broadcast.
func Tokens(startYear int, now time.Time) []string {
	current := now.Year()
	if startYear > current {
		return nil
	}
	tokens := make([]string, 0, (current-startYear+1)*len(newestFirst))
	for year := current; year >= startYear; year-- {
		for _, name := range newestFirst {
			tokens = append(tokens, Token(year, name))
		}
	}
	return tokens
}

// Known reports whether name is a recognized season name in any case.
func Known(name string) bool {
	_, ok := labels[fold(strings.TrimSpace(name))]
	return ok
}

// fold lowercases a season name for table lookup. Casers keep internal state,
// so a fresh one is built per call.
func fold(name string) string {
	return cases.Fold().String(name)
}
