package season_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cour/internal/season"
)

func TestLabelIgnoresCase(t *testing.T) {
	for _, name := range []string{"SPRING", "spring", "Spring", "sPrInG"} {
		assert.Equal(t, "2025春", season.Label(name, 2025), name)
	}
}

func TestLabelAllSeasons(t *testing.T) {
	tests := map[string]string{
		"WINTER": "2024冬",
		"SPRING": "2024春",
		"SUMMER": "2024夏",
		"AUTUMN": "2024秋",
		"FALL":   "2024秋",
	}
	for name, want := range tests {
		assert.Equal(t, want, season.Label(name, 2024), name)
	}
}

func TestLabelEmbeddedYearMatchesSeparateYear(t *testing.T) {
	embedded := season.Label("2025-fall", 0)
	separate := season.Label("fall", 2025)

	assert.Equal(t, "2025秋", embedded)
	assert.Equal(t, separate, embedded)
}

func TestLabelPrefersExplicitYear(t *testing.T) {
	assert.Equal(t, "2026冬", season.Label("2025-winter", 2026))
}

func TestLabelUnknownNameFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "2025monsoon", season.Label("monsoon", 2025))
	assert.Equal(t, "2025monsoon", season.Label("2025-monsoon", 0))
	assert.Equal(t, "monsoon", season.Label("monsoon", 0))
	assert.Equal(t, "", season.Label("", 0))
}

func TestSplit(t *testing.T) {
	year, name, ok := season.Split("2025-spring")
	require.True(t, ok)
	assert.Equal(t, 2025, year)
	assert.Equal(t, "spring", name)

	for _, token := range []string{"spring", "-spring", "abc-spring", "2025-", "0-spring"} {
		_, _, ok := season.Split(token)
		assert.False(t, ok, token)
	}
}

func TestTokensMostRecentFirst(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	tokens := season.Tokens(2024, now)

	assert.Equal(t, []string{
		"2025-autumn", "2025-summer", "2025-spring", "2025-winter",
		"2024-autumn", "2024-summer", "2024-spring", "2024-winter",
	}, tokens)
}

func TestTokensStartAfterNow(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, season.Tokens(2030, now))
}

func TestKnown(t *testing.T) {
	assert.True(t, season.Known("Fall"))
	assert.True(t, season.Known(" winter "))
	assert.False(t, season.Known("monsoon"))
}
