package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonsListsNewestFirst(t *testing.T) {
	env := setupCLITestEnv(t, http.StatusOK, seasonFixture)
	year := time.Now().Year()

	out, _, err := runCLI(t, env.configPath, "seasons", "--since", strconv.Itoa(year-1), "--json")
	require.NoError(t, err)

	var entries []seasonEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 8)
	assert.Equal(t, seasonEntry{Token: strconv.Itoa(year) + "-autumn", Label: strconv.Itoa(year) + "秋"}, entries[0])
	assert.Equal(t, seasonEntry{Token: strconv.Itoa(year-1) + "-winter", Label: strconv.Itoa(year-1) + "冬"}, entries[7])
}

func TestSeasonsTable(t *testing.T) {
	env := setupCLITestEnv(t, http.StatusOK, seasonFixture)

	out, _, err := runCLI(t, env.configPath, "seasons", "--since", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-spring")
	assert.Contains(t, out, "2025春")
}

func TestSeasonsFutureStartYear(t *testing.T) {
	env := setupCLITestEnv(t, http.StatusOK, seasonFixture)

	out, _, err := runCLI(t, env.configPath, "seasons", "--since", strconv.Itoa(time.Now().Year()+1))
	require.NoError(t, err)
	assert.Contains(t, out, "No seasons")
}
