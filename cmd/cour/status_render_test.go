package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cour/internal/notion"
	"cour/internal/transfer"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Written", statusError, "0/1 pages created", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Written:", "[ERROR] 0/1 pages created")
	assert.Equal(t, want, got)
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Written", statusOK, "1/1 pages created", true)
	assert.True(t, strings.HasPrefix(got, ansiGreen))
	assert.True(t, strings.HasSuffix(got, ansiReset))
}

func TestShouldColorizeNonFile(t *testing.T) {
	assert.False(t, shouldColorize(io.Discard))
}

func TestRenderReportListsOutcomesInOrder(t *testing.T) {
	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	report := &transfer.Report{
		RunID:          "run-1",
		Season:         "2025-spring",
		DatabaseID:     "db",
		StartedAt:      start,
		FinishedAt:     start.Add(1500 * time.Millisecond),
		TotalFetched:   2,
		TotalAttempted: 2,
		TotalSucceeded: 1,
		Outcomes: []notion.Outcome{
			{Title: "Alpha", Succeeded: true, StatusCode: 200},
			{Title: "Beta", StatusCode: 400, ResponseBody: strings.Repeat("x", 500)},
		},
	}

	var out strings.Builder
	renderReport(&out, report, false)
	text := out.String()

	assert.Contains(t, text, "1/2 pages created, 1 failed")
	assert.Contains(t, text, "1.5s")
	assert.Less(t, strings.Index(text, "Alpha"), strings.Index(text, "Beta"))
	assert.NotContains(t, text, strings.Repeat("x", responseBodyPreview+1))
}

func TestRenderReportEmptySeason(t *testing.T) {
	var out strings.Builder
	renderReport(&out, &transfer.Report{Season: "2025-spring", Outcomes: []notion.Outcome{}}, false)
	assert.Contains(t, out.String(), "nothing to write")
}
