package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"cour/internal/textutil"
	"cour/internal/transfer"
)

const responseBodyPreview = 160

func renderReport(out io.Writer, report *transfer.Report, colorize bool) {
	if report == nil {
		return
	}
	title := "Transfer report"
	if report.DryRun {
		title = "Dry run"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderField("Season", report.Season))
	fmt.Fprintln(out, renderField("Run ID", report.RunID))
	if report.DatabaseID != "" {
		fmt.Fprintln(out, renderField("Database", report.DatabaseID))
	}
	fmt.Fprintln(out, renderField("Elapsed", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String()))

	if report.FetchError != "" {
		fmt.Fprintln(out, renderStatusLine("Fetch", statusError, report.FetchError, colorize))
		return
	}
	fmt.Fprintln(out, renderStatusLine("Fetched", statusInfo, fmt.Sprintf("%d works", report.TotalFetched), colorize))

	if report.DryRun {
		renderPreviews(out, report)
		return
	}

	switch {
	case report.TotalAttempted == 0:
		fmt.Fprintln(out, renderStatusLine("Written", statusWarn, "nothing to write", colorize))
	case report.TotalFailed() == 0:
		fmt.Fprintln(out, renderStatusLine("Written", statusOK,
			fmt.Sprintf("%d/%d pages created", report.TotalSucceeded, report.TotalAttempted), colorize))
	default:
		fmt.Fprintln(out, renderStatusLine("Written", statusWarn,
			fmt.Sprintf("%d/%d pages created, %d failed", report.TotalSucceeded, report.TotalAttempted, report.TotalFailed()), colorize))
	}
	if len(report.Outcomes) == 0 {
		return
	}

	rows := make([][]string, 0, len(report.Outcomes))
	for idx, outcome := range report.Outcomes {
		result := "created"
		detail := ""
		if !outcome.Succeeded {
			result = "failed"
			detail = textutil.Truncate(outcome.ResponseBody, responseBodyPreview)
		}
		rows = append(rows, []string{
			strconv.Itoa(idx + 1),
			outcome.Title,
			result,
			strconv.Itoa(outcome.StatusCode),
			detail,
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]column{
		{header: "#", align: alignRight},
		{header: "Title", maxWidth: 40},
		{header: "Result"},
		{header: "Status", align: alignRight},
		{header: "Response", maxWidth: 60},
	}, rows))
}

func renderPreviews(out io.Writer, report *transfer.Report) {
	if len(report.Previews) == 0 {
		return
	}
	rows := make([][]string, 0, len(report.Previews))
	for idx, preview := range report.Previews {
		record := preview.Record
		rows = append(rows, []string{
			strconv.Itoa(idx + 1),
			textutil.Coalesce(record.Title, "-"),
			textutil.Coalesce(record.SeasonLabel, "-"),
			textutil.Coalesce(record.Studio, "-"),
			textutil.Coalesce(record.Director, "-"),
			strconv.Itoa(record.EpisodeCount),
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]column{
		{header: "#", align: alignRight},
		{header: "Title", maxWidth: 40},
		{header: "Season"},
		{header: "Studio", maxWidth: 30},
		{header: "Director", maxWidth: 30},
		{header: "Episodes", align: alignRight},
	}, rows))
	fmt.Fprintln(out, "Use --json to see the full page payloads.")
}
