package transfer

import (
	"time"

	"cour/internal/mapper"
	"cour/internal/notion"
)

// Preview is the payload a dry run would have sent for one work.
type Preview struct {
	Title   string         `json:"title"`
	Record  mapper.Record  `json:"record"`
	Payload notion.Payload `json:"payload"`
}

// Report summarizes one run. Outcomes keep source order.
type Report struct {
	RunID          string           `json:"run_id"`
	Season         string           `json:"season"`
	DatabaseID     string           `json:"database_id,omitempty"`
	DryRun         bool             `json:"dry_run"`
	StartedAt      time.Time        `json:"started_at"`
	FinishedAt     time.Time        `json:"finished_at"`
	TotalFetched   int              `json:"total_fetched"`
	TotalAttempted int              `json:"total_attempted"`
	TotalSucceeded int              `json:"total_succeeded"`
	Outcomes       []notion.Outcome `json:"outcomes"`
	Previews       []Preview        `json:"previews,omitempty"`
	FetchError     string           `json:"fetch_error,omitempty"`
}

// TotalFailed returns the number of attempted writes that did not succeed.
func (r *Report) TotalFailed() int {
	if r == nil {
		return 0
	}
	return r.TotalAttempted - r.TotalSucceeded
}

// Failures returns the failed outcomes in source order.
func (r *Report) Failures() []notion.Outcome {
	if r == nil {
		return nil
	}
	var failed []notion.Outcome
	for _, outcome := range r.Outcomes {
		if !outcome.Succeeded {
			failed = append(failed, outcome)
		}
	}
	return failed
}

func (r *Report) record(outcome notion.Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	r.TotalAttempted++
	if outcome.Succeeded {
		r.TotalSucceeded++
	}
}
