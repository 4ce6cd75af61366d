package models

import "time"

// Status represents the outcome status of a check.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// CheckOutcome is the recorded result of one check in a run.
type CheckOutcome struct {
	Name       string   `json:"name"`
	Status     Status   `json:"status"`
	Summary    string   `json:"summary"`
	Details    []string `json:"details,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// ReportDigest is the pass/fail tally of a run.
type ReportDigest struct {
	Total      int   `json:"total"`
	Passed     int   `json:"passed"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"duration_ms"`
}

// Report represents the complete result of a run.
type Report struct {
	Title     string         `json:"title"`
	Root      string         `json:"root"`
	Timestamp time.Time      `json:"timestamp"`
	Digest    ReportDigest   `json:"summary"`
	Checks    []CheckOutcome `json:"checks"`
}

// AllPassed reports whether every check in the run passed.
func (r *Report) AllPassed() bool {
	return r.Digest.Passed == r.Digest.Total
}
