// Package orchestration runs an ordered list of checks and tallies the outcome.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myst-nvim/fixcheck/internal/checks"
	"github.com/myst-nvim/fixcheck/internal/models"
)

//go:generate go tool mockgen -destination=checker_mock_test.go -package=orchestration github.com/myst-nvim/fixcheck/internal/checks Checker

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart      EventType = "run_start"
	EventCheckStart    EventType = "check_start"
	EventCheckComplete EventType = "check_complete"
	EventRunComplete   EventType = "run_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType   EventType
	CheckName   string
	CheckNum    int
	TotalChecks int
	// Result is set on EventCheckComplete.
	Result *checks.CheckResult
	// Report is set on EventRunComplete.
	Report     *models.Report
	DurationMs int64
}

// RunnerOption configures a CheckRunner.
type RunnerOption func(*CheckRunner)

// WithTitle sets the title recorded in the report.
func WithTitle(title string) RunnerOption {
	return func(r *CheckRunner) {
		r.title = title
	}
}

// WithClock overrides time.Now, for deterministic reports in tests.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *CheckRunner) {
		r.now = now
	}
}

// CheckRunner executes checks strictly in order against one Source.
type CheckRunner struct {
	source    *checks.Source
	checkers  []checks.Checker
	title     string
	now       func() time.Time
	listeners []ProgressListener
}

// NewCheckRunner creates a new check runner
func NewCheckRunner(source *checks.Source, checkers []checks.Checker, opts ...RunnerOption) *CheckRunner {
	r := &CheckRunner{
		source:   source,
		checkers: checkers,
		now:      time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *CheckRunner) OnProgress(listener ProgressListener) {
	r.listeners = append(r.listeners, listener)
}

func (r *CheckRunner) notifyProgress(event ProgressEvent) {
	for _, listener := range r.listeners {
		listener(event)
	}
}

// Run executes every check and returns the report. A failed assertion is
// recorded and the run continues; a check error (such as a missing file)
// aborts the run and is returned wrapped with the check name.
func (r *CheckRunner) Run(ctx context.Context) (*models.Report, error) {
	start := r.now()
	report := &models.Report{
		Title:     r.title,
		Root:      r.source.Root(),
		Timestamp: start,
		Checks:    make([]models.CheckOutcome, 0, len(r.checkers)),
	}
	total := len(r.checkers)

	r.notifyProgress(ProgressEvent{EventType: EventRunStart, TotalChecks: total})

	for i, c := range r.checkers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.notifyProgress(ProgressEvent{
			EventType:   EventCheckStart,
			CheckName:   c.Name(),
			CheckNum:    i + 1,
			TotalChecks: total,
		})

		checkStart := r.now()
		result, err := c.Check(r.source)
		if err != nil {
			slog.Debug("Check aborted", "check", c.Name(), "error", err)
			return nil, fmt.Errorf("check %q: %w", c.Name(), err)
		}
		if result == nil {
			return nil, fmt.Errorf("check %q returned no result", c.Name())
		}
		durationMs := r.now().Sub(checkStart).Milliseconds()

		slog.Debug("Check finished", "check", c.Name(), "passed", result.Passed, "durationMs", durationMs)

		outcome := models.CheckOutcome{
			Name:       c.Name(),
			Status:     models.StatusFailed,
			Summary:    result.Summary,
			Details:    result.Details,
			DurationMs: durationMs,
		}
		if result.Passed {
			outcome.Status = models.StatusPassed
			report.Digest.Passed++
		} else {
			report.Digest.Failed++
		}
		report.Checks = append(report.Checks, outcome)

		r.notifyProgress(ProgressEvent{
			EventType:   EventCheckComplete,
			CheckName:   c.Name(),
			CheckNum:    i + 1,
			TotalChecks: total,
			Result:      result,
			DurationMs:  durationMs,
		})
	}

	report.Digest.Total = total
	report.Digest.DurationMs = r.now().Sub(start).Milliseconds()

	r.notifyProgress(ProgressEvent{
		EventType:   EventRunComplete,
		TotalChecks: total,
		Report:      report,
		DurationMs:  report.Digest.DurationMs,
	})

	return report, nil
}
