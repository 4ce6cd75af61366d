// Package checks provides the Checker interface and the regression checks
// run against a plugin tree.
package checks

// CheckResult holds the outcome of a single check.
type CheckResult struct {
	// Name is the display name shown in progress and summary output.
	Name string
	// Passed indicates whether the check met its acceptance criteria.
	Passed bool
	// Summary is a human-readable one-line result intended for concise display.
	Summary string
	// Details provides optional supporting lines for diagnostics.
	Details []string
}

// Checker runs a single check against a plugin tree.
//
// A returned error means the check could not inspect its input (for example
// a missing source file) and aborts the run. An assertion failure is reported
// through a CheckResult with Passed set to false.
type Checker interface {
	Name() string
	Check(*Source) (*CheckResult, error)
}

// Inspector is implemented by checkers that can list the files they read.
type Inspector interface {
	Files() []string
}

func pass(name, summary string) *CheckResult {
	return &CheckResult{Name: name, Passed: true, Summary: summary}
}

func fail(name, summary string, details ...string) *CheckResult {
	return &CheckResult{Name: name, Passed: false, Summary: summary, Details: details}
}
