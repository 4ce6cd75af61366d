package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // All checks passed
	ExitTestFailed = 1 // One or more checks failed, or an inspected file was unreadable
	ExitError      = 2 // Configuration or usage error
)

// TestFailureError indicates that the suite ran to completion,
// but one or more checks failed.
type TestFailureError struct {
	Message string
}

func (e *TestFailureError) Error() string {
	return e.Message
}

// InspectionError indicates that a check could not read a file it inspects
// and the run was aborted.
type InspectionError struct {
	Err error
}

func (e *InspectionError) Error() string {
	return e.Err.Error()
}

func (e *InspectionError) Unwrap() error {
	return e.Err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by the root command to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var testFailureErr *TestFailureError
	if errors.As(err, &testFailureErr) {
		return ExitTestFailed
	}
	var inspectionErr *InspectionError
	if errors.As(err, &inspectionErr) {
		return ExitTestFailed
	}

	// All other errors are configuration/runtime errors
	return ExitError
}
