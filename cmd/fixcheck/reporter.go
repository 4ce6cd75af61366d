package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/myst-nvim/fixcheck/internal/checks"
	"github.com/myst-nvim/fixcheck/internal/models"
	"github.com/myst-nvim/fixcheck/internal/orchestration"
)

const (
	ruleWidth    = 60
	iconPassed   = "✅"
	iconFailed   = "❌"
	detailIndent = "   "
)

// successNotes are printed after a fully passing run.
var successNotes = []string{
	"The MyST plugin should now work without priority parameter errors",
	"Compatible with Neovim 0.11.3 and other versions",
	"No functionality lost, only compatibility improved",
}

// textReporter prints runner progress in the classic script format:
//
//	Testing Priority Parameter Removal...
//	✅ No priority parameters found in code
//
// and closes with a results block.
type textReporter struct {
	w     io.Writer
	title string
	width int
}

func newTextReporter(w io.Writer, title string) *textReporter {
	return &textReporter{w: w, title: title, width: ruleWidthFor(w)}
}

// ruleWidthFor narrows the closing rule when w is a terminal smaller than ruleWidth.
func ruleWidthFor(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ruleWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || cols >= ruleWidth {
		return ruleWidth
	}
	return cols
}

func (r *textReporter) listen(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventRunStart:
		fmt.Fprintf(r.w, "=== %s ===\n\n", r.title) //nolint:errcheck
	case orchestration.EventCheckStart:
		fmt.Fprintf(r.w, "Testing %s...\n", event.CheckName) //nolint:errcheck
	case orchestration.EventCheckComplete:
		r.printResult(event.CheckName, event.Result)
	case orchestration.EventRunComplete:
		r.printSummary(event.Report)
	}
}

func (r *textReporter) printResult(name string, res *checks.CheckResult) {
	if res.Passed {
		fmt.Fprintf(r.w, "%s %s\n", iconPassed, res.Summary) //nolint:errcheck
	} else {
		fmt.Fprintf(r.w, "%s ERROR: %s\n", iconFailed, res.Summary) //nolint:errcheck
		for _, d := range res.Details {
			fmt.Fprintf(r.w, "%s%s\n", detailIndent, d) //nolint:errcheck
		}
		fmt.Fprintf(r.w, "%s %s FAILED\n", iconFailed, name) //nolint:errcheck
	}
	fmt.Fprintln(r.w) //nolint:errcheck
}

func (r *textReporter) printSummary(report *models.Report) {
	fmt.Fprintln(r.w, strings.Repeat("=", r.width))                                                //nolint:errcheck
	fmt.Fprintf(r.w, "Results: %d/%d tests passed\n", report.Digest.Passed, report.Digest.Total) //nolint:errcheck

	if report.AllPassed() {
		fmt.Fprintf(r.w, "%s ALL TESTS PASSED!\n", iconPassed) //nolint:errcheck
		for _, note := range successNotes {
			fmt.Fprintf(r.w, "%s %s\n", iconPassed, note) //nolint:errcheck
		}
		return
	}
	fmt.Fprintf(r.w, "%s SOME TESTS FAILED!\n", iconFailed)         //nolint:errcheck
	fmt.Fprintf(r.w, "%s The fix may not be complete\n", iconFailed) //nolint:errcheck
}
