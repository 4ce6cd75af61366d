package checks

import (
	"fmt"
	"strings"
)

// TestFileUpdatesChecker verifies the highlight test file documents the fix.
// Required phrases match literally, RequiredFold phrases case-insensitively.
type TestFileUpdatesChecker struct {
	Path         string
	Required     []string
	RequiredFold []string
}

var _ Checker = (*TestFileUpdatesChecker)(nil)

func (*TestFileUpdatesChecker) Name() string { return "Test File Updates" }

func (c *TestFileUpdatesChecker) Files() []string { return []string{c.Path} }

func (c *TestFileUpdatesChecker) Check(src *Source) (*CheckResult, error) {
	content, err := src.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	for _, phrase := range c.Required {
		if !strings.Contains(content, phrase) {
			return fail(c.Name(), fmt.Sprintf("Test file should reference %s", phrase)), nil
		}
	}

	lower := strings.ToLower(content)
	for _, phrase := range c.RequiredFold {
		if !strings.Contains(lower, strings.ToLower(phrase)) {
			return fail(c.Name(), fmt.Sprintf("Test file should mention %s", phrase)), nil
		}
	}
	return pass(c.Name(), "Test files updated appropriately"), nil
}

// NewFilesChecker verifies that auxiliary test artifacts exist. Absence is
// an assertion failure, never an error.
type NewFilesChecker struct {
	Paths []string
}

var _ Checker = (*NewFilesChecker)(nil)

func (*NewFilesChecker) Name() string { return "New Files Created" }

func (c *NewFilesChecker) Files() []string { return c.Paths }

func (c *NewFilesChecker) Check(src *Source) (*CheckResult, error) {
	for _, p := range c.Paths {
		if !src.Exists(p) {
			return fail(c.Name(), fmt.Sprintf("Expected test file not created: %s", src.Path(p))), nil
		}
	}
	return pass(c.Name(), "New test files created"), nil
}
