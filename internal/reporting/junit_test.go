package reporting

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/myst-nvim/fixcheck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReport() *models.Report {
	return &models.Report{
		Title:     "Comprehensive Test for MyST Priority Parameter Fix",
		Root:      "/work/myst-markdown-tree-sitter.nvim",
		Timestamp: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Digest: models.ReportDigest{
			Total:      3,
			Passed:     2,
			Failed:     1,
			DurationMs: 1500,
		},
		Checks: []models.CheckOutcome{
			{Name: "Priority Parameter Removal", Status: models.StatusPassed, Summary: "No priority parameters found in code", DurationMs: 500},
			{Name: "Function Integrity", Status: models.StatusFailed, Summary: "Expected 2 nvim_set_hl calls in function, found 3", DurationMs: 250},
			{
				Name:       "Readme",
				Status:     models.StatusFailed,
				Summary:    "1 of 2 file checks failed",
				Details:    []string{"File must exist but not found: README.md"},
				DurationMs: 750,
			},
		},
	}
}

func TestConvertToJUnit_Structure(t *testing.T) {
	suites := ConvertToJUnit(newTestReport())

	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 0, suites.Errors)
	assert.InDelta(t, 1.5, suites.Time, 0.001)

	require.Len(t, suites.TestSuites, 1)
	suite := suites.TestSuites[0]
	assert.Equal(t, "Comprehensive Test for MyST Priority Parameter Fix", suite.Name)
	assert.Equal(t, "2025-06-15T12:00:00Z", suite.Timestamp)
	require.Len(t, suite.TestCases, 3)
}

func TestConvertToJUnit_PassedTestCase(t *testing.T) {
	tc := ConvertToJUnit(newTestReport()).TestSuites[0].TestCases[0]

	assert.Equal(t, "Priority Parameter Removal", tc.Name)
	assert.Equal(t, "fixcheck", tc.Classname)
	assert.InDelta(t, 0.5, tc.Time, 0.001)
	assert.Nil(t, tc.Failure)
}

func TestConvertToJUnit_FailedTestCase(t *testing.T) {
	cases := ConvertToJUnit(newTestReport()).TestSuites[0].TestCases

	require.NotNil(t, cases[1].Failure)
	assert.Equal(t, "Expected 2 nvim_set_hl calls in function, found 3", cases[1].Failure.Message)
	assert.Equal(t, "CheckFailure", cases[1].Failure.Type)
	assert.Empty(t, cases[1].Failure.Body)

	require.NotNil(t, cases[2].Failure)
	assert.Equal(t, "[FAIL] File must exist but not found: README.md\n", cases[2].Failure.Body)
}

func TestConvertToJUnit_Properties(t *testing.T) {
	props := ConvertToJUnit(newTestReport()).TestSuites[0].Properties

	propMap := make(map[string]string)
	for _, p := range props {
		propMap[p.Name] = p.Value
	}
	assert.Equal(t, "/work/myst-markdown-tree-sitter.nvim", propMap["root"])
	assert.Equal(t, "2/3", propMap["passed"])
}

func TestConvertToJUnit_EmptyReport(t *testing.T) {
	suites := ConvertToJUnit(&models.Report{Title: "empty"})

	assert.Equal(t, 0, suites.Tests)
	require.Len(t, suites.TestSuites, 1)
	assert.Empty(t, suites.TestSuites[0].TestCases)
}

func TestWriteJUnitXML_ValidXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")
	require.NoError(t, WriteJUnitXML(newTestReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "<?xml"))
	assert.Contains(t, content, `<testsuites tests="3" failures="1"`)
	assert.Contains(t, content, `<failure message="1 of 2 file checks failed" type="CheckFailure">`)

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Len(t, parsed.TestSuites[0].TestCases, 3)
}

func TestWriteJUnitXML_BadPath(t *testing.T) {
	err := WriteJUnitXML(newTestReport(), filepath.Join(t.TempDir(), "missing", "results.xml"))
	require.Error(t, err)
}
