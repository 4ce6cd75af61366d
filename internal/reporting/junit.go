package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/myst-nvim/fixcheck/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure represents a check assertion failure.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// classname groups every check of a run under one JUnit class.
const classname = "fixcheck"

// ConvertToJUnit converts a Report to JUnit XML format.
func ConvertToJUnit(report *models.Report) *JUnitTestSuites {
	durationSec := float64(report.Digest.DurationMs) / 1000.0

	suite := JUnitTestSuite{
		Name:      report.Title,
		Tests:     report.Digest.Total,
		Failures:  report.Digest.Failed,
		Time:      durationSec,
		Timestamp: report.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "root", Value: report.Root},
			{Name: "passed", Value: fmt.Sprintf("%d/%d", report.Digest.Passed, report.Digest.Total)},
		},
	}

	for _, co := range report.Checks {
		suite.TestCases = append(suite.TestCases, convertCheckOutcome(&co))
	}

	return &JUnitTestSuites{
		Tests:      report.Digest.Total,
		Failures:   report.Digest.Failed,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertCheckOutcome(co *models.CheckOutcome) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      co.Name,
		Classname: classname,
		Time:      float64(co.DurationMs) / 1000.0,
	}

	if co.Status == models.StatusFailed {
		tc.Failure = &JUnitFailure{
			Message: co.Summary,
			Type:    "CheckFailure",
			Body:    formatDetails(co.Details),
		}
	}

	return tc
}

func formatDetails(details []string) string {
	if len(details) == 0 {
		return ""
	}
	return "[FAIL] " + strings.Join(details, "\n[FAIL] ") + "\n"
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(report *models.Report, path string) error {
	suites := ConvertToJUnit(report)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
