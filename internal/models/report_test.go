package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_AllPassed(t *testing.T) {
	assert.True(t, (&Report{Digest: ReportDigest{Total: 6, Passed: 6}}).AllPassed())
	assert.False(t, (&Report{Digest: ReportDigest{Total: 6, Passed: 5, Failed: 1}}).AllPassed())
	// A run with no checks is vacuously passing.
	assert.True(t, (&Report{}).AllPassed())
}

func TestReport_JSONShape(t *testing.T) {
	r := &Report{
		Title:  "t",
		Digest: ReportDigest{Total: 1, Passed: 1},
		Checks: []CheckOutcome{{Name: "Comment Updates", Status: StatusPassed, Summary: "ok"}},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "summary")
	assert.NotContains(t, raw, "Digest")

	check := raw["checks"].([]any)[0].(map[string]any)
	assert.Equal(t, "passed", check["status"])
	assert.NotContains(t, check, "details")
}
