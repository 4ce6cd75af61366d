package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfigYAML = `title: MyST fix
paths:
  setup_source: lua/myst-markdown/init.lua
  test_file: test/test_priority_highlighting.lua
  expected_files:
    - test/test_issue_44.md
setup:
  function: "function M.setup_myst_highlighting()"
  expected_calls: 2
  groups:
    - group: "@myst.directive"
      link: Special
comments:
  forbidden: ["Higher priority ensures"]
  required: ["compatibility with older Neovim versions"]
test_file:
  required: ["Issue #44"]
  required_fold: ["compatibility"]
checks:
  - name: Readme
    type: file
    params:
      must_exist: [README.md]
`

const invalidConfigYAML = `setup:
  expected_calls: two
  groups:
    - group: "@myst.directive"
checks:
  - name: Remote
    type: http
`

func TestValidateConfigBytes_Valid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(validConfigYAML))
	require.Empty(t, errs, "valid config should have no errors")
}

func TestValidateConfigBytes_Empty(t *testing.T) {
	require.Empty(t, ValidateConfigBytes(nil))
	require.Empty(t, ValidateConfigBytes([]byte("# only a comment\n")))
}

func TestValidateConfigBytes_Invalid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(invalidConfigYAML))
	require.NotEmpty(t, errs, "invalid config should have errors")

	joined := joinErrs(errs)
	require.Contains(t, joined, "/setup/expected_calls")
	require.Contains(t, joined, "/setup/groups/0")
	require.Contains(t, joined, "/checks/0/type")
}

func TestValidateConfigBytes_UnknownKey(t *testing.T) {
	errs := ValidateConfigBytes([]byte("paths:\n  setup_sauce: init.lua\n"))
	require.NotEmpty(t, errs)
	require.Contains(t, joinErrs(errs), "setup_sauce")
}

func TestValidateConfigBytes_BadYAML(t *testing.T) {
	errs := ValidateConfigBytes([]byte("setup: [unterminated"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fixcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, err = ValidateConfigFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func joinErrs(errs []string) string {
	return strings.Join(errs, "\n")
}
