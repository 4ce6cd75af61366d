// Package testhelpers builds plugin trees on disk for tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// FixedSetupSource is a setup source with the priority parameter removed.
const FixedSetupSource = `local M = {}

-- Register MyST highlight groups.
-- Plain links are used for compatibility with older Neovim versions.
function M.setup_myst_highlighting()
  vim.api.nvim_set_hl(0, "@myst.code_cell.directive", { link = "Special" })
  vim.api.nvim_set_hl(0, "@myst.directive", { link = "Special" })
end

function M.setup()
  M.setup_myst_highlighting()
end

return M
`

// BrokenSetupSource is the setup source before the fix.
const BrokenSetupSource = `local M = {}

-- Higher priority ensures MyST groups win over markdown groups.
function M.setup_myst_highlighting()
  vim.api.nvim_set_hl(0, "@myst.code_cell.directive", { link = "Special", priority = 110 })
  vim.api.nvim_set_hl(0, "@myst.directive", { link = "Special", priority = 110 })
end

return M
`

// DuplicatedSetupSource registers one highlight twice inside the setup function.
const DuplicatedSetupSource = `local M = {}

-- Plain links are used for compatibility with older Neovim versions.
function M.setup_myst_highlighting()
  vim.api.nvim_set_hl(0, "@myst.code_cell.directive", { link = "Special" })
  vim.api.nvim_set_hl(0, "@myst.directive", { link = "Special" })
  vim.api.nvim_set_hl(0, "@myst.directive", { link = "Special" })
end

return M
`

// UpdatedTestFile is the highlight test file after the fix.
const UpdatedTestFile = `-- Test highlight setup without the priority parameter (Issue #44).
-- Verifies Compatibility with Neovim 0.11.3 and later.
local myst = require("myst-markdown")
myst.setup_myst_highlighting()
`

// Default relative paths in a plugin tree.
const (
	SetupSourcePath = "lua/myst-markdown/init.lua"
	TestFilePath    = "test/test_priority_highlighting.lua"
	IssueDocPath    = "test/test_issue_44.md"
	ValidateScript  = "test/validate_issue_44_fix.sh"
)

// FixedTree returns the file set of a plugin tree where the fix is complete.
func FixedTree() map[string]string {
	return map[string]string{
		SetupSourcePath: FixedSetupSource,
		TestFilePath:    UpdatedTestFile,
		IssueDocPath:    "# Issue 44\n\n```{code-cell} python\nprint(1)\n```\n",
		ValidateScript:  "#!/bin/sh\nnvim --headless -c 'lua require(\"myst-markdown\").setup()' -c q\n",
	}
}

// WriteTree writes files (relative path → content) under a fresh temp dir
// and returns the dir.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// WriteFixedTree writes FixedTree with overrides applied. An empty-string
// override value deletes the file from the tree.
func WriteFixedTree(t *testing.T, overrides map[string]string) string {
	t.Helper()
	files := FixedTree()
	for rel, content := range overrides {
		if content == "" {
			delete(files, rel)
			continue
		}
		files[rel] = content
	}
	return WriteTree(t, files)
}
