// Package projectconfig provides the ProjectConfig struct and loader for
// .fixcheck.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/myst-nvim/fixcheck/internal/validation"
)

// FileName is the name of the configuration file searched for by Load.
const FileName = ".fixcheck.yaml"

// Default values for project configuration. These are the single source of
// truth: New() references them and no other code should duplicate them.
const (
	DefaultTitle = "Comprehensive Test for MyST Priority Parameter Fix"

	DefaultSetupSource = "lua/myst-markdown/init.lua"
	DefaultTestFile    = "test/test_priority_highlighting.lua"

	DefaultSetupFunction = "function M.setup_myst_highlighting()"
	DefaultHighlightCall = "vim.api.nvim_set_hl"
	DefaultExpectedCalls = 2

	DefaultForbiddenComment = "Higher priority ensures"
	DefaultRequiredComment  = "compatibility with older Neovim versions"

	DefaultTestFileRequired     = "Issue #44"
	DefaultTestFileRequiredFold = "compatibility"
)

// maxSearchDepth bounds how many parent directories Load walks.
const maxSearchDepth = 10

// DefaultExpectedFiles returns the auxiliary artifacts that must exist after the fix.
func DefaultExpectedFiles() []string {
	return []string{
		"test/test_issue_44.md",
		"test/validate_issue_44_fix.sh",
	}
}

// DefaultHighlightGroups returns the highlight links the setup source must register.
func DefaultHighlightGroups() []HighlightGroup {
	return []HighlightGroup{
		{Group: "@myst.code_cell.directive", Link: "Special"},
		{Group: "@myst.directive", Link: "Special"},
	}
}

// PathsConfig holds the files inspected by the built-in checks, relative to the plugin root.
type PathsConfig struct {
	SetupSource   string   `yaml:"setup_source,omitempty"`
	TestFile      string   `yaml:"test_file,omitempty"`
	ExpectedFiles []string `yaml:"expected_files,omitempty"`
}

// HighlightGroup is one nvim_set_hl(0, Group, { link = Link }) registration.
type HighlightGroup struct {
	Group string `yaml:"group"`
	Link  string `yaml:"link"`
}

// SetupConfig describes the highlight setup function.
type SetupConfig struct {
	Function      string           `yaml:"function,omitempty"`
	HighlightCall string           `yaml:"highlight_call,omitempty"`
	ExpectedCalls int              `yaml:"expected_calls,omitempty"`
	Groups        []HighlightGroup `yaml:"groups,omitempty"`
}

// CommentsConfig lists phrases that must be gone from, or present in, the setup source.
type CommentsConfig struct {
	Forbidden []string `yaml:"forbidden,omitempty"`
	Required  []string `yaml:"required,omitempty"`
}

// TestFileConfig lists substrings the updated test file must carry.
// Required is matched literally, RequiredFold case-insensitively.
type TestFileConfig struct {
	Required     []string `yaml:"required,omitempty"`
	RequiredFold []string `yaml:"required_fold,omitempty"`
}

// CheckConfig declares an extra check. Params are decoded by the check type.
type CheckConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .fixcheck.yaml.
type ProjectConfig struct {
	Title    string         `yaml:"title,omitempty"`
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Setup    SetupConfig    `yaml:"setup,omitempty"`
	Comments CommentsConfig `yaml:"comments,omitempty"`
	TestFile TestFileConfig `yaml:"test_file,omitempty"`
	Checks   []CheckConfig  `yaml:"checks,omitempty"`

	// Root is the plugin directory every path is resolved against. It is not
	// read from the file: Load sets it to the directory holding the config,
	// or to startDir when no config exists.
	Root string `yaml:"-"`
	// Source is the config file that was merged, empty when defaults were used.
	Source string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Title: DefaultTitle,
		Paths: PathsConfig{
			SetupSource:   DefaultSetupSource,
			TestFile:      DefaultTestFile,
			ExpectedFiles: DefaultExpectedFiles(),
		},
		Setup: SetupConfig{
			Function:      DefaultSetupFunction,
			HighlightCall: DefaultHighlightCall,
			ExpectedCalls: DefaultExpectedCalls,
			Groups:        DefaultHighlightGroups(),
		},
		Comments: CommentsConfig{
			Forbidden: []string{DefaultForbiddenComment},
			Required:  []string{DefaultRequiredComment},
		},
		TestFile: TestFileConfig{
			Required:     []string{DefaultTestFileRequired},
			RequiredFold: []string{DefaultTestFileRequiredFold},
		},
	}
}

// Load finds .fixcheck.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults rooted at startDir with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}
	cfg.Root = absStart

	path, data, err := findConfigFile(absStart)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if err := apply(cfg, path, data); err != nil {
		return nil, err
	}
	cfg.Root = filepath.Dir(path)
	cfg.Source = path
	return cfg, nil
}

// LoadFile reads an explicit config file. Relative paths in it resolve
// against root, or against the file's directory when root is empty.
func LoadFile(path, root string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	cfg := New()
	if err := apply(cfg, path, data); err != nil {
		return nil, err
	}
	cfg.Source = path

	if root == "" {
		root = filepath.Dir(path)
	}
	if cfg.Root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", root, err)
	}
	return cfg, nil
}

// apply validates data against the config schema, then merges it onto cfg.
// Schema violations, type errors included, are reported per location.
func apply(cfg *ProjectConfig, path string, data []byte) error {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return fmt.Errorf("invalid config %s:\n  %s", path, strings.Join(errs, "\n  "))
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	// Zero is a valid count, so presence is decoded separately.
	var explicit struct {
		Setup struct {
			ExpectedCalls *int `yaml:"expected_calls"`
		} `yaml:"setup"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	if explicit.Setup.ExpectedCalls != nil {
		cfg.Setup.ExpectedCalls = *explicit.Setup.ExpectedCalls
	}
	return nil
}

// findConfigFile walks up from dir looking for .fixcheck.yaml.
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) (string, []byte, error) {
	for i := 0; i < maxSearchDepth; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Title != "" {
		dst.Title = src.Title
	}

	// Paths
	if src.Paths.SetupSource != "" {
		dst.Paths.SetupSource = src.Paths.SetupSource
	}
	if src.Paths.TestFile != "" {
		dst.Paths.TestFile = src.Paths.TestFile
	}
	if src.Paths.ExpectedFiles != nil {
		dst.Paths.ExpectedFiles = src.Paths.ExpectedFiles
	}

	// Setup
	if src.Setup.Function != "" {
		dst.Setup.Function = src.Setup.Function
	}
	if src.Setup.HighlightCall != "" {
		dst.Setup.HighlightCall = src.Setup.HighlightCall
	}
	if src.Setup.Groups != nil {
		dst.Setup.Groups = src.Setup.Groups
	}

	// Comments
	if src.Comments.Forbidden != nil {
		dst.Comments.Forbidden = src.Comments.Forbidden
	}
	if src.Comments.Required != nil {
		dst.Comments.Required = src.Comments.Required
	}

	// TestFile
	if src.TestFile.Required != nil {
		dst.TestFile.Required = src.TestFile.Required
	}
	if src.TestFile.RequiredFold != nil {
		dst.TestFile.RequiredFold = src.TestFile.RequiredFold
	}

	dst.Checks = append(dst.Checks, src.Checks...)
}
