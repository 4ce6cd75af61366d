package checks

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/go-viper/mapstructure/v2"
	"github.com/myst-nvim/fixcheck/internal/projectconfig"
)

// Type names a kind of declared check.
type Type string

const (
	// TypeFile does existence/content checks
	TypeFile Type = "file"
)

// errFileCheckNoAssertions is the error format string returned when a file check is declared without any assertions.
const errFileCheckNoAssertions = "file check '%s' must have at least one of 'must_exist', 'must_not_exist', or 'content_patterns'"

// FileContentPattern defines regex patterns to match against a file's content
type FileContentPattern struct {
	Path         string   // Path to file (relative to the plugin root)
	MustMatch    []string // Regex patterns that must match
	MustNotMatch []string // Regex patterns that must not match
}

// FileCheckArgs holds the arguments for creating a file check.
type FileCheckArgs struct {
	// Name is the display name for this check, used in output and error messages.
	Name string
	// MustExist lists file paths that must be present.
	MustExist []string
	// MustNotExist lists file paths that must be absent.
	MustNotExist []string
	// ContentPatterns defines regex patterns to match against file contents.
	ContentPatterns []FileContentPattern
}

// fileCheck validates file existence and content patterns
type fileCheck struct {
	name            string
	mustExist       []string
	mustNotExist    []string
	contentPatterns []FileContentPattern
}

var _ Checker = (*fileCheck)(nil)

// NewFileCheck creates a [Checker] that asserts files exist (or don't) and
// that their contents match (or don't match) regex patterns. Every path must
// be local to the plugin root and every pattern must compile.
func NewFileCheck(args FileCheckArgs) (Checker, error) {
	if len(args.MustExist) == 0 && len(args.MustNotExist) == 0 && len(args.ContentPatterns) == 0 {
		return nil, fmt.Errorf(errFileCheckNoAssertions, args.Name)
	}

	fc := &fileCheck{
		name:            args.Name,
		mustExist:       args.MustExist,
		mustNotExist:    args.MustNotExist,
		contentPatterns: args.ContentPatterns,
	}
	if err := fc.validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// NewDeclared builds a check declared in the project configuration.
func NewDeclared(cc projectconfig.CheckConfig) (Checker, error) {
	switch Type(cc.Type) {
	case TypeFile:
		var v *struct {
			MustExist       []string `mapstructure:"must_exist"`
			MustNotExist    []string `mapstructure:"must_not_exist"`
			ContentPatterns []struct {
				Path         string   `mapstructure:"path"`
				MustMatch    []string `mapstructure:"must_match"`
				MustNotMatch []string `mapstructure:"must_not_match"`
			} `mapstructure:"content_patterns"`
		}

		if err := mapstructure.Decode(cc.Params, &v); err != nil {
			return nil, fmt.Errorf("decoding params for check '%s': %w", cc.Name, err)
		}
		if v == nil {
			return nil, fmt.Errorf(errFileCheckNoAssertions, cc.Name)
		}

		var contentPatterns []FileContentPattern
		for _, cp := range v.ContentPatterns {
			contentPatterns = append(contentPatterns, FileContentPattern{
				Path:         cp.Path,
				MustMatch:    cp.MustMatch,
				MustNotMatch: cp.MustNotMatch,
			})
		}

		return NewFileCheck(FileCheckArgs{
			Name:            cc.Name,
			MustExist:       v.MustExist,
			MustNotExist:    v.MustNotExist,
			ContentPatterns: contentPatterns,
		})
	default:
		return nil, fmt.Errorf("'%s' is not a valid check type", cc.Type)
	}
}

func (fc *fileCheck) Name() string { return fc.name }

func (fc *fileCheck) Files() []string {
	files := append([]string{}, fc.mustExist...)
	files = append(files, fc.mustNotExist...)
	for _, cp := range fc.contentPatterns {
		files = append(files, cp.Path)
	}
	return files
}

func (fc *fileCheck) Check(src *Source) (*CheckResult, error) {
	var failures []string

	failures = append(failures, fc.checkMustExist(src)...)
	failures = append(failures, fc.checkMustNotExist(src)...)
	failures = append(failures, fc.checkContentPatterns(src)...)

	total := fc.countTotalChecks()
	if len(failures) == 0 {
		return pass(fc.name, fmt.Sprintf("All %d file checks passed", total)), nil
	}
	return fail(fc.name, fmt.Sprintf("%d of %d file checks failed", len(failures), total), failures...), nil
}

// checkMustExist verifies that all required files are present.
func (fc *fileCheck) checkMustExist(src *Source) []string {
	var failures []string
	for _, relPath := range fc.mustExist {
		if !src.Exists(relPath) {
			failures = append(failures, fmt.Sprintf("File must exist but not found: %s", relPath))
		}
	}
	return failures
}

// checkMustNotExist verifies that forbidden files are absent.
func (fc *fileCheck) checkMustNotExist(src *Source) []string {
	var failures []string
	for _, relPath := range fc.mustNotExist {
		if src.Exists(relPath) {
			failures = append(failures, fmt.Sprintf("File must not exist but found: %s", relPath))
		}
	}
	return failures
}

// checkContentPatterns validates file contents against must_match and must_not_match regex patterns.
func (fc *fileCheck) checkContentPatterns(src *Source) []string {
	var failures []string
	for _, cp := range fc.contentPatterns {
		content, err := src.ReadFile(cp.Path)
		if err != nil {
			failures = append(failures, fileReadFailures(cp, err)...)
			continue
		}

		failures = append(failures, matchRegexPatterns(content, cp.Path, cp.MustMatch, true)...)
		failures = append(failures, matchRegexPatterns(content, cp.Path, cp.MustNotMatch, false)...)
	}
	return failures
}

// fileReadFailures returns failure messages when a file required for content checking cannot be read.
func fileReadFailures(cp FileContentPattern, err error) []string {
	var failures []string

	if errors.Is(err, fs.ErrNotExist) {
		failures = append(failures, fmt.Sprintf("File not found for content check: %s", cp.Path))
	} else {
		failures = append(failures, fmt.Sprintf("Failed to read file %s: %v", cp.Path, err))
	}

	// An unreadable file fails every pattern declared for it, which keeps
	// the failure count stable between runs.
	for _, pattern := range cp.MustMatch {
		failures = append(failures, fmt.Sprintf("File %s missing expected pattern (file not found): %s", cp.Path, pattern))
	}
	for _, pattern := range cp.MustNotMatch {
		failures = append(failures, fmt.Sprintf("File %s could not verify absence of pattern (file not found): %s", cp.Path, pattern))
	}

	return failures
}

// matchRegexPatterns checks content against a list of regex patterns. When mustMatch is true,
// the content is expected to match each pattern; when false, it must not match.
func matchRegexPatterns(content, filePath string, patterns []string, mustMatch bool) []string {
	var failures []string
	for _, pattern := range patterns {
		// Patterns were compiled once in validate, so this cannot fail.
		re := regexp.MustCompile(pattern)

		matched := re.MatchString(content)
		if mustMatch && !matched {
			failures = append(failures, fmt.Sprintf("File %s missing expected pattern: %s", filePath, pattern))
		} else if !mustMatch && matched {
			failures = append(failures, fmt.Sprintf("File %s contains forbidden pattern: %s", filePath, pattern))
		}
	}
	return failures
}

// validate rejects paths that escape the plugin root and patterns that do not compile.
func (fc *fileCheck) validate() error {
	for _, p := range fc.Files() {
		if !filepath.IsLocal(p) {
			return fmt.Errorf("file check '%s': path %q must be relative to the plugin root", fc.name, p)
		}
	}
	for _, cp := range fc.contentPatterns {
		for _, pattern := range append(append([]string{}, cp.MustMatch...), cp.MustNotMatch...) {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("file check '%s': invalid regex pattern %q for file %s: %w", fc.name, pattern, cp.Path, err)
			}
		}
	}
	return nil
}

// countTotalChecks returns the total number of individual assertions.
func (fc *fileCheck) countTotalChecks() int {
	total := len(fc.mustExist) + len(fc.mustNotExist)

	for _, cp := range fc.contentPatterns {
		total += len(cp.MustMatch) + len(cp.MustNotMatch) + 1 // +1 is the implicit check for file existence
	}

	return total
}
