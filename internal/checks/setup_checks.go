package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/myst-nvim/fixcheck/internal/projectconfig"
)

// priorityPatterns catch any leftover priority argument, whether passed as a
// table field (priority = 200), a key (priority: 200) or positionally.
var priorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)priority\s*=`),
	regexp.MustCompile(`(?i)priority\s*:`),
	regexp.MustCompile(`(?i)priority\s*\d+`),
}

// endKeyword closes the first Lua block after the setup function signature.
// It matches `end` as a whole word, unlike a plain substring search, so
// identifiers such as `backend` or `append` do not cut the body short.
var endKeyword = regexp.MustCompile(`\bend\b`)

// PriorityRemovalChecker fails if the setup source still passes a priority parameter.
type PriorityRemovalChecker struct {
	Path string
}

var _ Checker = (*PriorityRemovalChecker)(nil)

func (*PriorityRemovalChecker) Name() string { return "Priority Parameter Removal" }

func (c *PriorityRemovalChecker) Files() []string { return []string{c.Path} }

func (c *PriorityRemovalChecker) Check(src *Source) (*CheckResult, error) {
	content, err := src.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	for _, re := range priorityPatterns {
		if matches := re.FindAllString(content, -1); len(matches) > 0 {
			return fail(c.Name(), fmt.Sprintf("Found priority parameter: %q", matches)), nil
		}
	}
	return pass(c.Name(), "No priority parameters found in code"), nil
}

// HighlightStructureChecker requires one nvim_set_hl link call per configured group.
type HighlightStructureChecker struct {
	Path   string
	Call   string
	Groups []projectconfig.HighlightGroup
}

var _ Checker = (*HighlightStructureChecker)(nil)

func (*HighlightStructureChecker) Name() string { return "Highlight Structure" }

func (c *HighlightStructureChecker) Files() []string { return []string{c.Path} }

func (c *HighlightStructureChecker) Check(src *Source) (*CheckResult, error) {
	content, err := src.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	for i, g := range c.Groups {
		re, err := highlightPattern(c.Call, g)
		if err != nil {
			return nil, err
		}
		if !re.MatchString(content) {
			return fail(c.Name(),
				fmt.Sprintf("Expected highlight pattern %d not found", i+1),
				re.String(),
			), nil
		}
	}
	return pass(c.Name(), "All highlight calls properly structured"), nil
}

// highlightPattern builds the regex for `<call>(0, "<group>", { link = "<link>" })`
// allowing free whitespace between tokens.
func highlightPattern(call string, g projectconfig.HighlightGroup) (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(call) +
		`\(0,\s*"` + regexp.QuoteMeta(g.Group) +
		`",\s*\{\s*link\s*=\s*"` + regexp.QuoteMeta(g.Link) +
		`"\s*\}\)`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling highlight pattern for %s: %w", g.Group, err)
	}
	return re, nil
}

// FunctionIntegrityChecker verifies the setup function still registers the
// expected number of highlights.
type FunctionIntegrityChecker struct {
	Path      string
	Signature string
	Call      string
	Expected  int
}

var _ Checker = (*FunctionIntegrityChecker)(nil)

func (*FunctionIntegrityChecker) Name() string { return "Function Integrity" }

func (c *FunctionIntegrityChecker) Files() []string { return []string{c.Path} }

func (c *FunctionIntegrityChecker) Check(src *Source) (*CheckResult, error) {
	content, err := src.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	label := functionLabel(c.Signature)
	body, ok := FunctionBody(content, c.Signature)
	if !ok {
		return fail(c.Name(), fmt.Sprintf("%s function not found", label)), nil
	}

	if n := strings.Count(body, c.Call); n != c.Expected {
		return fail(c.Name(), fmt.Sprintf("Expected %d %s calls in function, found %d", c.Expected, shortCall(c.Call), n)), nil
	}
	return pass(c.Name(), fmt.Sprintf("%s function is intact", label)), nil
}

// FunctionBody returns the text from signature through the first following
// `end` keyword. ok is false when the signature does not occur. A signature
// with no closing `end` yields an empty body.
func FunctionBody(content, signature string) (body string, ok bool) {
	start := strings.Index(content, signature)
	if start < 0 {
		return "", false
	}
	rest := content[start:]
	loc := endKeyword.FindStringIndex(rest[len(signature):])
	if loc == nil {
		return "", true
	}
	return rest[:len(signature)+loc[1]], true
}

// functionLabel turns "function M.setup_myst_highlighting()" into "setup_myst_highlighting".
func functionLabel(signature string) string {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(signature), "local "))
	s = strings.TrimPrefix(s, "function ")
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexAny(s, ".:"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// shortCall turns "vim.api.nvim_set_hl" into "nvim_set_hl".
func shortCall(call string) string {
	if i := strings.LastIndexByte(call, '.'); i >= 0 {
		return call[i+1:]
	}
	return call
}

// CommentUpdatesChecker verifies stale comments were replaced.
type CommentUpdatesChecker struct {
	Path      string
	Forbidden []string
	Required  []string
}

var _ Checker = (*CommentUpdatesChecker)(nil)

func (*CommentUpdatesChecker) Name() string { return "Comment Updates" }

func (c *CommentUpdatesChecker) Files() []string { return []string{c.Path} }

func (c *CommentUpdatesChecker) Check(src *Source) (*CheckResult, error) {
	content, err := src.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}

	for _, phrase := range c.Forbidden {
		if strings.Contains(content, phrase) {
			return fail(c.Name(), fmt.Sprintf("Old comment still present: %q", phrase)), nil
		}
	}
	for _, phrase := range c.Required {
		if !strings.Contains(content, phrase) {
			return fail(c.Name(), fmt.Sprintf("New comment not found: %q", phrase)), nil
		}
	}
	return pass(c.Name(), "Comments updated appropriately"), nil
}
