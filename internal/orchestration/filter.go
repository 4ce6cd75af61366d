package orchestration

import (
	"fmt"
	"path/filepath"

	"github.com/myst-nvim/fixcheck/internal/checks"
)

// FilterCheckers returns the subset of cs whose Name matches at least one of
// the given glob patterns, preserving order. An empty patterns slice returns
// all checkers unchanged.
func FilterCheckers(cs []checks.Checker, patterns []string) ([]checks.Checker, error) {
	if len(patterns) == 0 {
		return cs, nil
	}

	var matched []checks.Checker
	for _, c := range cs {
		ok, err := matchesAny(c.Name(), patterns)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func matchesAny(name string, patterns []string) (bool, error) {
	for _, p := range patterns {
		ok, err := filepath.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("invalid check filter pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
