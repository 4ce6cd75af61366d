package checks

import (
	"fmt"

	"github.com/myst-nvim/fixcheck/internal/projectconfig"
)

// Builtin returns the six fix checks, in the order they run.
func Builtin(cfg *projectconfig.ProjectConfig) []Checker {
	return []Checker{
		&PriorityRemovalChecker{Path: cfg.Paths.SetupSource},
		&HighlightStructureChecker{
			Path:   cfg.Paths.SetupSource,
			Call:   cfg.Setup.HighlightCall,
			Groups: cfg.Setup.Groups,
		},
		&FunctionIntegrityChecker{
			Path:      cfg.Paths.SetupSource,
			Signature: cfg.Setup.Function,
			Call:      cfg.Setup.HighlightCall,
			Expected:  cfg.Setup.ExpectedCalls,
		},
		&CommentUpdatesChecker{
			Path:      cfg.Paths.SetupSource,
			Forbidden: cfg.Comments.Forbidden,
			Required:  cfg.Comments.Required,
		},
		&TestFileUpdatesChecker{
			Path:         cfg.Paths.TestFile,
			Required:     cfg.TestFile.Required,
			RequiredFold: cfg.TestFile.RequiredFold,
		},
		&NewFilesChecker{Paths: cfg.Paths.ExpectedFiles},
	}
}

// FromConfig returns the built-in checks followed by any declared checks.
func FromConfig(cfg *projectconfig.ProjectConfig) ([]Checker, error) {
	all := Builtin(cfg)
	for i, cc := range cfg.Checks {
		c, err := NewDeclared(cc)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		all = append(all, c)
	}
	return all, nil
}
