package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myst-nvim/fixcheck/internal/checks"
	"github.com/myst-nvim/fixcheck/internal/models"
	"github.com/myst-nvim/fixcheck/internal/orchestration"
	"github.com/myst-nvim/fixcheck/internal/projectconfig"
	"github.com/myst-nvim/fixcheck/internal/reporting"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the fix checks against a plugin tree",
		Long: `Run the built-in fix checks, followed by any checks declared in
.fixcheck.yaml, against the plugin tree.

Checks run in order. A failed check is reported and the run continues;
a file that cannot be read aborts the run.

Examples:
  fixcheck run
  fixcheck run --root ~/src/myst-markdown-tree-sitter.nvim
  fixcheck run --check "Function*" --format json
  fixcheck run --junit results.xml`,
		Args:          cobra.NoArgs,
		RunE:          runSuite,
		SilenceErrors: true,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", ".", "Plugin root directory")
	cmd.Flags().String("config", "", "Path to a config file (default: search for "+projectconfig.FileName+")")
	cmd.Flags().String("format", "text", "Output format: text | json")
	cmd.Flags().String("junit", "", "Also write JUnit XML results to this file")
	cmd.Flags().StringSlice("check", nil, "Only run checks whose name matches this glob (repeatable)")
}

func runSuite(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}
	junitPath, err := cmd.Flags().GetString("junit")
	if err != nil {
		return err
	}
	patterns, err := cmd.Flags().GetStringSlice("check")
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	all, err := checks.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	selected, err := orchestration.FilterCheckers(all, patterns)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no checks match filter %s", strings.Join(patterns, ", "))
	}

	slog.Debug("Running checks", "root", cfg.Root, "config", cfg.Source, "checks", len(selected))

	runner := orchestration.NewCheckRunner(checks.NewSource(cfg.Root), selected,
		orchestration.WithTitle(cfg.Title))
	if format == "text" {
		runner.OnProgress(newTextReporter(cmd.OutOrStdout(), cfg.Title).listen)
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return &InspectionError{Err: err}
	}

	if format == "json" {
		if err := writeJSONReport(cmd, report); err != nil {
			return err
		}
	}

	if junitPath != "" {
		if err := reporting.WriteJUnitXML(report, junitPath); err != nil {
			return fmt.Errorf("writing JUnit results: %w", err)
		}
		slog.Debug("JUnit results written", "path", junitPath)
	}

	if !report.AllPassed() {
		return &TestFailureError{
			Message: fmt.Sprintf("%d of %d checks failed", report.Digest.Failed, report.Digest.Total),
		}
	}
	return nil
}

// loadProjectConfig resolves the config named by --config, or searches upward
// from --root.
func loadProjectConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return nil, err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	rootChanged := cmd.Flags().Changed("root")

	var cfg *projectconfig.ProjectConfig
	if configPath != "" {
		explicitRoot := ""
		if rootChanged {
			explicitRoot = root
		}
		cfg, err = projectconfig.LoadFile(configPath, explicitRoot)
	} else {
		cfg, err = projectconfig.Load(root)
	}
	if err != nil {
		return nil, err
	}

	// An explicit --root wins over the directory the config was found in.
	if rootChanged && configPath == "" {
		if cfg.Root, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", root, err)
		}
	}
	return cfg, nil
}

func writeJSONReport(cmd *cobra.Command, report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
