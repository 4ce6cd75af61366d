package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixcheck",
		Short: "fixcheck - regression checks for the MyST highlight priority fix",
		Long: `fixcheck verifies that the unsupported highlight "priority" parameter was
removed from the myst-markdown-tree-sitter.nvim plugin (Issue #44).

It inspects the plugin's Lua sources and tests as plain text, prints one
status line per check and exits 0 when every check passes, 1 otherwise.

With no subcommand it runs the suite, same as "fixcheck run".`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSuite,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}
	addRunFlags(cmd)

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newListCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
