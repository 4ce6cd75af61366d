package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/myst-nvim/fixcheck/internal/checks"
	"github.com/myst-nvim/fixcheck/internal/projectconfig"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the checks that would run",
		Long: `List the built-in and declared checks in run order, with the files
each one inspects. Nothing is read from the plugin tree.`,
		Args:          cobra.NoArgs,
		RunE:          runList,
		SilenceErrors: true,
	}
	cmd.Flags().String("root", ".", "Plugin root directory")
	cmd.Flags().String("config", "", "Path to a config file (default: search for "+projectconfig.FileName+")")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	all, err := checks.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	printCheckTable(cmd.OutOrStdout(), all)
	return nil
}

func printCheckTable(w io.Writer, cs []checks.Checker) {
	const colNum = 4
	nameWidth := runewidth.StringWidth("Check")
	for _, c := range cs {
		if sw := runewidth.StringWidth(c.Name()); sw > nameWidth {
			nameWidth = sw
		}
	}
	nameWidth += 2

	fmt.Fprintf(w, "%s%s%s\n", padRight("#", colNum), padRight("Check", nameWidth), "Files") //nolint:errcheck
	fmt.Fprintln(w, strings.Repeat("─", colNum+nameWidth+len("Files")))                       //nolint:errcheck

	for i, c := range cs {
		files := "-"
		if in, ok := c.(checks.Inspector); ok && len(in.Files()) > 0 {
			files = strings.Join(in.Files(), ", ")
		}
		fmt.Fprintf(w, "%s%s%s\n", //nolint:errcheck
			padRight(fmt.Sprintf("%d", i+1), colNum),
			padRight(c.Name(), nameWidth),
			files)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
