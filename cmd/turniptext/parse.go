package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"turniptext.dev/go/turniptext"
	"turniptext.dev/go/turniptext/config"
	"turniptext.dev/go/turniptext/diag"
	"turniptext.dev/go/turniptext/testhost"
)

func newParseCommand(root *rootFlags) *cobra.Command {
	var treeOnly bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a turniptext document and print its tree or diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], root, treeOnly)
		},
	}

	cmd.Flags().BoolVar(&treeOnly, "tree-only", false, "print only the document tree, suppressing warnings")

	return cmd
}

func runParse(cmd *cobra.Command, path string, root *rootFlags, treeOnly bool) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	// Only an explicitly-passed --color should override a persisted
	// project default; the flag's own "auto" default must not shadow it.
	var cliOverride config.Config
	if cmd.Flags().Changed("color") {
		cliOverride.Color = root.color
	}

	workDir := filepath.Dir(path)
	cfg, _, err := config.Load(config.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: root.configPath,
		CLI:          &cliOverride,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	styles := diag.NewStyles(isColorEnabled(cfg.Color, cmd.ErrOrStderr()))

	host := testhost.NewHost()
	doc, err := turniptext.Parse(host, turniptext.NamedSource{
		Name:     filepath.Base(path),
		Contents: string(contents),
	}, cfg.ParseOptions())
	if err != nil {
		var d *turniptext.Diagnostic
		if errors.As(err, &d) {
			fmt.Fprint(cmd.ErrOrStderr(), diag.Render(d, sourcesOf(doc), styles))
			return errExitCode(1)
		}
		return err
	}

	if !treeOnly {
		for _, w := range doc.Warnings {
			fmt.Fprint(cmd.ErrOrStderr(), diag.Render(w, doc.Sources, styles))
		}
	}

	dumpDocument(cmd.OutOrStdout(), doc)
	return nil
}

// sourcesOf tolerates a nil Document: a fatal Diagnostic can be returned
// before Parse ever builds one.
func sourcesOf(doc *turniptext.Document) []turniptext.SourceText {
	if doc == nil {
		return nil
	}
	return doc.Sources
}

// errExitCode is a sentinel error RunE can return to force a non-zero exit
// without main logging a redundant "command failed" line for output
// already rendered to stderr.
type errExitCode int

func (e errExitCode) Error() string { return "" }
