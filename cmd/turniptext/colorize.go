package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// isColorEnabled decides whether diagnostic rendering should use ANSI
// styling: "always"/"never" are absolute, "auto" defers to NO_COLOR and
// whether writer is a terminal.
func isColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
