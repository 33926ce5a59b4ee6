// Command turniptext drives the core parser from the command line through
// testhost, the package's reference HostBridge (§6).
package main

import (
	"os"

	"turniptext.dev/go/turniptext/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		// A diagnostic already rendered to stderr by runParse carries no
		// message of its own; anything else is an unexpected failure.
		if err.Error() != "" {
			logging.Default().Error("command failed", "error", err)
		}
		return 1
	}
	return 0
}
