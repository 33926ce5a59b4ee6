package main

import (
	"github.com/spf13/cobra"

	"turniptext.dev/go/turniptext/internal/logging"
)

// rootFlags carries the persistent flags every subcommand can read.
type rootFlags struct {
	debug      bool
	configPath string
	color      string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "turniptext",
		Short: "Parse turniptext documents",
		Long: `turniptext parses the turniptext document-description language
through a host bridge and reports the resulting tree or diagnostics.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	cmd.AddCommand(newParseCommand(flags))

	return cmd
}
