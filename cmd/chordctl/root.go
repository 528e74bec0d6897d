package main

import (
	"github.com/spf13/cobra"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chordctl",
		Short:         "Chord progression analysis from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
