package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subcli",
		Short:         "Subtitle pipeline CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newExtractAudioCommand())
	rootCmd.AddCommand(newBurnInCommand())
	rootCmd.AddCommand(newTranscribeCommand())

	return rootCmd
}
