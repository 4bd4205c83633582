package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtide/subtitle-flows/services/transcode"
)

func newExtractAudioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract-audio <video> <output.m4a>",
		Short: "Extract the audio track from a video file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := localEngine()
			if err != nil {
				return err
			}

			video, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read video: %w", err)
			}

			result, err := transcode.ExtractAudio(cmd.Context(), engine, video, progressPrinter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			err = os.WriteFile(args[1], result.Data, 0o644)
			if err != nil {
				return fmt.Errorf("write audio: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", args[1], len(result.Data))
			return nil
		},
	}
}
