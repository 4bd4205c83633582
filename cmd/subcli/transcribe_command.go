package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtide/subtitle-flows/services/transcribe"
)

func newTranscribeCommand() *cobra.Command {
	var language string
	var server string

	cmd := &cobra.Command{
		Use:   "transcribe <audio> <output.srt>",
		Short: "Transcribe an audio file to timed text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio: %w", err)
			}

			client := transcribe.NewClient(server)
			result, err := client.Transcribe(cmd.Context(), audio, language)
			if err != nil {
				return err
			}

			err = os.WriteFile(args[1], []byte(result), 0o644)
			if err != nil {
				return fmt.Errorf("write subtitles: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "auto", "Spoken language, or auto to detect")
	cmd.Flags().StringVar(&server, "server", "", "Transcription service base URL")

	return cmd
}
