package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtide/subtitle-flows/services/ass"
	"github.com/subtide/subtitle-flows/services/srt"
)

func newConvertCommand() *cobra.Command {
	var styleFile string

	cmd := &cobra.Command{
		Use:   "convert <subtitles.srt> <output.ass>",
		Short: "Compile a timed-text file into a styled render script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}

			cues := srt.Parse(string(data))

			style := ass.DefaultStyle
			if styleFile != "" {
				style, err = ass.LoadStyle(styleFile)
				if err != nil {
					return fmt.Errorf("load style: %w", err)
				}
			}

			err = os.WriteFile(args[1], []byte(ass.Generate(cues, style)), 0o644)
			if err != nil {
				return fmt.Errorf("write script: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d cues into %s\n", len(cues), args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&styleFile, "style", "s", "", "Style definition file (TOML)")

	return cmd
}
