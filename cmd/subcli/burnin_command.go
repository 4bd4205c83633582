package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/subtide/subtitle-flows/services/ass"
	"github.com/subtide/subtitle-flows/services/srt"
	"github.com/subtide/subtitle-flows/services/transcode"
)

func newBurnInCommand() *cobra.Command {
	var styleFile string
	var fontFile string

	cmd := &cobra.Command{
		Use:   "burn-in <video> <subtitles.srt> <output.mp4>",
		Short: "Burn a timed-text file into a video's pixel data",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := localEngine()
			if err != nil {
				return err
			}

			video, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read video: %w", err)
			}

			subtitleData, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}
			cues := srt.Parse(string(subtitleData))

			style := ass.DefaultStyle
			if styleFile != "" {
				style, err = ass.LoadStyle(styleFile)
				if err != nil {
					return fmt.Errorf("load style: %w", err)
				}
			}

			var font *transcode.Font
			if fontFile != "" {
				fontData, err := os.ReadFile(fontFile)
				if err != nil {
					return fmt.Errorf("read font: %w", err)
				}
				font = &transcode.Font{
					Name:     style.FontName,
					FileName: filepath.Base(fontFile),
					Data:     fontData,
				}
			}

			result, err := transcode.BurnSubtitles(cmd.Context(), engine, transcode.BurnInput{
				Video:  video,
				Script: ass.Generate(cues, style),
				Font:   font,
			}, progressPrinter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			err = os.WriteFile(args[2], result.Data, 0o644)
			if err != nil {
				return fmt.Errorf("write video: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", args[2], len(result.Data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&styleFile, "style", "s", "", "Style definition file (TOML)")
	cmd.Flags().StringVarP(&fontFile, "font", "f", "", "Font file to provision for the render")

	return cmd
}
