package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/subtide/subtitle-flows/services/ffmpeg"
	"github.com/subtide/subtitle-flows/services/transcode"
)

func localEngine() (*ffmpeg.Service, error) {
	return ffmpeg.New(filepath.Join(os.TempDir(), "subcli-engine"))
}

func progressPrinter(out io.Writer) transcode.ProgressSink {
	last := -1
	return func(percent int) {
		if percent == last {
			return
		}
		last = percent
		fmt.Fprintf(out, "\rprogress: %3d%%", percent)
		if percent == 100 {
			fmt.Fprintln(out)
		}
	}
}
