// Package transcode orchestrates the two media pipelines: audio extraction
// with a quality-preserving fallback, and subtitle burn-in.
package transcode

import (
	"context"
	"math"

	"github.com/subtide/subtitle-flows/services/ffmpeg"
)

// Engine is the slice of the transcoding engine the orchestrator needs:
// a virtual filesystem plus serialized command execution with progress.
// *ffmpeg.Service satisfies it.
type Engine interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
	RemoveFile(name string) error
	StreamInfo(name string) (ffmpeg.StreamInfo, error)
	Execute(ctx context.Context, arguments []string, info ffmpeg.StreamInfo, progressCallback ffmpeg.ProgressCallback) error
}

// ProgressSink receives normalized progress percentages in [0, 100].
type ProgressSink func(percent int)

// NormalizePercent clamps a raw engine progress reading to an integer
// percentage. The engine transiently emits NaN and negative values; those
// are dropped (ok == false) rather than forwarded.
func NormalizePercent(raw float64) (int, bool) {
	if math.IsNaN(raw) || raw < 0 {
		return 0, false
	}
	percent := int(math.Round(raw))
	if percent > 100 {
		percent = 100
	}
	return percent, true
}

func progressCallback(sink ProgressSink) ffmpeg.ProgressCallback {
	if sink == nil {
		return nil
	}
	return func(p ffmpeg.Progress) {
		if percent, ok := NormalizePercent(p.Percent); ok {
			sink(percent)
		}
	}
}
