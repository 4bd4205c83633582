package transcode

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ansel1/merry/v2"
	"github.com/subtide/subtitle-flows/environment"
)

var ErrFontNotAvailable = merry.Sentinel("burn-in font not available")

// Font is a user-supplied font: raw bytes plus the logical family name the
// script references and the filename the engine resolves it under. Data must
// be non-empty; a font without bytes is rejected rather than silently
// replaced by the bundled default.
type Font struct {
	Name     string
	FileName string
	Data     []byte
}

type BurnInput struct {
	Video  []byte
	Script string
	Font   *Font
}

type VideoResult struct {
	Data     []byte
	Filename string
	MIMEType string
}

const (
	burnInputName    = "input.mp4"
	burnOutputName   = "output.mp4"
	subtitleFileName = "subtitles.ass"
)

// BurnSubtitles permanently composites the styled script into the video's
// pixel data. The audio stream is copied unchanged and the fastest encoder
// preset is used. A font is always provisioned: the supplied one, or the
// bundled default.
func BurnSubtitles(ctx context.Context, engine Engine, input BurnInput, sink ProgressSink) (*VideoResult, error) {
	fontFileName := environment.GetDefaultFont()
	var fontData []byte
	if input.Font != nil {
		if len(input.Font.Data) == 0 {
			return nil, merry.Wrap(ErrFontNotAvailable, merry.AppendMessagef("custom font %q has no data", input.Font.Name))
		}
		fontFileName = input.Font.FileName
		fontData = input.Font.Data
	} else {
		bundled, err := os.ReadFile(filepath.Join(environment.GetFontsPrefix(), environment.GetDefaultFont()))
		if err != nil {
			return nil, merry.Wrap(ErrFontNotAvailable, merry.WithCause(err))
		}
		fontData = bundled
	}

	err := engine.WriteFile(burnInputName, input.Video)
	if err != nil {
		return nil, err
	}
	err = engine.WriteFile(subtitleFileName, []byte(input.Script))
	if err != nil {
		return nil, err
	}
	err = engine.WriteFile(fontFileName, fontData)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = engine.RemoveFile(burnInputName)
		_ = engine.RemoveFile(subtitleFileName)
		_ = engine.RemoveFile(fontFileName)
		_ = engine.RemoveFile(burnOutputName)
	}()

	info, err := engine.StreamInfo(burnInputName)
	if err != nil {
		return nil, err
	}

	err = engine.Execute(ctx, []string{
		"-i", burnInputName,
		"-vf", "ass=" + subtitleFileName + ":fontsdir=.",
		"-c:a", "copy",
		"-preset", "ultrafast",
		// The engine misbehaves when multithreaded without an explicit
		// thread count. Do not remove.
		"-threads", "4",
		burnOutputName,
	}, info, progressCallback(sink))
	if err != nil {
		return nil, err
	}

	data, err := engine.ReadFile(burnOutputName)
	if err != nil {
		return nil, err
	}

	return &VideoResult{
		Data:     data,
		Filename: "output.mp4",
		MIMEType: "video/mp4",
	}, nil
}
