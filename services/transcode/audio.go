package transcode

import (
	"context"

	"github.com/ansel1/merry/v2"
	"github.com/rs/zerolog/log"
)

var ErrAudioExtract = merry.Sentinel("audio extraction failed")

type AudioResult struct {
	Data     []byte
	Filename string
	MIMEType string
}

const (
	audioInputName  = "input.mp4"
	audioOutputName = "output.m4a"
)

// ExtractAudio pulls the audio streams out of a video container. Stage 1
// stream-copies the codec bitstream unchanged, which is fast and lossless.
// When the codec is incompatible with the target container, stage 2 decodes
// and re-encodes at a fixed high bitrate and sample rate. Both stages
// failing is an explicit error, never a silent nil result.
func ExtractAudio(ctx context.Context, engine Engine, video []byte, sink ProgressSink) (*AudioResult, error) {
	err := engine.WriteFile(audioInputName, video)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = engine.RemoveFile(audioInputName)
		_ = engine.RemoveFile(audioOutputName)
	}()

	info, err := engine.StreamInfo(audioInputName)
	if err != nil {
		return nil, err
	}

	cb := progressCallback(sink)

	err = engine.Execute(ctx, []string{
		"-i", audioInputName,
		"-map", "0:a",
		"-vn",
		"-acodec", "copy",
		audioOutputName,
	}, info, cb)

	if err != nil {
		if ctx.Err() != nil {
			return nil, merry.Wrap(ctx.Err())
		}

		log.Warn().Err(err).Msg("audio stream copy failed, re-encoding instead")

		err = engine.Execute(ctx, []string{
			"-i", audioInputName,
			"-vn",
			"-map", "0:a",
			"-acodec", "aac",
			"-b:a", "256k",
			"-ar", "48000",
			audioOutputName,
		}, info, cb)
		if err != nil {
			return nil, merry.Wrap(ErrAudioExtract, merry.WithCause(err))
		}
	}

	data, err := engine.ReadFile(audioOutputName)
	if err != nil {
		return nil, err
	}

	return &AudioResult{
		Data:     data,
		Filename: "audio.m4a",
		MIMEType: "audio/mp4",
	}, nil
}
