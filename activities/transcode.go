package activities

import (
	"context"
	"os"
	"strings"

	"github.com/subtide/subtitle-flows/paths"
	"github.com/subtide/subtitle-flows/services/ass"
	"github.com/subtide/subtitle-flows/services/ffmpeg"
	"github.com/subtide/subtitle-flows/services/srt"
	"github.com/subtide/subtitle-flows/services/transcode"
	"go.temporal.io/sdk/activity"
)

type ExtractAudioInput struct {
	VideoFile  paths.Path
	OutputPath paths.Path
}

type ExtractAudioOutput struct {
	AudioFile paths.Path
}

func ExtractAudioActivity(ctx context.Context, input ExtractAudioInput) (*ExtractAudioOutput, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "ExtractAudio")
	log.Info("Starting ExtractAudioActivity")

	stopChan, progress := registerProgressCallback(ctx)
	defer close(stopChan)

	engine, err := ffmpeg.Shared()
	if err != nil {
		return nil, err
	}

	video, err := os.ReadFile(input.VideoFile.Local())
	if err != nil {
		return nil, err
	}

	result, err := transcode.ExtractAudio(ctx, engine, video, progress)
	if err != nil {
		return nil, err
	}

	outputFile := input.OutputPath.Append(input.VideoFile.Base()).SetExt(".m4a")
	err = os.WriteFile(outputFile.Local(), result.Data, os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &ExtractAudioOutput{
		AudioFile: outputFile,
	}, nil
}

type SubtitleBurnInInput struct {
	VideoFile    paths.Path
	SubtitleFile paths.Path
	StyleFile    *paths.Path
	FontFile     *paths.Path
	OutputPath   paths.Path
}

type SubtitleBurnInOutput struct {
	VideoFile paths.Path
}

func SubtitleBurnInActivity(ctx context.Context, input SubtitleBurnInInput) (*SubtitleBurnInOutput, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "SubtitleBurnIn")
	log.Info("Starting SubtitleBurnInActivity")

	stopChan, progress := registerProgressCallback(ctx)
	defer close(stopChan)

	engine, err := ffmpeg.Shared()
	if err != nil {
		return nil, err
	}

	video, err := os.ReadFile(input.VideoFile.Local())
	if err != nil {
		return nil, err
	}

	subtitleData, err := os.ReadFile(input.SubtitleFile.Local())
	if err != nil {
		return nil, err
	}
	cues := srt.Parse(string(subtitleData))

	style := ass.DefaultStyle
	if input.StyleFile != nil {
		style, err = ass.LoadStyle(input.StyleFile.Local())
		if err != nil {
			return nil, err
		}
	}

	var font *transcode.Font
	if input.FontFile != nil {
		fontData, err := os.ReadFile(input.FontFile.Local())
		if err != nil {
			return nil, err
		}
		font = &transcode.Font{
			Name:     style.FontName,
			FileName: input.FontFile.Base(),
			Data:     fontData,
		}
	}

	result, err := transcode.BurnSubtitles(ctx, engine, transcode.BurnInput{
		Video:  video,
		Script: ass.Generate(cues, style),
		Font:   font,
	}, progress)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(input.VideoFile.Base(), input.VideoFile.Ext())
	outputFile := input.OutputPath.Append(base + "_burnin.mp4")
	err = os.WriteFile(outputFile.Local(), result.Data, os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &SubtitleBurnInOutput{
		VideoFile: outputFile,
	}, nil
}
