package activities

import (
	"context"
	"os"
	"strings"

	"github.com/subtide/subtitle-flows/paths"
	"github.com/subtide/subtitle-flows/services/transcribe"
	"go.temporal.io/sdk/activity"
)

var transcribeClient = transcribe.NewClient("")

type TranscribeInput struct {
	AudioFile       paths.Path
	Language        string
	DestinationPath paths.Path
}

type TranscribeOutput struct {
	SubtitleFile paths.Path
}

func TranscribeActivity(ctx context.Context, input TranscribeInput) (*TranscribeOutput, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "Transcribe")
	log.Info("Starting TranscribeActivity")

	stopChan := simpleHeartBeater(ctx)
	defer close(stopChan)

	audio, err := os.ReadFile(input.AudioFile.Local())
	if err != nil {
		return nil, err
	}

	result, err := transcribeClient.Transcribe(ctx, audio, input.Language)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(input.AudioFile.Base(), input.AudioFile.Ext())
	outputFile := input.DestinationPath.Append(base + ".srt")
	err = os.WriteFile(outputFile.Local(), []byte(result), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &TranscribeOutput{
		SubtitleFile: outputFile,
	}, nil
}
