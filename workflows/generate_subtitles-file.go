package workflows

import (
	"github.com/subtide/subtitle-flows/activities"
	"github.com/subtide/subtitle-flows/paths"
	"go.temporal.io/sdk/workflow"
)

// GenerateSubtitlesFileInput is the input to the GenerateSubtitlesFile workflow
type GenerateSubtitlesFileInput struct {
	VideoFilePath   string
	Language        string
	DestinationPath string
}

type GenerateSubtitlesFileResult struct {
	SubtitleFilePath string
}

// GenerateSubtitlesFile extracts the audio from a video file, sends it to the
// speech service and writes the resulting timed-text file to the destination
// folder.
func GenerateSubtitlesFile(
	ctx workflow.Context,
	params GenerateSubtitlesFileInput,
) (*GenerateSubtitlesFileResult, error) {

	logger := workflow.GetLogger(ctx)
	logger.Info("Starting GenerateSubtitlesFile")

	videoFile, err := paths.Parse(params.VideoFilePath)
	if err != nil {
		return nil, err
	}

	destination, err := paths.Parse(params.DestinationPath)
	if err != nil {
		return nil, err
	}

	ctx = workflow.WithActivityOptions(ctx, DefaultActivityOptions)

	err = workflow.ExecuteActivity(ctx, activities.CreateFolder, activities.CreateFolderInput{
		Destination: destination,
	}).Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	transcodeCtx := workflow.WithActivityOptions(ctx, TranscodeActivityOptions())

	audioResponse := &activities.ExtractAudioOutput{}
	err = workflow.ExecuteActivity(transcodeCtx, activities.ExtractAudioActivity, activities.ExtractAudioInput{
		VideoFile:  videoFile,
		OutputPath: destination,
	}).Get(ctx, audioResponse)
	if err != nil {
		return nil, err
	}

	transcribeResponse := &activities.TranscribeOutput{}
	err = workflow.ExecuteActivity(ctx, activities.TranscribeActivity, activities.TranscribeInput{
		AudioFile:       audioResponse.AudioFile,
		Language:        params.Language,
		DestinationPath: destination,
	}).Get(ctx, transcribeResponse)
	if err != nil {
		return nil, err
	}

	return &GenerateSubtitlesFileResult{
		SubtitleFilePath: transcribeResponse.SubtitleFile.Local(),
	}, nil
}
