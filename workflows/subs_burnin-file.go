package workflows

import (
	"github.com/subtide/subtitle-flows/activities"
	"github.com/subtide/subtitle-flows/paths"
	"go.temporal.io/sdk/workflow"
)

// SubtitleBurnInFileInput is the input to the SubtitleBurnInFile workflow
type SubtitleBurnInFileInput struct {
	VideoFilePath    string
	SubtitleFilePath string
	StyleFilePath    string
	FontFilePath     string
}

type SubtitleBurnInFileResult struct {
	VideoFilePath string
}

// SubtitleBurnInFile burns a timed-text file into a video. Output folder is
// set to the same as where the file originated.
func SubtitleBurnInFile(
	ctx workflow.Context,
	params SubtitleBurnInFileInput,
) (*SubtitleBurnInFileResult, error) {

	logger := workflow.GetLogger(ctx)
	ctx = workflow.WithActivityOptions(ctx, TranscodeActivityOptions())

	logger.Info("Starting SubtitleBurnInFile")

	videoFile, err := paths.Parse(params.VideoFilePath)
	if err != nil {
		return nil, err
	}

	subtitleFile, err := paths.Parse(params.SubtitleFilePath)
	if err != nil {
		return nil, err
	}

	input := activities.SubtitleBurnInInput{
		VideoFile:    videoFile,
		SubtitleFile: subtitleFile,
		OutputPath:   videoFile.Dir(),
	}

	if params.StyleFilePath != "" {
		styleFile, err := paths.Parse(params.StyleFilePath)
		if err != nil {
			return nil, err
		}
		input.StyleFile = &styleFile
	}

	if params.FontFilePath != "" {
		fontFile, err := paths.Parse(params.FontFilePath)
		if err != nil {
			return nil, err
		}
		input.FontFile = &fontFile
	}

	burnResponse := &activities.SubtitleBurnInOutput{}
	err = workflow.ExecuteActivity(ctx, activities.SubtitleBurnInActivity, input).Get(ctx, burnResponse)
	if err != nil {
		return nil, err
	}

	return &SubtitleBurnInFileResult{
		VideoFilePath: burnResponse.VideoFile.Local(),
	}, nil
}
