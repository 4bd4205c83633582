package activities

import (
	"context"
	"os"
	"path/filepath"

	"github.com/subtide/subtitle-flows/paths"
	"go.temporal.io/sdk/activity"
)

type FileInput struct {
	Path paths.Path
}

type FileResult struct {
	Path paths.Path
}

type MoveFileInput struct {
	Source      paths.Path
	Destination paths.Path
}

func MoveFile(ctx context.Context, input MoveFileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "MoveFile")
	log.Info("Starting MoveFileActivity")

	err := os.MkdirAll(filepath.Dir(input.Destination.Local()), os.ModePerm)
	if err != nil {
		return nil, err
	}
	err = os.Rename(input.Source.Local(), input.Destination.Local())
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: input.Destination,
	}, nil
}

func StandardizeFileName(ctx context.Context, input FileInput) (*FileResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "StandardizeFileName")
	log.Info("Starting StandardizeFileNameActivity")

	fixed := paths.New(input.Path.Drive, paths.FixFilename(input.Path.Path))
	err := os.Rename(input.Path.Local(), fixed.Local())
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path: fixed,
	}, nil
}

type CreateFolderInput struct {
	Destination paths.Path
}

func CreateFolder(ctx context.Context, input CreateFolderInput) error {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "CreateFolder")
	log.Info("Starting CreateFolderActivity")

	return os.MkdirAll(input.Destination.Local(), os.ModePerm)
}

type DeletePathInput struct {
	Path paths.Path
}

func DeletePath(ctx context.Context, input DeletePathInput) error {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "DeletePath")
	log.Info("Starting DeletePathActivity")

	return os.RemoveAll(input.Path.Local())
}
