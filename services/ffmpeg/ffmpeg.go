// Package ffmpeg drives the external transcoding engine. The engine
// contract is a working directory acting as a virtual filesystem (write
// bytes under a name, execute an argument list, read bytes back) plus a
// line-oriented progress channel parsed from `-progress pipe:1`.
package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/ansel1/merry/v2"
	"github.com/rs/zerolog/log"
	"github.com/subtide/subtitle-flows/environment"
	"github.com/subtide/subtitle-flows/utils"
)

var ErrNameNotValid = merry.Sentinel("engine file name not valid")

// Service owns one engine working directory. The engine is not reentrant:
// Execute holds a mutex so a second job blocks until the in-flight one
// finishes. Progress callbacks are scoped to a single Execute call, so a
// finished job can never leak progress into the next one.
type Service struct {
	workDir string
	mu      sync.Mutex
}

func New(workDir string) (*Service, error) {
	err := os.MkdirAll(workDir, os.ModePerm)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	return &Service{workDir: workDir}, nil
}

var (
	shared     *Service
	sharedErr  error
	sharedOnce sync.Once
)

// Shared returns the lazily constructed process-wide engine instance.
func Shared() (*Service, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = New(filepath.Join(environment.GetTempMountPrefix(), "engine"))
	})
	return shared, sharedErr
}

func (s *Service) resolve(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if cleaned == "." || cleaned == ".." || filepath.IsAbs(cleaned) || filepath.Dir(cleaned) != "." {
		return "", merry.Wrap(ErrNameNotValid, merry.AppendMessagef("got %q", name))
	}
	return filepath.Join(s.workDir, cleaned), nil
}

func (s *Service) WriteFile(name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	return merry.Wrap(os.WriteFile(path, data, os.ModePerm))
}

func (s *Service) ReadFile(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	return data, merry.Wrap(err)
}

func (s *Service) RemoveFile(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return merry.Wrap(err)
	}
	return nil
}

// Execute runs one engine job. Arguments reference files by the names they
// were written under. `-progress pipe:1` is prepended so the run reports
// machine-readable progress on stdout.
func (s *Service) Execute(ctx context.Context, arguments []string, info StreamInfo, progressCallback ProgressCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args := append([]string{"-progress", "pipe:1", "-hide_banner", "-y"}, arguments...)

	log.Debug().Strs("args", args).Msg("executing engine job")

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Dir = s.workDir

	_, err := utils.ExecuteCmd(cmd, parseProgressCallback(args, info, progressCallback))
	return merry.Wrap(err)
}
