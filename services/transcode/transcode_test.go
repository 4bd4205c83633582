package transcode

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtide/subtitle-flows/services/ffmpeg"
)

type fakeEngine struct {
	files      map[string][]byte
	executions [][]string
	failures   int
	emit       []float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{files: map[string][]byte{}}
}

func (e *fakeEngine) WriteFile(name string, data []byte) error {
	e.files[name] = data
	return nil
}

func (e *fakeEngine) ReadFile(name string) ([]byte, error) {
	data, ok := e.files[name]
	if !ok {
		return nil, errors.New("no such engine file: " + name)
	}
	return data, nil
}

func (e *fakeEngine) RemoveFile(name string) error {
	delete(e.files, name)
	return nil
}

func (e *fakeEngine) StreamInfo(name string) (ffmpeg.StreamInfo, error) {
	if _, ok := e.files[name]; !ok {
		return ffmpeg.StreamInfo{}, errors.New("no such engine file: " + name)
	}
	return ffmpeg.StreamInfo{HasVideo: true, HasAudio: true, TotalSeconds: 10}, nil
}

func (e *fakeEngine) Execute(_ context.Context, arguments []string, _ ffmpeg.StreamInfo, cb ffmpeg.ProgressCallback) error {
	e.executions = append(e.executions, arguments)
	if len(e.executions) <= e.failures {
		return errors.New("engine: codec not supported in container")
	}
	if cb != nil {
		for _, percent := range e.emit {
			cb(ffmpeg.Progress{Percent: percent})
		}
	}
	output := arguments[len(arguments)-1]
	e.files[output] = []byte("rendered:" + output)
	return nil
}

func Test_NormalizePercent(t *testing.T) {
	percent, ok := NormalizePercent(50)
	assert.True(t, ok)
	assert.Equal(t, 50, percent)

	percent, ok = NormalizePercent(130)
	assert.True(t, ok)
	assert.Equal(t, 100, percent)

	percent, ok = NormalizePercent(99.6)
	assert.True(t, ok)
	assert.Equal(t, 100, percent)

	percent, ok = NormalizePercent(0)
	assert.True(t, ok)
	assert.Equal(t, 0, percent)

	_, ok = NormalizePercent(-0.1)
	assert.False(t, ok)

	_, ok = NormalizePercent(math.NaN())
	assert.False(t, ok)
}

func Test_ExtractAudio_StreamCopy(t *testing.T) {
	engine := newFakeEngine()

	result, err := ExtractAudio(context.Background(), engine, []byte("video"), nil)
	require.NoError(t, err)

	require.Len(t, engine.executions, 1)
	assert.Contains(t, engine.executions[0], "copy")
	assert.Contains(t, engine.executions[0], "-vn")
	assert.Contains(t, engine.executions[0], "0:a")

	assert.Equal(t, []byte("rendered:output.m4a"), result.Data)
	assert.Equal(t, "audio/mp4", result.MIMEType)
	assert.Equal(t, "audio.m4a", result.Filename)

	// Job files are cleaned out of the engine workspace
	assert.Empty(t, engine.files)
}

func Test_ExtractAudio_FallsBackToReencode(t *testing.T) {
	engine := newFakeEngine()
	engine.failures = 1

	result, err := ExtractAudio(context.Background(), engine, []byte("video"), nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, engine.executions, 2)
	assert.Contains(t, engine.executions[0], "copy")
	assert.NotContains(t, engine.executions[0], "aac")
	assert.Contains(t, engine.executions[1], "aac")
	assert.Contains(t, engine.executions[1], "256k")
	assert.Contains(t, engine.executions[1], "48000")
}

func Test_ExtractAudio_BothStagesFail(t *testing.T) {
	engine := newFakeEngine()
	engine.failures = 2

	_, err := ExtractAudio(context.Background(), engine, []byte("video"), nil)
	assert.ErrorIs(t, err, ErrAudioExtract)
	assert.Len(t, engine.executions, 2)
}

func Test_ExtractAudio_NoFallbackAfterCancellation(t *testing.T) {
	engine := newFakeEngine()
	engine.failures = 2

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractAudio(ctx, engine, []byte("video"), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, engine.executions, 1)
}

func Test_BurnSubtitles(t *testing.T) {
	engine := newFakeEngine()
	engine.emit = []float64{-1, math.NaN(), 12.4, 55, 130}

	var forwarded []int
	result, err := BurnSubtitles(context.Background(), engine, BurnInput{
		Video:  []byte("video"),
		Script: "[Script Info]",
		Font:   &Font{Name: "Inter", FileName: "inter.ttf", Data: []byte("font")},
	}, func(percent int) {
		forwarded = append(forwarded, percent)
	})
	require.NoError(t, err)

	require.Len(t, engine.executions, 1)
	args := engine.executions[0]
	assert.Contains(t, args, "ass=subtitles.ass:fontsdir=.")
	assert.Contains(t, args, "ultrafast")
	assert.Contains(t, args, "-threads")
	assert.Contains(t, args, "4")
	assert.Contains(t, args, "copy")

	// Invalid readings are dropped, the rest clamped to [0, 100]
	assert.Equal(t, []int{12, 55, 100}, forwarded)

	assert.Equal(t, []byte("rendered:output.mp4"), result.Data)
	assert.Equal(t, "video/mp4", result.MIMEType)

	assert.Empty(t, engine.files)
}

func Test_BurnSubtitles_FontWithoutData(t *testing.T) {
	engine := newFakeEngine()

	_, err := BurnSubtitles(context.Background(), engine, BurnInput{
		Video:  []byte("video"),
		Script: "[Script Info]",
		Font:   &Font{Name: "Inter", FileName: "inter.ttf"},
	}, nil)
	assert.ErrorIs(t, err, ErrFontNotAvailable)

	// Rejected before anything touches the engine
	assert.Empty(t, engine.executions)
	assert.Empty(t, engine.files)
}

func Test_BurnSubtitles_EngineFailure(t *testing.T) {
	engine := newFakeEngine()
	engine.failures = 1

	_, err := BurnSubtitles(context.Background(), engine, BurnInput{
		Video:  []byte("video"),
		Script: "[Script Info]",
		Font:   &Font{Name: "Inter", FileName: "inter.ttf", Data: []byte("font")},
	}, nil)
	assert.Error(t, err)

	// No partial artifact left behind
	assert.Empty(t, engine.files)
}
