package overlay

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtide/subtitle-flows/services/ass"
	"github.com/subtide/subtitle-flows/services/srt"
)

type fakeSurface struct {
	ready  atomic.Bool
	loaded chan struct{}
}

func newFakeSurface(ready bool) *fakeSurface {
	s := &fakeSurface{loaded: make(chan struct{})}
	if ready {
		s.ready.Store(true)
		close(s.loaded)
	}
	return s
}

func (s *fakeSurface) MetadataReady() bool             { return s.ready.Load() }
func (s *fakeSurface) MetadataLoaded() <-chan struct{} { return s.loaded }
func (s *fakeSurface) loadMetadata() {
	s.ready.Store(true)
	close(s.loaded)
}

type fakeRenderer struct {
	factory *fakeFactory
}

func (r *fakeRenderer) Destroy() {
	r.factory.live.Add(-1)
	r.factory.destroyed.Add(1)
}

type fakeFactory struct {
	created   atomic.Int32
	destroyed atomic.Int32
	live      atomic.Int32
	block     chan struct{} // if non-nil, construction waits here
}

func (f *fakeFactory) build(ctx context.Context, _ RendererOptions) (Renderer, error) {
	if f.block != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.block:
		}
	}
	f.created.Add(1)
	f.live.Add(1)
	return &fakeRenderer{factory: f}, nil
}

type staticFont struct {
	name string
	data []byte
	err  error
	wait chan struct{}
}

func (f *staticFont) Name() string { return f.name }

func (f *staticFont) Bytes(ctx context.Context) ([]byte, error) {
	if f.wait != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.wait:
		}
	}
	return f.data, f.err
}

func testCues(n int) []srt.Cue {
	cues := make([]srt.Cue, 0, n)
	for i := 0; i < n; i++ {
		cues = append(cues, srt.Cue{
			Sequence: i + 1,
			Start:    time.Duration(i) * time.Second,
			End:      time.Duration(i)*time.Second + 500*time.Millisecond,
			Text:     "cue",
		})
	}
	return cues
}

func newTestManager(surface Surface, factory *fakeFactory) *Manager {
	return NewManager(surface, factory.build, zerolog.Nop())
}

func Test_Manager_ActivatesSession(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(testCues(3), ass.DefaultStyle, nil)

	require.Eventually(t, func() bool {
		return m.State() == StateActive
	}, time.Second, time.Millisecond)

	assert.Equal(t, int32(1), factory.live.Load())

	m.Close()
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, int32(0), factory.live.Load())
}

func Test_Manager_EmptyCuesStayIdle(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(nil, ass.DefaultStyle, nil)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, int32(0), factory.created.Load())
}

func Test_Manager_EmptyCuesDestroyExisting(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(testCues(1), ass.DefaultStyle, nil)
	require.Eventually(t, func() bool {
		return m.State() == StateActive
	}, time.Second, time.Millisecond)

	m.Update(nil, ass.DefaultStyle, nil)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, int32(0), factory.live.Load())
	m.Close()
}

func Test_Manager_RapidUpdatesLeaveOneRenderer(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	// Style change immediately followed by a cue-list change, several times
	for i := 0; i < 10; i++ {
		m.Update(testCues(2), ass.DefaultStyle, nil)
		m.Update(testCues(3), ass.Style{FontSize: 30 + i}, nil)
	}

	require.Eventually(t, func() bool {
		return m.State() == StateActive
	}, time.Second, time.Millisecond)

	// Let any superseded constructions finish releasing
	require.Eventually(t, func() bool {
		return factory.live.Load() == 1
	}, time.Second, time.Millisecond)

	m.Close()
	assert.Equal(t, int32(0), factory.live.Load())
	assert.Equal(t, factory.created.Load(), factory.destroyed.Load())
}

func Test_Manager_SupersededConstructionIsReleased(t *testing.T) {
	factory := &fakeFactory{block: make(chan struct{})}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(testCues(1), ass.DefaultStyle, nil)
	assert.Equal(t, StateInitializing, m.State())

	// Supersede while the first construction is blocked in the factory
	m.Update(testCues(2), ass.DefaultStyle, nil)
	close(factory.block)

	require.Eventually(t, func() bool {
		return m.State() == StateActive && factory.live.Load() == 1
	}, time.Second, time.Millisecond)

	m.Close()
	assert.Equal(t, int32(0), factory.live.Load())
}

func Test_Manager_WaitsForMetadata(t *testing.T) {
	surface := newFakeSurface(false)
	factory := &fakeFactory{}
	m := newTestManager(surface, factory)

	m.Update(testCues(1), ass.DefaultStyle, nil)

	assert.Equal(t, StateInitializing, m.State())
	assert.Equal(t, int32(0), factory.created.Load())

	surface.loadMetadata()

	require.Eventually(t, func() bool {
		return m.State() == StateActive
	}, time.Second, time.Millisecond)
	m.Close()
}

func Test_Manager_CancelledWhileWaitingForMetadata(t *testing.T) {
	surface := newFakeSurface(false)
	factory := &fakeFactory{}
	m := newTestManager(surface, factory)

	m.Update(testCues(1), ass.DefaultStyle, nil)
	m.Close()

	surface.loadMetadata()

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, int32(0), factory.created.Load())
}

func Test_Manager_CustomFont(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(testCues(1), ass.DefaultStyle, &staticFont{name: "Inter", data: []byte("font")})

	require.Eventually(t, func() bool {
		return m.State() == StateActive
	}, time.Second, time.Millisecond)
	m.Close()
}

func Test_Manager_FontReadFailureAbandons(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(testCues(1), ass.DefaultStyle, &staticFont{name: "Inter", err: errors.New("read failed")})

	require.Eventually(t, func() bool {
		return m.State() == StateIdle
	}, time.Second, time.Millisecond)
	assert.Equal(t, int32(0), factory.created.Load())
	m.Close()
}

func Test_Manager_SupersededDuringFontRead(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	blocked := &staticFont{name: "Slow", data: []byte("font"), wait: make(chan struct{})}
	m.Update(testCues(1), ass.DefaultStyle, blocked)

	m.Update(testCues(1), ass.DefaultStyle, &staticFont{name: "Fast", data: []byte("font")})
	close(blocked.wait)

	require.Eventually(t, func() bool {
		return m.State() == StateActive && factory.live.Load() == 1
	}, time.Second, time.Millisecond)

	m.Close()
	assert.Equal(t, int32(0), factory.live.Load())
}

func Test_Manager_CloseIdempotent(t *testing.T) {
	factory := &fakeFactory{}
	m := newTestManager(newFakeSurface(true), factory)

	m.Update(testCues(1), ass.DefaultStyle, nil)
	m.Close()
	m.Close()

	assert.Equal(t, StateIdle, m.State())
}
