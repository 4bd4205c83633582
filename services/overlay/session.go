// Package overlay owns the live subtitle renderer bound to a playing video
// surface. At most one renderer is alive per surface; every change to cues,
// style or font tears the old session down before a new one starts
// constructing.
package overlay

import (
	"context"
	"sync"

	"github.com/orsinium-labs/enum"
	"github.com/rs/zerolog"
	"github.com/subtide/subtitle-flows/services/ass"
	"github.com/subtide/subtitle-flows/services/srt"
)

type State enum.Member[string]

var (
	StateIdle         = State{Value: "idle"}
	StateInitializing = State{Value: "initializing"}
	StateActive       = State{Value: "active"}
	StateDestroying   = State{Value: "destroying"}
	States            = enum.New(StateIdle, StateInitializing, StateActive, StateDestroying)
)

// Renderer is a live styled-subtitle renderer instance.
type Renderer interface {
	Destroy()
}

// Surface is the video playback element a renderer binds to.
type Surface interface {
	// MetadataReady reports whether the media's metadata is already loaded.
	MetadataReady() bool
	// MetadataLoaded is closed once metadata becomes available.
	MetadataLoaded() <-chan struct{}
}

// FontSource supplies custom font bytes. Reading may suspend (the bytes can
// come from user storage), so it takes a context.
type FontSource interface {
	Name() string
	Bytes(ctx context.Context) ([]byte, error)
}

type RendererOptions struct {
	Surface  Surface
	Script   string
	FontName string
	FontData []byte
}

// RendererFactory constructs a renderer. Construction may suspend (module
// loading, worker spin-up); implementations should honor ctx cancellation.
type RendererFactory func(ctx context.Context, opts RendererOptions) (Renderer, error)

// Manager is the per-surface session state machine:
// Idle -> Initializing -> Active -> (Destroying) -> Idle.
type Manager struct {
	surface Surface
	factory RendererFactory
	logger  zerolog.Logger

	mu       sync.Mutex
	state    State
	renderer Renderer
	cancel   context.CancelFunc
	gen      uint64

	wg sync.WaitGroup
}

func NewManager(surface Surface, factory RendererFactory, logger zerolog.Logger) *Manager {
	return &Manager{
		surface: surface,
		factory: factory,
		logger:  logger,
		state:   StateIdle,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Update replaces the session whenever cues, style or font change. Any
// prior session is destroyed synchronously before the new construction is
// scheduled, so two live renderers can never coexist. An empty cue list is
// a valid terminal state: the machine stops at Idle without a renderer.
func (m *Manager) Update(cues []srt.Cue, style ass.Style, font FontSource) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardownLocked()

	if len(cues) == 0 {
		return
	}

	script := ass.Generate(cues, style)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.gen++
	m.state = StateInitializing

	m.wg.Add(1)
	go m.construct(ctx, m.gen, script, font)
}

// Close destroys any live or in-flight session and waits for construction
// goroutines to wind down. Idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	m.teardownLocked()
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Manager) teardownLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.renderer != nil {
		m.state = StateDestroying
		m.renderer.Destroy()
		m.renderer = nil
	}
	m.state = StateIdle
}

// construct runs the asynchronous part of a transition. Every suspension
// point is followed by a cancellation check; a superseded attempt releases
// whatever it opened and installs nothing.
func (m *Manager) construct(ctx context.Context, gen uint64, script string, font FontSource) {
	defer m.wg.Done()

	if !m.surface.MetadataReady() {
		select {
		case <-ctx.Done():
			return
		case <-m.surface.MetadataLoaded():
		}
	}
	if ctx.Err() != nil {
		return
	}

	opts := RendererOptions{
		Surface: m.surface,
		Script:  script,
	}
	if font != nil {
		data, err := font.Bytes(ctx)
		if err != nil {
			m.logger.Error().Err(err).Msg("reading overlay font failed")
			m.abandon(gen)
			return
		}
		if ctx.Err() != nil {
			return
		}
		opts.FontName = font.Name()
		opts.FontData = data
	}

	renderer, err := m.factory(ctx, opts)
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Error().Err(err).Msg("overlay renderer construction failed")
		}
		m.abandon(gen)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil || gen != m.gen {
		// A newer transition superseded this one while the renderer was
		// being built. Release it without installing.
		renderer.Destroy()
		return
	}

	m.renderer = renderer
	m.state = StateActive
}

func (m *Manager) abandon(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen && m.state == StateInitializing {
		m.state = StateIdle
	}
}
