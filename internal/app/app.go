package app

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/config"
	"github.com/void-scape/voxl/internal/input"
	"github.com/void-scape/voxl/internal/render"
	"github.com/void-scape/voxl/internal/terrain"
	"github.com/void-scape/voxl/internal/trace"
	"github.com/void-scape/voxl/internal/world"
)

// Layer slider bounds exposed by the parameter panel.
const (
	MinLayerValue = -100
	MaxLayerValue = 100
)

// NewLayer is the layer pushed by the panel's add button.
var NewLayer = terrain.Layer{Scale: 1, Weight: 1}

type Option func(*App)

// WithTrace records one entry per frame to w. The app closes w on Close.
func WithTrace(w *trace.Writer) Option {
	return func(a *App) {
		a.trace = w
	}
}

// App ties the camera, the chunk window and the renderer state together for
// one frame loop. All methods must be called from the loop's goroutine.
type App struct {
	cfg     *config.Config
	camera  *input.Camera
	manager *world.Manager
	render  *render.Context
	trace   *trace.Writer

	viewDistance uint
	frames       uint64
	last         *render.Frame
	quit         bool
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	extractor, err := terrain.NewExtractor(cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	rc := render.NewContext(cfg.Render)
	manager := world.NewManager(
		extractor,
		terrain.LayersFromConfig(cfg.Terrain.Layers),
		world.WithUploader(rc.Uploader),
		world.WithOcclusion(cfg.Terrain.Occlusion),
	)
	a := &App{
		cfg:          cfg,
		camera:       input.NewCamera(cfg.Camera),
		manager:      manager,
		render:       rc,
		viewDistance: uint(cfg.View.Distance),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Frame advances the camera by delta, updates the chunk window and hands the
// result to the renderer. The returned frame is valid until the next call.
func (a *App) Frame(delta time.Duration) (*render.Frame, error) {
	a.frames++
	a.camera.Update(float32(delta.Seconds()))
	observer := a.camera.Position()

	start := time.Now()
	a.manager.Update(a.viewDistance, observer)
	elapsed := time.Since(start)

	a.last = render.Handoff(a.render, a.manager, a.viewDistance)

	if a.trace != nil {
		stats := a.manager.Stats()
		center := world.ObserverChunk(observer, a.manager.ChunkSize())
		err := a.trace.Write(trace.Entry{
			Frame:        a.frames,
			Observer:     observer,
			Chunk:        [2]int64{center.X, center.Z},
			ViewDistance: a.viewDistance,
			Loaded:       stats.Loaded,
			Pooled:       stats.Pooled,
			Allocated:    stats.Allocated,
			FrameLoads:   stats.FrameLoads,
			FrameUnloads: stats.FrameUnloads,
			Voxels:       stats.Voxels,
			UpdateMicros: elapsed.Microseconds(),
		})
		if err != nil {
			return a.last, fmt.Errorf("write trace frame %d: %w", a.frames, err)
		}
	}
	return a.last, nil
}

// Handle routes an input event. F, V and Escape are handled here, everything
// else goes to the camera.
func (a *App) Handle(ev input.Event) {
	if key, ok := ev.(input.KeyEvent); ok && key.Pressed && !key.Repeat {
		switch key.Key {
		case input.KeyF:
			a.ToggleFog()
			return
		case input.KeyV:
			a.ToggleWireframe()
			return
		case input.KeyEscape:
			a.quit = true
			return
		}
	}
	a.camera.Handle(ev)
}

func (a *App) ToggleFog() bool {
	on := a.render.ToggleFog()
	log.Printf("fog %t", on)
	return on
}

func (a *App) ToggleWireframe() bool {
	on := a.render.ToggleWireframe()
	log.Printf("wireframe %t", on)
	return on
}

// SetViewDistance clamps d to [1, view.maxDistance] and resizes the window.
// Chunks still inside the new square are kept.
func (a *App) SetViewDistance(d int) uint {
	d = max(1, min(d, a.cfg.View.MaxDistance))
	if uint(d) == a.viewDistance {
		return a.viewDistance
	}
	a.viewDistance = uint(d)
	a.manager.Update(a.viewDistance, a.camera.Position())
	return a.viewDistance
}

// AddLayer pushes NewLayer onto the noise stack.
func (a *App) AddLayer() {
	a.manager.AddLayer(NewLayer)
}

// RemoveLayer pops the last noise layer.
func (a *App) RemoveLayer() bool {
	return a.manager.RemoveLayer()
}

// EditLayer sets layer i, clamping both values to the slider range.
func (a *App) EditLayer(i int, scale, weight float32) error {
	return a.manager.SetLayer(i, terrain.Layer{
		Scale:  mgl32.Clamp(scale, MinLayerValue, MaxLayerValue),
		Weight: mgl32.Clamp(weight, MinLayerValue, MaxLayerValue),
	})
}

func (a *App) Layers() []terrain.Layer {
	return a.manager.Layers()
}

func (a *App) ViewDistance() uint {
	return a.viewDistance
}

func (a *App) Camera() *input.Camera {
	return a.camera
}

func (a *App) Render() *render.Context {
	return a.render
}

func (a *App) Stats() world.Stats {
	return a.manager.Stats()
}

// LastFrame is the frame produced by the most recent Frame call.
func (a *App) LastFrame() *render.Frame {
	return a.last
}

func (a *App) Frames() uint64 {
	return a.frames
}

// Quit reports whether Escape was pressed.
func (a *App) Quit() bool {
	return a.quit
}

// Close releases chunk buffers and flushes the trace.
func (a *App) Close() error {
	a.manager.Close()
	if a.trace != nil {
		if err := a.trace.Close(); err != nil {
			return fmt.Errorf("close trace: %w", err)
		}
	}
	return nil
}
