package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/config"
)

// Lighting is the directional light shared by the shadow and color passes.
type Lighting struct {
	Source            mgl32.Vec3
	Color             mgl32.Vec3
	AmbientBrightness float32
}

// Context is the renderer state owned by the frame loop. It is passed by
// reference to whoever needs it.
type Context struct {
	Width     int
	Height    int
	Fog       bool
	Wireframe bool
	Lighting  Lighting
	Uploader  *HostUploader
}

func NewContext(cfg config.RenderConfig) *Context {
	return &Context{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Fog:       cfg.Fog,
		Wireframe: cfg.Wireframe,
		Lighting: Lighting{
			Source:            mgl32.Vec3(cfg.LightSource),
			Color:             mgl32.Vec3(cfg.LightColor),
			AmbientBrightness: cfg.AmbientBrightness,
		},
		Uploader: NewHostUploader(),
	}
}

func (c *Context) ToggleFog() bool {
	c.Fog = !c.Fog
	return c.Fog
}

func (c *Context) ToggleWireframe() bool {
	c.Wireframe = !c.Wireframe
	return c.Wireframe
}

// Resize records a new viewport. Non-positive dimensions are ignored.
func (c *Context) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width = width
	c.Height = height
}

// FrameParams are the per-frame uniforms derived from the context.
type FrameParams struct {
	Width     int
	Height    int
	Wireframe bool
	Lighting  Lighting
	FogNear   float32
	FogFar    float32
}

// Params computes the frame uniforms for a window of viewDistance chunks.
// With fog on it fades over the last two chunks of the window; with fog off
// both planes are pushed well past the loaded terrain.
func (c *Context) Params(viewDistance uint, chunkSize int) FrameParams {
	extent := float32(viewDistance) * float32(chunkSize)
	near, far := extent*10, extent*10
	if c.Fog {
		near = extent - 2*float32(chunkSize)
		if near < 0 {
			near = 0
		}
		far = extent
	}
	return FrameParams{
		Width:     c.Width,
		Height:    c.Height,
		Wireframe: c.Wireframe,
		Lighting:  c.Lighting,
		FogNear:   near,
		FogFar:    far,
	}
}
