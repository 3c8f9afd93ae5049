package render

import (
	"testing"

	"github.com/void-scape/voxl/internal/config"
)

func TestParamsFogPlanes(t *testing.T) {
	tests := []struct {
		name     string
		fog      bool
		distance uint
		wantNear float32
		wantFar  float32
	}{
		{name: "fog on", fog: true, distance: 12, wantNear: 160, wantFar: 192},
		{name: "fog off", fog: false, distance: 12, wantNear: 1920, wantFar: 1920},
		{name: "fog on small window", fog: true, distance: 1, wantNear: 0, wantFar: 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(config.Default().Render)
			ctx.Fog = tt.fog
			params := ctx.Params(tt.distance, 16)
			if params.FogNear != tt.wantNear || params.FogFar != tt.wantFar {
				t.Fatalf("fog planes %f/%f, want %f/%f", params.FogNear, params.FogFar, tt.wantNear, tt.wantFar)
			}
		})
	}
}

func TestNewContextLighting(t *testing.T) {
	ctx := NewContext(config.Default().Render)
	if ctx.Lighting.Source[1] != 50 || ctx.Lighting.Source[2] != -120 {
		t.Fatalf("unexpected light source %v", ctx.Lighting.Source)
	}
	if ctx.Lighting.AmbientBrightness != 0.4 {
		t.Fatalf("ambient %f, want 0.4", ctx.Lighting.AmbientBrightness)
	}
	if ctx.Uploader == nil {
		t.Fatal("context should own an uploader")
	}
}

func TestToggles(t *testing.T) {
	ctx := NewContext(config.Default().Render)
	if !ctx.ToggleFog() || ctx.ToggleFog() {
		t.Fatal("fog toggle did not flip")
	}
	if !ctx.ToggleWireframe() || !ctx.Params(1, 16).Wireframe {
		t.Fatal("wireframe toggle not reflected in params")
	}

	ctx.Resize(0, 10)
	if ctx.Width != 1280 {
		t.Fatalf("invalid resize applied: %dx%d", ctx.Width, ctx.Height)
	}
	ctx.Resize(640, 480)
	if p := ctx.Params(1, 16); p.Width != 640 || p.Height != 480 {
		t.Fatalf("params viewport %dx%d", p.Width, p.Height)
	}
}
