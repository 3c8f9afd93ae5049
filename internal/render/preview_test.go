package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/void-scape/voxl/internal/config"
)

func TestSavePreviewWritesHeightmap(t *testing.T) {
	ctx := NewContext(config.Default().Render)
	m := loadedManager(t, ctx, 1)
	frame := Handoff(ctx, m, 1)

	path := filepath.Join(t.TempDir(), "preview", "frame.png")
	if err := SavePreview(frame, path); err != nil {
		t.Fatalf("SavePreview: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open preview: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}

	side := 3 * 16 * previewPixelsPerVoxel
	if b := img.Bounds(); b.Dx() != side || b.Dy() != side {
		t.Fatalf("preview is %dx%d, want %dx%d", b.Dx(), b.Dy(), side, side)
	}

	r, g, b, _ := img.At(side/2, side/2).RGBA()
	bgR, bgG, bgB, _ := previewBackground.RGBA()
	if r == bgR && g == bgG && b == bgB {
		t.Fatal("center of the preview is background")
	}
}

func TestSavePreviewEmptyFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := SavePreview(&Frame{}, path); err != nil {
		t.Fatalf("SavePreview: %v", err)
	}
	if err := SavePreview(nil, path); err == nil {
		t.Fatal("expected nil frame to fail")
	}
}

func TestHeightColorEndpoints(t *testing.T) {
	if heightColor(0) != previewLow || heightColor(1) != previewHigh {
		t.Fatal("height ramp endpoints do not match the palette")
	}
}
