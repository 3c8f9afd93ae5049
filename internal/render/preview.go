package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

const (
	previewPixelsPerVoxel = 2
	previewMaxPixels      = 4096
)

var (
	previewBackground = color.NRGBA{R: 10, G: 10, B: 18, A: 255}
	previewLow        = color.NRGBA{R: 32, G: 84, B: 40, A: 255}
	previewMid        = color.NRGBA{R: 118, G: 98, B: 62, A: 255}
	previewHigh       = color.NRGBA{R: 236, G: 236, B: 240, A: 255}
)

// SavePreview writes a top-down heightmap of the frame to path as PNG. Each
// voxel becomes a square shaded by its height relative to the frame's range.
func SavePreview(frame *Frame, path string) error {
	if frame == nil {
		return fmt.Errorf("frame is nil")
	}

	minX, minZ := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxZ := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	minY, maxY := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	count := 0
	for p := range frame.Positions() {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
		minZ, maxZ = min(minZ, p[2]), max(maxZ, p[2])
		count++
	}

	var img *image.NRGBA
	if count == 0 {
		img = image.NewNRGBA(image.Rect(0, 0, previewPixelsPerVoxel, previewPixelsPerVoxel))
		draw.Draw(img, img.Bounds(), &image.Uniform{previewBackground}, image.Point{}, draw.Src)
	} else {
		width := (int(maxX-minX) + 1) * previewPixelsPerVoxel
		height := (int(maxZ-minZ) + 1) * previewPixelsPerVoxel
		if width > previewMaxPixels || height > previewMaxPixels {
			return fmt.Errorf("preview too large: %dx%d", width, height)
		}
		img = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(img, img.Bounds(), &image.Uniform{previewBackground}, image.Point{}, draw.Src)

		span := maxY - minY
		for p := range frame.Positions() {
			t := float32(0.5)
			if span > 0 {
				t = (p[1] - minY) / span
			}
			px := int(p[0]-minX) * previewPixelsPerVoxel
			pz := int(p[2]-minZ) * previewPixelsPerVoxel
			rect := image.Rect(px, pz, px+previewPixelsPerVoxel, pz+previewPixelsPerVoxel)
			draw.Draw(img, rect, &image.Uniform{heightColor(t)}, image.Point{}, draw.Src)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

// heightColor maps t in [0, 1] from lowland green through rock to snow.
func heightColor(t float32) color.NRGBA {
	if t < 0.5 {
		return mix(previewLow, previewMid, t*2)
	}
	return mix(previewMid, previewHigh, (t-0.5)*2)
}

func mix(a, b color.NRGBA, t float32) color.NRGBA {
	channel := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(float32(x) + (float32(y)-float32(x))*t)))
	}
	return color.NRGBA{R: channel(a.R, b.R), G: channel(a.G, b.G), B: channel(a.B, b.B), A: 255}
}
