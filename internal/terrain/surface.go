package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/config"
)

const (
	DefaultChunkSize      = 16
	DefaultTerrainScale   = 200
	DefaultBaselineOffset = 80
)

// FaceUVs holds the atlas offset of each cube face, one UV pair per face.
type FaceUVs [6]mgl32.Vec2

// DefaultFaceUVs is the atlas entry assigned to every generated voxel.
var DefaultFaceUVs = FaceUVs{{0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 1}}

// Extractor turns the height field into one surface voxel per column of a chunk.
type Extractor struct {
	Primitive      Primitive
	ChunkSize      int
	TerrainScale   float32
	BaselineOffset float32
}

// NewExtractor builds an extractor from the terrain configuration.
func NewExtractor(cfg config.TerrainConfig) (Extractor, error) {
	prim, err := PrimitiveByName(cfg.Primitive, cfg.Seed)
	if err != nil {
		return Extractor{}, err
	}
	return Extractor{
		Primitive:      prim,
		ChunkSize:      cfg.ChunkSize,
		TerrainScale:   cfg.TerrainScale,
		BaselineOffset: cfg.BaselineOffset,
	}, nil
}

// Columns is the number of voxels Extract emits per chunk.
func (e Extractor) Columns() int {
	return e.ChunkSize * e.ChunkSize
}

// Extract writes the surface voxels of chunk (cx, cz) into positions and uvs,
// reusing their backing storage. Columns are emitted z-major.
func (e Extractor) Extract(cx, cz int64, layers []Layer, positions []mgl32.Vec3, uvs []FaceUVs) ([]mgl32.Vec3, []FaceUVs) {
	prim := e.Primitive
	if prim == nil {
		prim = Gradient
	}
	positions = positions[:0]
	uvs = uvs[:0]

	size := float32(e.ChunkSize)
	xoffset := float32(cx) * size
	zoffset := float32(cz) * size
	for lz := 0; lz < e.ChunkSize; lz++ {
		for lx := 0; lx < e.ChunkSize; lx++ {
			x := float32(lx) + xoffset
			z := float32(lz) + zoffset
			uv := mgl32.Vec2{x / e.TerrainScale, z / e.TerrainScale}
			height := SurfaceHeight(SampleWith(prim, uv, layers), e.BaselineOffset)

			positions = append(positions, mgl32.Vec3{x, height, z})
			uvs = append(uvs, DefaultFaceUVs)
		}
	}
	return positions, uvs
}
