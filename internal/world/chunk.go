package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/terrain"
)

// Chunk holds the surface voxels of one chunk and the buffer they were published in.
// Positions and FaceUVs are parallel.
type Chunk struct {
	Coord     ChunkCoord
	Positions []mgl32.Vec3
	FaceUVs   []terrain.FaceUVs
	Buffer    InstanceBuffer
}

func newChunk(columns int) *Chunk {
	return &Chunk{
		Positions: make([]mgl32.Vec3, 0, columns),
		FaceUVs:   make([]terrain.FaceUVs, 0, columns),
	}
}

// Voxels returns the number of voxels left after culling.
func (c *Chunk) Voxels() int {
	return len(c.Positions)
}
