package render

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/terrain"
	"github.com/void-scape/voxl/internal/world"
)

// Source is the loaded chunk set the renderer draws from.
type Source interface {
	LoadedCoords() []world.ChunkCoord
	Chunk(coord world.ChunkCoord) (*world.Chunk, bool)
	ChunkSize() int
}

// Frame is the render-ready view of one frame. It references chunk storage
// directly and is only valid until the next window update.
type Frame struct {
	Params FrameParams
	chunks []*world.Chunk
}

// Handoff collects the loaded chunks for drawing. It must run after the
// window update of the same frame.
func Handoff(ctx *Context, src Source, viewDistance uint) *Frame {
	coords := src.LoadedCoords()
	frame := &Frame{
		Params: ctx.Params(viewDistance, src.ChunkSize()),
		chunks: make([]*world.Chunk, 0, len(coords)),
	}
	for _, coord := range coords {
		if chunk, ok := src.Chunk(coord); ok {
			frame.chunks = append(frame.chunks, chunk)
		}
	}
	return frame
}

// ShadowPass yields the position buffer of every loaded chunk.
func (f *Frame) ShadowPass() iter.Seq[world.InstanceBuffer] {
	return func(yield func(world.InstanceBuffer) bool) {
		for _, chunk := range f.chunks {
			if !yield(chunk.Buffer) {
				return
			}
		}
	}
}

// ColorPass yields each chunk's position buffer with its face uvs.
func (f *Frame) ColorPass() iter.Seq2[world.InstanceBuffer, []terrain.FaceUVs] {
	return func(yield func(world.InstanceBuffer, []terrain.FaceUVs) bool) {
		for _, chunk := range f.chunks {
			if !yield(chunk.Buffer, chunk.FaceUVs) {
				return
			}
		}
	}
}

// Positions yields every voxel position in the frame.
func (f *Frame) Positions() iter.Seq[mgl32.Vec3] {
	return func(yield func(mgl32.Vec3) bool) {
		for _, chunk := range f.chunks {
			for _, p := range chunk.Positions {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Chunks is the number of chunks in the frame.
func (f *Frame) Chunks() int {
	return len(f.chunks)
}

// Instances is the number of voxel instances drawn per pass.
func (f *Frame) Instances() int {
	total := 0
	for _, chunk := range f.chunks {
		total += chunk.Buffer.Instances
	}
	return total
}
