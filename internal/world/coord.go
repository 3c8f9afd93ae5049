package world

import (
	"fmt"
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord identifies a chunk column in chunk space.
type ChunkCoord struct {
	X int64
	Z int64
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}

// Within reports whether c lies in the square of radius d around center.
func (c ChunkCoord) Within(center ChunkCoord, d int64) bool {
	return c.X >= center.X-d && c.X <= center.X+d &&
		c.Z >= center.Z-d && c.Z <= center.Z+d
}

// ObserverChunk converts a camera translation to the chunk under the observer.
// The translation is stored negated relative to world displacement, so it is
// flipped before dividing; the quotient is truncated toward zero.
func ObserverChunk(translation mgl32.Vec3, chunkSize int) ChunkCoord {
	size := float32(chunkSize)
	return ChunkCoord{
		X: int64(-translation[0] / size),
		Z: int64(-translation[2] / size),
	}
}

// Window yields the square of radius d around center, z outer and x inner, both ascending.
func Window(center ChunkCoord, d int64) iter.Seq[ChunkCoord] {
	return func(yield func(ChunkCoord) bool) {
		for z := center.Z - d; z <= center.Z+d; z++ {
			for x := center.X - d; x <= center.X+d; x++ {
				if !yield(ChunkCoord{X: x, Z: z}) {
					return
				}
			}
		}
	}
}
