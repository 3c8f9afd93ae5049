package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/terrain"
	"github.com/void-scape/voxl/internal/world"
)

// PositionStride is the number of float32 values stored per voxel position.
const PositionStride = 3

// FaceUVStride is the number of float32 values per voxel in the uv stream.
const FaceUVStride = 12

// HostUploader keeps uploaded position buffers in host memory, laid out the
// way an instance vertex buffer expects them.
type HostUploader struct {
	next    uint32
	buffers map[uint32][]float32
	uploads uint64
}

func NewHostUploader() *HostUploader {
	return &HostUploader{buffers: make(map[uint32][]float32)}
}

func (u *HostUploader) Upload(positions []mgl32.Vec3) world.InstanceBuffer {
	u.next++
	records := make([]float32, 0, len(positions)*PositionStride)
	for _, p := range positions {
		records = append(records, p[0], p[1], p[2])
	}
	u.buffers[u.next] = records
	u.uploads++
	return world.InstanceBuffer{ID: u.next, Instances: len(positions)}
}

func (u *HostUploader) Release(buf world.InstanceBuffer) {
	delete(u.buffers, buf.ID)
}

// Records returns the stored records of buf, or nil if it was released.
func (u *HostUploader) Records(buf world.InstanceBuffer) []float32 {
	return u.buffers[buf.ID]
}

// Live is the number of buffers currently held.
func (u *HostUploader) Live() int {
	return len(u.buffers)
}

// Uploads is the number of buffers ever created.
func (u *HostUploader) Uploads() uint64 {
	return u.uploads
}

// Bytes is the host memory held by live buffers.
func (u *HostUploader) Bytes() int {
	total := 0
	for _, records := range u.buffers {
		total += len(records) * 4
	}
	return total
}

// FaceUVRecords flattens per-voxel face uvs into the 12-float layout the
// color pass binds alongside the position buffer.
func FaceUVRecords(uvs []terrain.FaceUVs) []float32 {
	records := make([]float32, 0, len(uvs)*FaceUVStride)
	for _, faces := range uvs {
		for _, uv := range faces {
			records = append(records, uv[0], uv[1])
		}
	}
	return records
}
