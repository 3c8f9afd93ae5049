package world

import "github.com/go-gl/mathgl/mgl32"

// InstanceBuffer is an opaque handle to an uploaded position buffer. The zero
// value refers to no buffer.
type InstanceBuffer struct {
	ID        uint32
	Instances int
}

// Valid reports whether the handle refers to an uploaded buffer.
func (b InstanceBuffer) Valid() bool {
	return b.ID != 0
}

// Uploader publishes chunk positions to renderer-owned storage. Uploads are
// synchronous: the handle is usable as soon as Upload returns.
type Uploader interface {
	Upload(positions []mgl32.Vec3) InstanceBuffer
	Release(buf InstanceBuffer)
}

// handleUploader hands out ids without keeping any data. It is used when the
// manager runs without a renderer.
type handleUploader struct {
	next uint32
}

func (u *handleUploader) Upload(positions []mgl32.Vec3) InstanceBuffer {
	u.next++
	return InstanceBuffer{ID: u.next, Instances: len(positions)}
}

func (u *handleUploader) Release(InstanceBuffer) {}
