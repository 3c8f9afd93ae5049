package world

import (
	"fmt"
	"iter"
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/terrain"
)

// Stats is a snapshot of the manager's bookkeeping.
type Stats struct {
	Loaded    int
	Pooled    int
	Allocated int
	Voxels    int

	// Totals since creation.
	Loads   uint64
	Unloads uint64

	// Work done by the most recent Update.
	FrameLoads   int
	FrameUnloads int
}

type Option func(*Manager)

// WithUploader publishes chunk positions through u instead of bare handles.
func WithUploader(u Uploader) Option {
	return func(m *Manager) {
		if u != nil {
			m.uploader = u
		}
	}
}

// WithOcclusion toggles the occlusion filter on load.
func WithOcclusion(enabled bool) Option {
	return func(m *Manager) {
		m.occlusion = enabled
	}
}

// Manager keeps the square window of chunks around the observer loaded. It is
// driven from a single frame loop and does no locking.
type Manager struct {
	extractor terrain.Extractor
	layers    []terrain.Layer
	occlusion bool
	uploader  Uploader

	loaded map[ChunkCoord]*Chunk
	pool   *Pool

	loads        uint64
	unloads      uint64
	frameLoads   int
	frameUnloads int

	observed     bool
	viewDistance uint
	observer     mgl32.Vec3
}

func NewManager(extractor terrain.Extractor, layers []terrain.Layer, opts ...Option) *Manager {
	m := &Manager{
		extractor: extractor,
		layers:    append([]terrain.Layer(nil), layers...),
		occlusion: true,
		uploader:  &handleUploader{},
		loaded:    make(map[ChunkCoord]*Chunk),
		pool:      NewPool(extractor.Columns()),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Update recomputes the window around observer. Chunks that left the square
// go back to the pool; every missing coordinate is generated. Calling it again
// with the same inputs does nothing.
func (m *Manager) Update(viewDistance uint, observer mgl32.Vec3) {
	m.observed = true
	m.viewDistance = viewDistance
	m.observer = observer
	m.frameLoads = 0
	m.frameUnloads = 0

	center := ObserverChunk(observer, m.extractor.ChunkSize)
	d := int64(viewDistance)

	for coord, chunk := range m.loaded {
		if coord.Within(center, d) {
			continue
		}
		delete(m.loaded, coord)
		m.pool.Put(chunk)
		m.unloads++
		m.frameUnloads++
	}

	for coord := range Window(center, d) {
		if _, ok := m.loaded[coord]; !ok {
			m.load(coord)
		}
	}

	if m.frameLoads > 0 || m.frameUnloads > 0 {
		log.Printf("window %v radius %d: loaded %d, unloaded %d, pooled %d", center, d, m.frameLoads, m.frameUnloads, m.pool.Len())
	}
}

func (m *Manager) load(coord ChunkCoord) {
	chunk, _ := m.pool.Get()

	chunk.Positions, chunk.FaceUVs = m.extractor.Extract(coord.X, coord.Z, m.layers, chunk.Positions, chunk.FaceUVs)
	if m.occlusion {
		chunk.Positions, chunk.FaceUVs = terrain.Cull(chunk.Positions, chunk.FaceUVs)
	}

	if chunk.Buffer.Valid() {
		m.uploader.Release(chunk.Buffer)
	}
	chunk.Buffer = m.uploader.Upload(chunk.Positions)
	chunk.Coord = coord

	m.insert(coord, chunk)
	m.loads++
	m.frameLoads++
}

func (m *Manager) insert(coord ChunkCoord, chunk *Chunk) {
	if _, exists := m.loaded[coord]; exists {
		panic(fmt.Sprintf("world: chunk %v loaded twice", coord))
	}
	m.loaded[coord] = chunk
}

// Clear returns every loaded chunk to the pool without recomputing the window.
func (m *Manager) Clear() {
	for coord, chunk := range m.loaded {
		delete(m.loaded, coord)
		m.pool.Put(chunk)
		m.unloads++
	}
}

// regenerate drops the window and rebuilds it at the last observed position.
func (m *Manager) regenerate() {
	count := len(m.loaded)
	m.Clear()
	if !m.observed {
		return
	}
	log.Printf("noise layers changed: regenerating %d chunks", count)
	m.Update(m.viewDistance, m.observer)
}

// Layers returns a copy of the active noise layers.
func (m *Manager) Layers() []terrain.Layer {
	return append([]terrain.Layer(nil), m.layers...)
}

// AddLayer appends a layer and regenerates the window.
func (m *Manager) AddLayer(layer terrain.Layer) {
	m.layers = append(m.layers, layer)
	m.regenerate()
}

// RemoveLayer drops the last layer and regenerates the window. It reports
// false when there was no layer to remove.
func (m *Manager) RemoveLayer() bool {
	if len(m.layers) == 0 {
		return false
	}
	m.layers = m.layers[:len(m.layers)-1]
	m.regenerate()
	return true
}

// SetLayer replaces layer i and regenerates the window.
func (m *Manager) SetLayer(i int, layer terrain.Layer) error {
	if i < 0 || i >= len(m.layers) {
		return fmt.Errorf("noise layer %d out of range [0, %d)", i, len(m.layers))
	}
	if m.layers[i] == layer {
		return nil
	}
	m.layers[i] = layer
	m.regenerate()
	return nil
}

// SetLayers replaces every layer and regenerates the window.
func (m *Manager) SetLayers(layers []terrain.Layer) {
	m.layers = append(m.layers[:0], layers...)
	m.regenerate()
}

// Chunk returns the loaded chunk at coord.
func (m *Manager) Chunk(coord ChunkCoord) (*Chunk, bool) {
	chunk, ok := m.loaded[coord]
	return chunk, ok
}

// Chunks yields every loaded chunk in no particular order.
func (m *Manager) Chunks() iter.Seq2[ChunkCoord, *Chunk] {
	return func(yield func(ChunkCoord, *Chunk) bool) {
		for coord, chunk := range m.loaded {
			if !yield(coord, chunk) {
				return
			}
		}
	}
}

// LoadedCoords returns the loaded coordinates sorted by x, then z.
func (m *Manager) LoadedCoords() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(m.loaded))
	for coord := range m.loaded {
		coords = append(coords, coord)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Z < coords[j].Z
	})
	return coords
}

func (m *Manager) ChunkSize() int {
	return m.extractor.ChunkSize
}

func (m *Manager) Stats() Stats {
	voxels := 0
	for _, chunk := range m.loaded {
		voxels += chunk.Voxels()
	}
	return Stats{
		Loaded:       len(m.loaded),
		Pooled:       m.pool.Len(),
		Allocated:    m.pool.Allocated(),
		Voxels:       voxels,
		Loads:        m.loads,
		Unloads:      m.unloads,
		FrameLoads:   m.frameLoads,
		FrameUnloads: m.frameUnloads,
	}
}

// Close releases every buffer, loaded or pooled. The manager is empty afterwards.
func (m *Manager) Close() {
	released := 0
	for coord, chunk := range m.loaded {
		delete(m.loaded, coord)
		if chunk.Buffer.Valid() {
			m.uploader.Release(chunk.Buffer)
			released++
		}
	}
	for _, chunk := range m.pool.Drain() {
		if chunk.Buffer.Valid() {
			m.uploader.Release(chunk.Buffer)
			released++
		}
	}
	log.Printf("chunk manager closed: released %d buffers", released)
}
