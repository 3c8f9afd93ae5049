package world

// Pool is the free list of chunk storage. Chunks are only allocated when the
// list is empty at the moment one is needed.
type Pool struct {
	free      []*Chunk
	columns   int
	allocated int
}

func NewPool(columns int) *Pool {
	return &Pool{columns: columns}
}

// Get pops a pooled chunk or allocates one sized for a column per voxel.
// fresh reports an allocation.
func (p *Pool) Get() (chunk *Chunk, fresh bool) {
	if n := len(p.free); n > 0 {
		chunk = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return chunk, false
	}
	p.allocated++
	return newChunk(p.columns), true
}

// Put returns a chunk to the list with its contents intact.
func (p *Pool) Put(chunk *Chunk) {
	p.free = append(p.free, chunk)
}

func (p *Pool) Len() int {
	return len(p.free)
}

// Allocated is the number of chunks ever created by this pool.
func (p *Pool) Allocated() int {
	return p.allocated
}

// Drain empties the list and returns what it held.
func (p *Pool) Drain() []*Chunk {
	free := p.free
	p.free = nil
	return free
}
