package world

import "testing"

func TestPoolReusesReturnedChunks(t *testing.T) {
	pool := NewPool(16)

	first, fresh := pool.Get()
	if !fresh {
		t.Fatal("empty pool should allocate")
	}
	if cap(first.Positions) != 16 || cap(first.FaceUVs) != 16 {
		t.Fatalf("fresh chunk capacity %d/%d, want 16", cap(first.Positions), cap(first.FaceUVs))
	}

	pool.Put(first)
	if pool.Len() != 1 {
		t.Fatalf("pool length %d, want 1", pool.Len())
	}

	second, fresh := pool.Get()
	if fresh || second != first {
		t.Fatal("expected the returned chunk to be reused")
	}
	if pool.Allocated() != 1 {
		t.Fatalf("allocated %d, want 1", pool.Allocated())
	}
}

func TestPoolDrain(t *testing.T) {
	pool := NewPool(4)
	a, _ := pool.Get()
	b, _ := pool.Get()
	pool.Put(a)
	pool.Put(b)

	drained := pool.Drain()
	if len(drained) != 2 || pool.Len() != 0 {
		t.Fatalf("drained %d, left %d", len(drained), pool.Len())
	}
}
