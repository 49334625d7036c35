package pool

import "testing"

func TestIndexPoolAcquireRelease(t *testing.T) {
	p := NewIndexPool(3)

	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		idx, ok := p.Acquire()
		if !ok {
			t.Fatalf("expected Acquire to succeed on iteration %d", i)
		}
		seen[idx] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct indices; got %v", seen)
	}

	if _, ok := p.Acquire(); ok {
		t.Fatal("expected pool to be empty")
	}

	if err := p.Release(1); err != nil {
		t.Fatalf("unexpected error releasing: %v", err)
	}
	idx, ok := p.Acquire()
	if !ok || idx != 1 {
		t.Fatalf("expected LIFO reuse of index 1; got %d, ok=%v", idx, ok)
	}
}

func TestIndexPoolInvalidRelease(t *testing.T) {
	p := NewIndexPool(2)
	if err := p.Release(5); err != ErrInvalidIndex {
		t.Fatalf("expected ErrInvalidIndex; got %v", err)
	}

	// The pool starts full, so drain it via Acquire first to make room.
	// Releasing 0 twice is accepted; the excess shows up as ErrOverflow once
	// the free-list already holds capacity entries.
	p.Acquire()
	p.Acquire()
	if err := p.Release(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Release(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Release(1); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow on double/excess release; got %v", err)
	}
}

func TestAABBPoolLIFOReuseAndReset(t *testing.T) {
	p := NewAABBPool(4)

	var ids []int
	for i := 0; i < 4; i++ {
		idx, err := p.Allocate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, idx)
	}
	if _, err := p.Allocate(); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded; got %v", err)
	}

	if err := p.Release(ids[2]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	j, err := p.Allocate()
	if err != nil || j != ids[2] {
		t.Fatalf("expected LIFO reuse of %d; got %d, err=%v", ids[2], j, err)
	}

	if p.Size() != 4 {
		t.Fatalf("expected Size to remain the bump count (4); got %d", p.Size())
	}

	p.Reset()
	if p.Size() != 0 {
		t.Fatalf("expected Size 0 after reset; got %d", p.Size())
	}
	idx, err := p.Allocate()
	if err != nil || idx != 0 {
		t.Fatalf("expected first post-reset allocation to be 0; got %d, err=%v", idx, err)
	}
}

func TestAABBPoolSetGet(t *testing.T) {
	p := NewAABBPool(1)
	idx, _ := p.Allocate()
	p.Set(idx, 1, 2, 3, 4, 5, 6)

	want := []float32{1, 2, 3, 4, 5, 6}
	for c, w := range want {
		if got := p.Get(idx, c); got != w {
			t.Fatalf("component %d: expected %v; got %v", c, w, got)
		}
	}
}

func TestAABBPoolShared(t *testing.T) {
	buf := make([]float32, 2*6)
	a, err := NewAABBPoolShared(buf, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx, _ := a.Allocate()
	a.Set(idx, 1, 1, 1, 2, 2, 2)

	b, err := NewAABBPoolShared(buf, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Get(idx, 0) != 1 {
		t.Fatalf("expected second pool to see data written by the first via the shared buffer")
	}
	if b.Size() != 0 {
		t.Fatalf("expected independent Size counters; got %d", b.Size())
	}

	if _, err := NewAABBPoolShared(buf, 100); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded for undersized buffer; got %v", err)
	}
}

func TestNodePoolLifecycle(t *testing.T) {
	p := NewNodePool(16, 2)

	root, err := p.Allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.GetFirstChild(root) != NoChild {
		t.Fatal("expected fresh node to be a leaf")
	}
	if p.GetParent(root) != NoParent {
		t.Fatal("expected fresh node to have no parent")
	}
	if p.GetObjectCount(root) != 0 {
		t.Fatal("expected fresh node to have no objects")
	}

	p.SetAABB(root, -1, -1, -1, 1, 1, 1)
	minX, _, _, maxX, _, _ := p.GetAABB(root)
	if minX != -1 || maxX != 1 {
		t.Fatalf("AABB round-trip mismatch: min=%v max=%v", minX, maxX)
	}

	if err := p.AddObject(root, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.AddObject(root, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.AddObject(root, 9); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded once K=2 objects are stored; got %v", err)
	}

	if !p.RemoveObject(root, 7) {
		t.Fatal("expected RemoveObject to find object 7")
	}
	if p.GetObjectCount(root) != 1 {
		t.Fatalf("expected 1 object remaining; got %d", p.GetObjectCount(root))
	}
	if p.GetObject(root, 0) != 8 {
		t.Fatalf("expected swap-with-last to leave object 8 at slot 0; got %d", p.GetObject(root, 0))
	}

	if p.RemoveObject(root, 42) {
		t.Fatal("expected RemoveObject to report absence for unknown object")
	}

	p.ClearObjects(root)
	if p.GetObjectCount(root) != 0 {
		t.Fatal("expected ClearObjects to zero the count")
	}
}

func TestNodePoolContiguousChildAllocation(t *testing.T) {
	p := NewNodePool(9, 8)
	root, _ := p.Allocate()

	first := -1
	for i := 0; i < 8; i++ {
		idx, err := p.Allocate()
		if err != nil {
			t.Fatalf("unexpected error allocating child %d: %v", i, err)
		}
		if i == 0 {
			first = idx
		} else if idx != first+i {
			t.Fatalf("expected contiguous bump allocation; child %d got index %d, want %d", i, idx, first+i)
		}
	}

	if _, err := p.Allocate(); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded once pool is exhausted; got %v", err)
	}
	_ = root
}
