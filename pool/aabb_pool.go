package pool

import "github.com/achilleasa/aabboctree/kernel"

// AABBPool is a fixed-capacity store of 6-float32 AABB records
// (minX, minY, minZ, maxX, maxY, maxZ). New slots are handed out by bump
// allocation; released slots are pushed onto a LIFO free-list and are
// preferred by Allocate over advancing the bump counter.
//
// The backing buffer can be supplied by the caller (NewAABBPoolShared), in
// which case it is legitimate to alias the same []float32 from another
// AABBPool or from a sweep.Worker running on a different goroutine, as long
// as only one side writes to it at a time. The pool itself never touches anything outside buf and its own
// free-list.
type AABBPool struct {
	buf      []float32
	capacity int
	bump     int
	free     []int32
}

// NewAABBPool allocates a private buffer of the given capacity.
func NewAABBPool(capacity int) *AABBPool {
	return &AABBPool{
		buf:      make([]float32, capacity*kernel.AABBStride),
		capacity: capacity,
	}
}

// NewAABBPoolShared constructs an AABBPool backed by buf, which must have
// room for at least capacity records. buf is not copied; a second pool
// constructed over the same slice sees the same records but keeps its own,
// independent Size/free-list bookkeeping, so the two pools should not both
// be used to allocate new records unless that is coordinated by the caller.
func NewAABBPoolShared(buf []float32, capacity int) (*AABBPool, error) {
	if len(buf) < capacity*kernel.AABBStride {
		return nil, ErrCapacityExceeded
	}
	return &AABBPool{
		buf:      buf,
		capacity: capacity,
	}, nil
}

// Allocate returns the index of a new or recycled AABB record. It prefers
// the most-recently-released slot; if none is available it bump-allocates
// the next slot up to capacity.
func (p *AABBPool) Allocate() (int, error) {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return int(idx), nil
	}
	if p.bump >= p.capacity {
		return 0, ErrCapacityExceeded
	}
	idx := p.bump
	p.bump++
	return idx, nil
}

// Set writes the six AABB components for index i.
func (p *AABBPool) Set(i int, minX, minY, minZ, maxX, maxY, maxZ float32) {
	off := i * kernel.AABBStride
	p.buf[off+kernel.OffMinX] = minX
	p.buf[off+kernel.OffMinY] = minY
	p.buf[off+kernel.OffMinZ] = minZ
	p.buf[off+kernel.OffMaxX] = maxX
	p.buf[off+kernel.OffMaxY] = maxY
	p.buf[off+kernel.OffMaxZ] = maxZ
}

// Get returns the component (0=minX..5=maxZ) of AABB record i.
func (p *AABBPool) Get(i, component int) float32 {
	return p.buf[i*kernel.AABBStride+component]
}

// Offset returns the float32 offset of AABB record i within the backing
// buffer, for callers that want to hand the buffer + offset directly to a
// kernel function.
func (p *AABBPool) Offset(i int) int {
	return i * kernel.AABBStride
}

// Buffer exposes the backing buffer so octree and kernel code can operate
// on it directly without copying records in and out.
func (p *AABBPool) Buffer() []float32 {
	return p.buf
}

// Release returns slot i to the free-list for reuse by a later Allocate. It
// fails with ErrInvalidIndex if i is out of range, and with ErrOverflow if
// the free-list already holds capacity entries (double-release).
func (p *AABBPool) Release(i int) error {
	if i < 0 || i >= p.capacity {
		return ErrInvalidIndex
	}
	if len(p.free) >= p.capacity {
		return ErrOverflow
	}
	p.free = append(p.free, int32(i))
	return nil
}

// Size returns the number of distinct indices ever bump-allocated since
// construction or the last Reset. It is unaffected by Release: this is the
// pinned contract (see SPEC_FULL.md §9). Callers that want a true live count
// should use LiveCount.
func (p *AABBPool) Size() int {
	return p.bump
}

// LiveCount returns the number of currently-allocated (not released)
// records.
func (p *AABBPool) LiveCount() int {
	return p.bump - len(p.free)
}

// Reset returns every slot to the unallocated state and empties the
// free-list.
func (p *AABBPool) Reset() {
	p.bump = 0
	p.free = p.free[:0]
}

// Capacity returns the pool's fixed capacity.
func (p *AABBPool) Capacity() int {
	return p.capacity
}
