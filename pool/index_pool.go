package pool

// IndexPool is a fixed-capacity LIFO free-list over the integer range
// [0, capacity). It has no buffer of its own to manage; it is pure
// bookkeeping. AABBPool does not use it: that pool keeps its own free-list.
//
// An IndexPool is constructed full: every index is available until Acquire
// is called. Every operation is O(1) and allocation-free after construction.
type IndexPool struct {
	capacity int
	free     []int32
}

// NewIndexPool returns an IndexPool holding every index in [0, capacity).
func NewIndexPool(capacity int) *IndexPool {
	free := make([]int32, capacity)
	for i := range free {
		free[i] = int32(capacity - 1 - i)
	}
	return &IndexPool{capacity: capacity, free: free}
}

// Acquire pops the most-recently-released index (or, for a fresh pool, the
// lowest-numbered one first). ok is false when the pool is empty.
func (p *IndexPool) Acquire() (index int, ok bool) {
	n := len(p.free)
	if n == 0 {
		return 0, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	return int(idx), true
}

// Release pushes i back onto the free-list. It fails with ErrInvalidIndex
// if i falls outside the pool's capacity, or with ErrOverflow if the
// free-list is already holding its full capacity worth of indices, which
// can only happen from a double-release.
func (p *IndexPool) Release(i int) error {
	if i < 0 || i >= p.capacity {
		return ErrInvalidIndex
	}
	if len(p.free) >= p.capacity {
		return ErrOverflow
	}
	p.free = append(p.free, int32(i))
	return nil
}

// Len returns the number of indices currently available for Acquire.
func (p *IndexPool) Len() int {
	return len(p.free)
}

// Capacity returns the pool's fixed capacity.
func (p *IndexPool) Capacity() int {
	return p.capacity
}
