package pool

import "github.com/achilleasa/aabboctree/kernel"

// Sentinel values used throughout the node record.
const (
	NoChild  = -1
	NoParent = -1
)

// Field offsets within a node record, relative to the record's base offset.
// The record layout is: 6 floats of AABB, then firstChild, parent,
// objectCount, then K inline object-index slots.
const (
	fieldFirstChild  = 6
	fieldParent      = 7
	fieldObjCount    = 8
	fieldObjectsBase = 9
)

// NodePool is a fixed-capacity bump allocator over fixed-stride octree node
// records. Nodes are never individually freed; the only way to reclaim node
// memory is a full Reset, matching the reference codebase's policy of never
// recycling BVH nodes mid-build.
type NodePool struct {
	buf      []float32
	k        int
	stride   int
	capacity int
	bump     int
}

// NewNodePool allocates a private buffer sized for capacity nodes, each
// holding up to k inline object indices.
func NewNodePool(capacity, k int) *NodePool {
	stride := kernel.AABBStride + 3 + k
	return &NodePool{
		buf:      make([]float32, capacity*stride),
		k:        k,
		stride:   stride,
		capacity: capacity,
	}
}

// NewNodePoolShared constructs a NodePool backed by buf, which must have
// room for at least capacity nodes of stride (9+k) floats.
func NewNodePoolShared(buf []float32, capacity, k int) (*NodePool, error) {
	stride := kernel.AABBStride + 3 + k
	if len(buf) < capacity*stride {
		return nil, ErrCapacityExceeded
	}
	return &NodePool{buf: buf, k: k, stride: stride, capacity: capacity}, nil
}

// K returns the maximum number of inline object indices per node.
func (p *NodePool) K() int {
	return p.k
}

// Stride returns the number of float32 slots per node record.
func (p *NodePool) Stride() int {
	return p.stride
}

// Buffer exposes the backing buffer.
func (p *NodePool) Buffer() []float32 {
	return p.buf
}

// Offset returns the float32 offset of node i within the backing buffer.
func (p *NodePool) Offset(i int) int {
	return i * p.stride
}

// Size returns the number of nodes bump-allocated since construction or the
// last Reset.
func (p *NodePool) Size() int {
	return p.bump
}

// Capacity returns the pool's fixed capacity.
func (p *NodePool) Capacity() int {
	return p.capacity
}

// Allocate bump-allocates the next node and initializes it to a leaf with
// no parent and no objects. Object slots are left undefined.
func (p *NodePool) Allocate() (int, error) {
	if p.bump >= p.capacity {
		return 0, ErrCapacityExceeded
	}
	idx := p.bump
	p.bump++
	off := p.Offset(idx)
	p.buf[off+fieldFirstChild] = NoChild
	p.buf[off+fieldParent] = NoParent
	p.buf[off+fieldObjCount] = 0
	return idx, nil
}

// SetAABB overwrites node i's bounds.
func (p *NodePool) SetAABB(i int, minX, minY, minZ, maxX, maxY, maxZ float32) {
	off := p.Offset(i)
	p.buf[off+kernel.OffMinX] = minX
	p.buf[off+kernel.OffMinY] = minY
	p.buf[off+kernel.OffMinZ] = minZ
	p.buf[off+kernel.OffMaxX] = maxX
	p.buf[off+kernel.OffMaxY] = maxY
	p.buf[off+kernel.OffMaxZ] = maxZ
}

// GetAABB returns node i's bounds.
func (p *NodePool) GetAABB(i int) (minX, minY, minZ, maxX, maxY, maxZ float32) {
	off := p.Offset(i)
	return p.buf[off+kernel.OffMinX], p.buf[off+kernel.OffMinY], p.buf[off+kernel.OffMinZ],
		p.buf[off+kernel.OffMaxX], p.buf[off+kernel.OffMaxY], p.buf[off+kernel.OffMaxZ]
}

// SetFirstChild sets node i's first-child index (NoChild for a leaf).
func (p *NodePool) SetFirstChild(i, firstChild int) {
	p.buf[p.Offset(i)+fieldFirstChild] = float32(firstChild)
}

// GetFirstChild returns node i's first-child index, or NoChild.
func (p *NodePool) GetFirstChild(i int) int {
	return int(p.buf[p.Offset(i)+fieldFirstChild])
}

// SetParent sets node i's parent index (NoParent for the root).
func (p *NodePool) SetParent(i, parent int) {
	p.buf[p.Offset(i)+fieldParent] = float32(parent)
}

// GetParent returns node i's parent index, or NoParent.
func (p *NodePool) GetParent(i int) int {
	return int(p.buf[p.Offset(i)+fieldParent])
}

// GetObjectCount returns the number of object indices currently stored
// inline at node i.
func (p *NodePool) GetObjectCount(i int) int {
	return int(p.buf[p.Offset(i)+fieldObjCount])
}

// AddObject appends obj to node i's inline object list. It fails with
// ErrCapacityExceeded once the node already holds K objects.
func (p *NodePool) AddObject(i, obj int) error {
	off := p.Offset(i)
	count := int(p.buf[off+fieldObjCount])
	if count >= p.k {
		return ErrCapacityExceeded
	}
	p.buf[off+fieldObjectsBase+count] = float32(obj)
	p.buf[off+fieldObjCount] = float32(count + 1)
	return nil
}

// GetObject returns the object index stored at slot j (0 <= j < objectCount)
// of node i.
func (p *NodePool) GetObject(i, j int) int {
	return int(p.buf[p.Offset(i)+fieldObjectsBase+j])
}

// ClearObjects zeroes node i's object count without touching the inline
// slots themselves.
func (p *NodePool) ClearObjects(i int) {
	p.buf[p.Offset(i)+fieldObjCount] = 0
}

// RemoveObject removes obj from node i's inline object list by swapping it
// with the last entry and decrementing the count. It returns whether obj
// was present.
func (p *NodePool) RemoveObject(i, obj int) bool {
	off := p.Offset(i)
	count := int(p.buf[off+fieldObjCount])
	for j := 0; j < count; j++ {
		if int(p.buf[off+fieldObjectsBase+j]) == obj {
			last := count - 1
			p.buf[off+fieldObjectsBase+j] = p.buf[off+fieldObjectsBase+last]
			p.buf[off+fieldObjCount] = float32(last)
			return true
		}
	}
	return false
}

// Reset returns every node index to the bump allocator.
func (p *NodePool) Reset() {
	p.bump = 0
}
