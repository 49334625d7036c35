// Package octree implements the dynamic AABB spatial index: a pool-backed
// 8-ary tree over the records held by a pool.NodePool and pool.AABBPool,
// supporting insert/update/remove, closest-hit raycasting and box overlap
// queries, with no per-call heap allocation on any hot path.
package octree

import (
	"github.com/achilleasa/aabboctree/kernel"
	"github.com/achilleasa/aabboctree/log"
	"github.com/achilleasa/aabboctree/metrics"
	"github.com/achilleasa/aabboctree/pool"
)

const childCount = 8

// defaultStackDepthBound sizes the preallocated traversal stack. 12 levels
// of an octree already cover a 4096-to-one span in edge length between the
// root and the smallest leaf, which is far deeper than any reasonable scene
// needs.
const defaultStackDepthBound = 12

// Hit describes the closest object pierced by a ray.
type Hit struct {
	ObjectIndex int
	T           float32
}

// Octree is the spatial index. It borrows a NodePool and an AABBPool for its
// lifetime; it never owns, resizes or reallocates them.
type Octree struct {
	nodes *pool.NodePool
	aabbs *pool.AABBPool

	root int

	// boundsMin/boundsMax are replayed onto a fresh root node whenever
	// Clear reinitializes the node pool.
	boundsMin, boundsMax [3]float32

	// objToNode maps an AABB pool index to the node currently holding it,
	// or NoParent (-1) if the object has never been inserted or has been
	// removed.
	objToNode []int32

	stack []int32

	logger log.Logger
}

// New constructs an Octree over the given pools and allocates its root
// node. The root's bounds default to a zero-sized box at the origin; call
// SetBounds before inserting anything.
func New(nodes *pool.NodePool, aabbs *pool.AABBPool) (*Octree, error) {
	t := &Octree{
		nodes:     nodes,
		aabbs:     aabbs,
		objToNode: make([]int32, aabbs.Capacity()),
		stack:     make([]int32, 0, 1+childCount*defaultStackDepthBound),
		logger:    log.New("octree"),
	}
	for i := range t.objToNode {
		t.objToNode[i] = pool.NoParent
	}

	root, err := nodes.Allocate()
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

// RootIndex returns the node pool index of the root node.
func (t *Octree) RootIndex() int {
	return t.root
}

// SetBounds sets the world-space bounds of the root node. It should be
// called once, before any Insert, and is replayed automatically whenever
// Clear reinitializes the tree.
func (t *Octree) SetBounds(min, max [3]float32) {
	t.boundsMin, t.boundsMax = min, max
	t.nodes.SetAABB(t.root, min[0], min[1], min[2], max[0], max[1], max[2])
}

// fits reports whether object obj's AABB is entirely contained, inclusive on
// both ends, by node's AABB.
func (t *Octree) fits(obj, node int) bool {
	return kernel.AABBContains(t.aabbs.Buffer(), t.aabbs.Offset(obj), t.nodes.Buffer(), t.nodes.Offset(node))
}

// Insert places obj (an AABB pool index whose record has already been
// written) into the tree. Insert never returns a caller-visible capacity
// error: if the subdivide-then-retry path can't resolve a degenerate
// cluster of objects that don't fit in any of a leaf's children, the
// insertion is dropped and logged (see DESIGN.md "degenerate insert").
func (t *Octree) Insert(obj int) error {
	if err := t.insertInto(t.root, obj); err != nil {
		metrics.IncDegenerateInsert()
		t.logger.Warningf("%v: object %d, cause %v", ErrDegenerateInsert, obj, err)
	}
	return nil
}

func (t *Octree) insertInto(node, obj int) error {
	firstChild := t.nodes.GetFirstChild(node)
	if firstChild >= 0 {
		for i := 0; i < childCount; i++ {
			child := firstChild + i
			if t.fits(obj, child) {
				return t.insertInto(child, obj)
			}
		}
		if err := t.nodes.AddObject(node, obj); err != nil {
			return err
		}
		t.objToNode[obj] = int32(node)
		return nil
	}

	count := t.nodes.GetObjectCount(node)
	if count < t.nodes.K() {
		if err := t.nodes.AddObject(node, obj); err != nil {
			return err
		}
		t.objToNode[obj] = int32(node)
		return nil
	}

	if err := t.subdivide(node); err != nil {
		return err
	}
	return t.insertInto(node, obj)
}

// subdivide turns leaf node N into an internal node with 8 contiguous
// children partitioning N's AABB at its midpoint, then re-inserts N's
// former objects so they sink into whichever child (if any) now fits them.
func (t *Octree) subdivide(node int) error {
	minX, minY, minZ, maxX, maxY, maxZ := t.nodes.GetAABB(node)
	midX, midY, midZ := (minX+maxX)/2, (minY+maxY)/2, (minZ+maxZ)/2

	first := -1
	for i := 0; i < childCount; i++ {
		child, err := t.nodes.Allocate()
		if err != nil {
			return err
		}
		if i == 0 {
			first = child
		}

		xHi, yHi, zHi := i&1, (i>>1)&1, (i>>2)&1
		cMinX, cMaxX := minX, midX
		if xHi != 0 {
			cMinX, cMaxX = midX, maxX
		}
		cMinY, cMaxY := minY, midY
		if yHi != 0 {
			cMinY, cMaxY = midY, maxY
		}
		cMinZ, cMaxZ := minZ, midZ
		if zHi != 0 {
			cMinZ, cMaxZ = midZ, maxZ
		}

		t.nodes.SetAABB(child, cMinX, cMinY, cMinZ, cMaxX, cMaxY, cMaxZ)
		t.nodes.SetParent(child, node)
	}
	t.nodes.SetFirstChild(node, first)
	metrics.IncSubdivision()

	count := t.nodes.GetObjectCount(node)
	displaced := make([]int, count)
	for j := 0; j < count; j++ {
		displaced[j] = t.nodes.GetObject(node, j)
	}
	t.nodes.ClearObjects(node)

	for _, obj := range displaced {
		if err := t.insertInto(node, obj); err != nil {
			return err
		}
	}
	return nil
}

// Update overwrites obj's AABB and repositions it in the tree if necessary.
// If obj has never been inserted this is a silent no-op past the AABB
// overwrite. If obj still fits its current node, it is deliberately left in
// place even if a child would now accept it (see SPEC_FULL.md §4.7).
func (t *Octree) Update(obj int, min, max [3]float32) error {
	t.aabbs.Set(obj, min[0], min[1], min[2], max[0], max[1], max[2])

	node := int(t.objToNode[obj])
	if node == pool.NoParent {
		return nil
	}

	if t.fits(obj, node) {
		return nil
	}

	t.nodes.RemoveObject(node, obj)

	ancestor := node
	for {
		parent := t.nodes.GetParent(ancestor)
		if parent == pool.NoParent {
			break
		}
		ancestor = parent
		if t.fits(obj, ancestor) {
			break
		}
	}

	return t.insertInto(ancestor, obj)
}

// Remove deletes obj from the tree, if present. Removing an unknown object
// is a no-op.
func (t *Octree) Remove(obj int) {
	node := int(t.objToNode[obj])
	if node == pool.NoParent {
		return
	}
	t.nodes.RemoveObject(node, obj)
	t.objToNode[obj] = pool.NoParent
}

// Clear drops every node back to the bump allocator and allocates a fresh
// root with the last bounds set via SetBounds. It does not affect the AABB
// pool.
func (t *Octree) Clear() error {
	t.nodes.Reset()
	for i := range t.objToNode {
		t.objToNode[i] = pool.NoParent
	}
	root, err := t.nodes.Allocate()
	if err != nil {
		return err
	}
	t.root = root
	t.nodes.SetAABB(root, t.boundsMin[0], t.boundsMin[1], t.boundsMin[2], t.boundsMax[0], t.boundsMax[1], t.boundsMax[2])
	return nil
}

func (t *Octree) pushStack(node int) {
	t.stack = append(t.stack, int32(node))
}

func (t *Octree) popStack() (int, bool) {
	n := len(t.stack)
	if n == 0 {
		return 0, false
	}
	node := t.stack[n-1]
	t.stack = t.stack[:n-1]
	return int(node), true
}

// Raycast returns the closest object pierced by the ray stored at
// rayBuf[rayOff:rayOff+6], performing an uncoordinated DFS with no
// front-to-back ordering or distance-based pruning (see SPEC_FULL.md §4.9).
func (t *Octree) Raycast(rayBuf []float32, rayOff int) (Hit, bool) {
	nodeBuf := t.nodes.Buffer()
	if kernel.RayIntersectsAABB(rayBuf, rayOff, nodeBuf, t.nodes.Offset(t.root)) < 0 {
		return Hit{}, false
	}

	t.stack = t.stack[:0]
	t.pushStack(t.root)

	aabbBuf := t.aabbs.Buffer()
	bestT := float32(3.4e38) // +Inf-ish upper bound; avoids importing math for a sentinel
	bestIdx := -1

	for {
		node, ok := t.popStack()
		if !ok {
			break
		}

		count := t.nodes.GetObjectCount(node)
		for j := 0; j < count; j++ {
			obj := t.nodes.GetObject(node, j)
			tHit := kernel.RayIntersectsAABB(rayBuf, rayOff, aabbBuf, t.aabbs.Offset(obj))
			if tHit >= 0 && tHit < bestT {
				bestT = tHit
				bestIdx = obj
			}
		}

		firstChild := t.nodes.GetFirstChild(node)
		if firstChild < 0 {
			continue
		}
		for i := 0; i < childCount; i++ {
			child := firstChild + i
			if kernel.RayIntersectsAABB(rayBuf, rayOff, nodeBuf, t.nodes.Offset(child)) >= 0 {
				t.pushStack(child)
			}
		}
	}

	if bestIdx < 0 {
		return Hit{}, false
	}
	return Hit{ObjectIndex: bestIdx, T: bestT}, true
}

// QueryBox appends to out every live object whose AABB overlaps
// [min,max] (inclusive), in DFS visitation order, and returns the extended
// slice. Passing a reused, zero-length out avoids per-call allocation.
func (t *Octree) QueryBox(min, max [3]float32, out []int32) []int32 {
	query := [6]float32{min[0], min[1], min[2], max[0], max[1], max[2]}
	queryBuf := query[:]

	nodeBuf := t.nodes.Buffer()
	if !kernel.AABBOverlapsBox(nodeBuf, t.nodes.Offset(t.root), queryBuf, 0) {
		return out
	}

	t.stack = t.stack[:0]
	t.pushStack(t.root)

	aabbBuf := t.aabbs.Buffer()

	for {
		node, ok := t.popStack()
		if !ok {
			break
		}

		count := t.nodes.GetObjectCount(node)
		for j := 0; j < count; j++ {
			obj := t.nodes.GetObject(node, j)
			if kernel.AABBOverlapsBox(aabbBuf, t.aabbs.Offset(obj), queryBuf, 0) {
				out = append(out, int32(obj))
			}
		}

		firstChild := t.nodes.GetFirstChild(node)
		if firstChild < 0 {
			continue
		}
		for i := 0; i < childCount; i++ {
			child := firstChild + i
			if kernel.AABBOverlapsBox(nodeBuf, t.nodes.Offset(child), queryBuf, 0) {
				t.pushStack(child)
			}
		}
	}

	return out
}
