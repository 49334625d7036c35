// Package sweep implements an off-thread batch raycast processor: given
// caller-populated shared buffers for object AABBs, octree nodes, rays, and
// results, it keeps a persistent octree in sync with the AABB buffer across
// calls and reports the closest hit for every ray. It is the host-side
// analogue of the reference codebase's per-frame device kernel dispatch,
// with channels standing in for the device command queue (see worker.go).
package sweep

import (
	"time"

	"github.com/achilleasa/aabboctree/metrics"
	"github.com/achilleasa/aabboctree/octree"
	"github.com/achilleasa/aabboctree/pool"
)

// InitParams configures a Processor. AABBBuf, NodeBuf, RayBuf, and
// ResultBuf are all supplied by the caller and are never copied: the caller
// writes object AABBs and rays into them directly before calling Sweep,
// following the single-writer protocol described in the package doc of
// this module's sweep.Worker.
type InitParams struct {
	ObjectCapacity int
	NodeCapacity   int
	RayCount       int

	AABBBuf   []float32
	NodeBuf   []float32
	RayBuf    []float32
	ResultBuf []float32

	WorldMin [3]float32
	WorldMax [3]float32
}

// Processor keeps a persistent octree over a caller-supplied snapshot of
// object AABBs and casts a fixed-size batch of rays against it on every
// Sweep call.
type Processor struct {
	initialized bool

	aabbs *pool.AABBPool
	nodes *pool.NodePool
	tree  *octree.Octree

	// seen tracks, per object index, whether that index has ever been
	// inserted into tree so a later Sweep knows to Update it in place
	// instead of Insert-ing it again.
	seen []bool

	rayBuf []float32

	rayCount int
	results  []float32
}

// Init constructs the processor's node pool, AABB pool, and octree over the
// caller-supplied shared buffers. It must be called exactly once before any
// call to Sweep.
func (p *Processor) Init(params InitParams) error {
	aabbs, err := pool.NewAABBPoolShared(params.AABBBuf, params.ObjectCapacity)
	if err != nil {
		return err
	}
	nodes, err := pool.NewNodePoolShared(params.NodeBuf, params.NodeCapacity, 8)
	if err != nil {
		return err
	}
	tree, err := octree.New(nodes, aabbs)
	if err != nil {
		return err
	}
	tree.SetBounds(params.WorldMin, params.WorldMax)

	p.aabbs = aabbs
	p.nodes = nodes
	p.tree = tree
	p.seen = make([]bool, params.ObjectCapacity)
	p.rayBuf = params.RayBuf
	p.rayCount = params.RayCount
	p.results = params.ResultBuf
	p.initialized = true
	return nil
}

// SweepRequest identifies how many of the AABB buffer's leading records are
// live for this call.
type SweepRequest struct {
	ObjectCount int
}

// SweepResult's Values holds RayCount (objectIndex, t) pairs, one per ray,
// in ray order. A miss is reported as (-1, -1). Values aliases the
// Processor's result buffer, so it is only valid until the next Sweep call
// overwrites it.
type SweepResult struct {
	RayCount int
	Values   []float32
}

// Sweep brings the tree in sync with the first ObjectCount records of the
// AABB buffer — inserting any object index seen for the first time and
// updating any object index seen before — then casts every ray in the ray
// buffer against it, reporting the closest hit per ray. Updates are
// incremental: the tree built by a previous Sweep call is reused, not
// discarded.
func (p *Processor) Sweep(req SweepRequest) (SweepResult, error) {
	if !p.initialized {
		return SweepResult{}, ErrNotInitialized
	}

	start := time.Now()

	for p.aabbs.Size() < req.ObjectCount {
		if _, err := p.aabbs.Allocate(); err != nil {
			return SweepResult{}, err
		}
	}

	for i := 0; i < req.ObjectCount; i++ {
		if p.seen[i] {
			min := [3]float32{p.aabbs.Get(i, 0), p.aabbs.Get(i, 1), p.aabbs.Get(i, 2)}
			max := [3]float32{p.aabbs.Get(i, 3), p.aabbs.Get(i, 4), p.aabbs.Get(i, 5)}
			if err := p.tree.Update(i, min, max); err != nil {
				return SweepResult{}, err
			}
			continue
		}
		if err := p.tree.Insert(i); err != nil {
			return SweepResult{}, err
		}
		p.seen[i] = true
	}

	for r := 0; r < p.rayCount; r++ {
		off := r * 6
		hit, ok := p.tree.Raycast(p.rayBuf, off)
		if !ok {
			p.results[r*2] = -1
			p.results[r*2+1] = -1
			continue
		}
		p.results[r*2] = float32(hit.ObjectIndex)
		p.results[r*2+1] = hit.T
	}

	metrics.ObserveSweepDuration(time.Since(start).Seconds())
	metrics.SetNodePoolOccupancy(p.nodes.Size())
	metrics.SetAABBPoolOccupancy(req.ObjectCount)

	return SweepResult{RayCount: p.rayCount, Values: p.results}, nil
}
