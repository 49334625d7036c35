package cmd

import (
	"math/rand"

	"github.com/achilleasa/aabboctree/octree"
	"github.com/achilleasa/aabboctree/pool"
	"github.com/urfave/cli"
)

// buildRandomOctree scatters ctx.Int("objects") unit AABBs uniformly inside
// [-extent, extent]^3 and inserts them into a fresh octree, returning the
// tree along with the pools backing it.
func buildRandomOctree(ctx *cli.Context) (*octree.Octree, *pool.AABBPool, *pool.NodePool, error) {
	objectCount := ctx.Int("objects")
	nodeCapacity := ctx.Int("node-capacity")
	extent := float32(ctx.Int("extent"))
	seed := int64(ctx.Int("seed"))

	aabbs := pool.NewAABBPool(objectCount)
	nodes := pool.NewNodePool(nodeCapacity, 8)
	tree, err := octree.New(nodes, aabbs)
	if err != nil {
		return nil, nil, nil, err
	}
	tree.SetBounds([3]float32{-extent, -extent, -extent}, [3]float32{extent, extent, extent})

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < objectCount; i++ {
		idx, err := aabbs.Allocate()
		if err != nil {
			return nil, nil, nil, err
		}
		x := rng.Float32()*2*extent - extent
		y := rng.Float32()*2*extent - extent
		z := rng.Float32()*2*extent - extent
		aabbs.Set(idx, x, y, z, x+1, y+1, z+1)
		if err := tree.Insert(idx); err != nil {
			return nil, nil, nil, err
		}
	}

	return tree, aabbs, nodes, nil
}

// CommonFlags are shared by every command that builds a random octree.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{Name: "objects", Value: 1000, Usage: "number of random objects to insert"},
		cli.IntFlag{Name: "node-capacity", Value: 16384, Usage: "octree node pool capacity"},
		cli.IntFlag{Name: "extent", Value: 1000, Usage: "half-width of the cubic world bounds"},
		cli.IntFlag{Name: "seed", Value: 1, Usage: "random seed for object placement"},
	}
}

// SweepFlags extends CommonFlags with the ray count the sweep command needs.
func SweepFlags() []cli.Flag {
	return append(CommonFlags(), cli.IntFlag{Name: "rays", Value: 16, Usage: "number of random rays to cast"})
}
