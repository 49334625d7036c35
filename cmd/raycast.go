package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// Raycast builds the same random octree as Build and casts a single ray
// supplied as six positional arguments (ox oy oz dx dy dz), printing the
// closest hit.
func Raycast(ctx *cli.Context) error {
	setupLogging(ctx)

	args := ctx.Args()
	if len(args) != 6 {
		err := fmt.Errorf("expected 6 positional args: ox oy oz dx dy dz")
		logger.Error(err)
		return err
	}
	ray := make([]float32, 6)
	for i, a := range args {
		var v float64
		if _, err := fmt.Sscanf(a, "%f", &v); err != nil {
			logger.Error(err)
			return err
		}
		ray[i] = float32(v)
	}

	tree, _, _, err := buildRandomOctree(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	hit, ok := tree.Raycast(ray, 0)
	if !ok {
		logger.Notice("ray did not hit any object")
		return nil
	}
	logger.Noticef("ray hit object %d at t=%.4f", hit.ObjectIndex, hit.T)
	return nil
}
