package cmd

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/achilleasa/aabboctree/sweep"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Sweep drives a sweep.Worker over a randomly scattered shared AABB buffer
// and a randomly scattered ray buffer, printing the closest-hit pair for
// every ray. It demonstrates the channel-bounded request/reply protocol that
// a renderer thread would use to hand frame data to the sweep goroutine.
func Sweep(ctx *cli.Context) error {
	setupLogging(ctx)

	objectCount := ctx.Int("objects")
	rayCount := ctx.Int("rays")
	nodeCapacity := ctx.Int("node-capacity")
	extent := float32(ctx.Int("extent"))
	seed := int64(ctx.Int("seed"))

	const nodeStride = 9 + 8 // 9 fixed fields + K=8 inline object slots

	aabbBuf := make([]float32, objectCount*6)
	nodeBuf := make([]float32, nodeCapacity*nodeStride)
	rayBuf := make([]float32, rayCount*6)
	resultBuf := make([]float32, rayCount*2)

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < objectCount; i++ {
		x := rng.Float32()*2*extent - extent
		y := rng.Float32()*2*extent - extent
		z := rng.Float32()*2*extent - extent
		copy(aabbBuf[i*6:i*6+6], []float32{x, y, z, x + 1, y + 1, z + 1})
	}
	for i := 0; i < rayCount; i++ {
		ox := rng.Float32()*2*extent - extent
		oy := rng.Float32()*2*extent - extent
		oz := rng.Float32()*2*extent - extent
		copy(rayBuf[i*6:i*6+6], []float32{ox, oy, oz, 1, 0, 0})
	}

	worker := sweep.NewWorker()
	defer worker.Close()

	if err := worker.Init(sweep.InitParams{
		ObjectCapacity: objectCount,
		NodeCapacity:   nodeCapacity,
		RayCount:       rayCount,
		AABBBuf:        aabbBuf,
		NodeBuf:        nodeBuf,
		RayBuf:         rayBuf,
		ResultBuf:      resultBuf,
		WorldMin:       [3]float32{-extent, -extent, -extent},
		WorldMax:       [3]float32{extent, extent, extent},
	}); err != nil {
		logger.Error(err)
		return err
	}

	result, err := worker.Sweep(sweep.SweepRequest{ObjectCount: objectCount})
	if err != nil {
		logger.Error(err)
		return err
	}

	displaySweepStats(result)
	return nil
}

func displaySweepStats(result sweep.SweepResult) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Ray", "Hit object", "t"})
	for i := 0; i < result.RayCount; i++ {
		objIdx := result.Values[i*2]
		t := result.Values[i*2+1]
		hit := "miss"
		if objIdx >= 0 {
			hit = fmt.Sprintf("%d", int(objIdx))
		}
		table.Append([]string{fmt.Sprintf("%d", i), hit, fmt.Sprintf("%.4f", t)})
	}
	table.Render()

	logger.Noticef("sweep results\n%s", buf.String())
}
