package sweep

import "testing"

const testNodeStride = 9 + 8 // 9 fixed fields + K=8 inline object slots

func approxEqual(a, b float32) bool {
	const eps = 1e-2
	diff := a - b
	return diff < eps && diff > -eps
}

func newTestInitParams(objectCapacity, nodeCapacity, rayCount int) InitParams {
	return InitParams{
		ObjectCapacity: objectCapacity,
		NodeCapacity:   nodeCapacity,
		RayCount:       rayCount,
		AABBBuf:        make([]float32, objectCapacity*6),
		NodeBuf:        make([]float32, nodeCapacity*testNodeStride),
		RayBuf:         make([]float32, rayCount*6),
		ResultBuf:      make([]float32, rayCount*2),
		WorldMin:       [3]float32{-1e5, -1e5, -1e5},
		WorldMax:       [3]float32{1e5, 1e5, 1e5},
	}
}

func TestProcessorSweepOverSharedBuffer(t *testing.T) {
	params := newTestInitParams(4, 64, 2)

	// Object 0 at [10,0,0]-[11,1,1], object 1 at [-11,0,0]-[-10,1,1].
	copy(params.AABBBuf[0:6], []float32{10, 0, 0, 11, 1, 1})
	copy(params.AABBBuf[6:12], []float32{-11, 0, 0, -10, 1, 1})

	// Ray 0: (-5,0,0) -> +x. Ray 1: (5,0,0) -> -x.
	copy(params.RayBuf[0:6], []float32{-5, 0, 0, 1, 0, 0})
	copy(params.RayBuf[6:12], []float32{5, 0, 0, -1, 0, 0})

	var p Processor
	if err := p.Init(params); err != nil {
		t.Fatalf("unexpected error from Init: %v", err)
	}

	res, err := p.Sweep(SweepRequest{ObjectCount: 2})
	if err != nil {
		t.Fatalf("unexpected error from Sweep: %v", err)
	}
	want := []float32{0, 15, 1, 15}
	for i, w := range want {
		if !approxEqual(res.Values[i], w) {
			t.Fatalf("E5: result[%d] = %v, want %v (full: %v)", i, res.Values[i], w, res.Values)
		}
	}

	// Move object 0 further out and re-sweep. Since object 0 was already
	// inserted, this exercises the incremental Update path rather than a
	// fresh Insert: only the first ray's hit distance should change.
	copy(params.AABBBuf[0:6], []float32{25, 0, 0, 26, 1, 1})
	res2, err := p.Sweep(SweepRequest{ObjectCount: 2})
	if err != nil {
		t.Fatalf("unexpected error from second Sweep: %v", err)
	}
	if !approxEqual(res2.Values[0], 0) || !approxEqual(res2.Values[1], 30) {
		t.Fatalf("E5: after moving object 0, first ray result = [%v, %v], want [0, 30]", res2.Values[0], res2.Values[1])
	}
}

func TestProcessorSweepBeforeInit(t *testing.T) {
	var p Processor
	if _, err := p.Sweep(SweepRequest{ObjectCount: 1}); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized; got %v", err)
	}
}

// TestWorkerRequestReplyProtocol exercises the goroutine/channel boundary
// under -race: a fresh Worker accepts Init, then Sweep, and every reply
// matches what a direct Processor call would have produced.
func TestWorkerRequestReplyProtocol(t *testing.T) {
	params := newTestInitParams(1, 16, 1)
	copy(params.AABBBuf, []float32{0, 0, 0, 1, 1, 1})
	copy(params.RayBuf, []float32{-5, 0.5, 0.5, 1, 0, 0})

	w := NewWorker()
	defer w.Close()

	if err := w.Init(params); err != nil {
		t.Fatalf("unexpected error from Init: %v", err)
	}

	res, err := w.Sweep(SweepRequest{ObjectCount: 1})
	if err != nil {
		t.Fatalf("unexpected error from Sweep: %v", err)
	}
	if res.RayCount != 1 {
		t.Fatalf("expected RayCount 1; got %d", res.RayCount)
	}
	if !approxEqual(res.Values[0], 0) || !approxEqual(res.Values[1], 5) {
		t.Fatalf("expected hit (0, 5); got (%v, %v)", res.Values[0], res.Values[1])
	}
}
