package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGaugesReflectReportedOccupancy(t *testing.T) {
	SetNodePoolOccupancy(17)
	if got := testutil.ToFloat64(nodePoolOccupancy); got != 17 {
		t.Fatalf("expected node pool occupancy gauge to read 17; got %v", got)
	}

	SetAABBPoolOccupancy(9)
	if got := testutil.ToFloat64(aabbPoolOccupancy); got != 9 {
		t.Fatalf("expected AABB pool occupancy gauge to read 9; got %v", got)
	}
}

func TestCountersAccumulate(t *testing.T) {
	before := testutil.ToFloat64(subdivisions)
	IncSubdivision()
	IncSubdivision()
	if got := testutil.ToFloat64(subdivisions); got != before+2 {
		t.Fatalf("expected subdivisions counter to increase by 2; got delta %v", got-before)
	}

	beforeDegenerate := testutil.ToFloat64(degenerateInserts)
	IncDegenerateInsert()
	if got := testutil.ToFloat64(degenerateInserts); got != beforeDegenerate+1 {
		t.Fatalf("expected degenerate insert counter to increase by 1; got delta %v", got-beforeDegenerate)
	}
}
