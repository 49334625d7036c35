// Package metrics exposes Prometheus collectors describing the live state of
// the pools and the octree. It follows the reference codebase's pattern of
// package-level promauto collectors registered against the default
// registry, with Set/Inc helpers rather than handing *prometheus.Gauge
// values to callers directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodePoolOccupancy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "octree_node_pool_occupancy",
		Help: "Number of node pool slots bump-allocated since construction or the last Reset.",
	})

	aabbPoolOccupancy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "octree_aabb_pool_occupancy",
		Help: "Number of currently-live AABB pool records.",
	})

	subdivisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_subdivisions_total",
		Help: "Number of leaf-to-internal node subdivisions performed.",
	})

	degenerateInserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_degenerate_inserts_total",
		Help: "Number of Insert calls dropped because the object could not be placed by subdivide-and-retry.",
	})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "octree_sweep_duration_seconds",
		Help: "Time taken by a sweep.Processor to service one SweepRequest.",
	})
)

// SetNodePoolOccupancy reports the node pool's current bump count.
func SetNodePoolOccupancy(n int) {
	nodePoolOccupancy.Set(float64(n))
}

// SetAABBPoolOccupancy reports the AABB pool's current live-record count.
func SetAABBPoolOccupancy(n int) {
	aabbPoolOccupancy.Set(float64(n))
}

// IncSubdivision records one leaf-to-internal subdivision.
func IncSubdivision() {
	subdivisions.Inc()
}

// IncDegenerateInsert records one dropped, unresolvable Insert.
func IncDegenerateInsert() {
	degenerateInserts.Inc()
}

// ObserveSweepDuration records how long a sweep took, in seconds.
func ObserveSweepDuration(seconds float64) {
	sweepDuration.Observe(seconds)
}
