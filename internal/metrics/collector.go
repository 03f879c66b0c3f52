// Package metrics records reconciliation activity.
//
// Collector is the only interface the renderer depends on. NewNop discards
// everything; NewPrometheus exports counters and a pass-duration histogram.
package metrics

// Collector receives render metrics. Implementations must be safe for
// concurrent use, since several lists may share one collector.
type Collector interface {
	// ObservePass records the wall time of one render pass of list.
	ObservePass(list string, seconds float64)
	// IncInstruction counts one emitted instruction by kind name.
	IncInstruction(kind string)
	// AddMounted counts components created for values that had no match.
	AddMounted(n int)
	// AddUnmounted counts components that were removed.
	AddUnmounted(n int)
}
