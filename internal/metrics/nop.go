package metrics

// NopMetrics discards every metric.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

// NewNop creates a no-op collector.
//
// Example:
//
//	list := render.NewList("rows", render.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ObservePass discards the pass duration.
func (n *NopMetrics) ObservePass(_ /* list */ string, _ /* seconds */ float64) {}

// IncInstruction discards the instruction count.
func (n *NopMetrics) IncInstruction(_ /* kind */ string) {}

// AddMounted discards the mount count.
func (n *NopMetrics) AddMounted(_ /* n */ int) {}

// AddUnmounted discards the unmount count.
func (n *NopMetrics) AddUnmounted(_ /* n */ int) {}
