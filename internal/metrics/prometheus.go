package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus. Metrics are
// registered on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	passDuration *prometheus.HistogramVec
	passes       *prometheus.CounterVec
	instructions *prometheus.CounterVec
	mounted      prometheus.Counter
	unmounted    prometheus.Counter
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector.
//
// Parameters:
//   - reg: registerer to use (prometheus.DefaultRegisterer if nil)
//   - namespace: metric namespace ("cinder" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "cinder"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.passDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "render",
			Name:      "pass_duration_seconds",
			Help:      "Duration of render passes in seconds by list.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{"list"})

		p.passes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "render",
			Name:      "passes_total",
			Help:      "Total render passes by list.",
		}, []string{"list"})

		p.instructions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reconcile",
			Name:      "instructions_total",
			Help:      "Total reconcile instructions by kind.",
		}, []string{"kind"})

		p.mounted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "render",
			Name:      "components_mounted_total",
			Help:      "Total components created for unmatched values.",
		})

		p.unmounted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "render",
			Name:      "components_unmounted_total",
			Help:      "Total components removed.",
		})

		p.reg.MustRegister(p.passDuration)
		p.reg.MustRegister(p.passes)
		p.reg.MustRegister(p.instructions)
		p.reg.MustRegister(p.mounted)
		p.reg.MustRegister(p.unmounted)
	})
}

// ObservePass records one pass of list.
func (p *PrometheusCollector) ObservePass(list string, seconds float64) {
	p.ensureRegistered()
	p.passDuration.WithLabelValues(list).Observe(seconds)
	p.passes.WithLabelValues(list).Inc()
}

// IncInstruction counts one instruction of the given kind.
func (p *PrometheusCollector) IncInstruction(kind string) {
	p.ensureRegistered()
	p.instructions.WithLabelValues(kind).Inc()
}

// AddMounted adds n mounted components.
func (p *PrometheusCollector) AddMounted(n int) {
	p.ensureRegistered()
	p.mounted.Add(float64(n))
}

// AddUnmounted adds n unmounted components.
func (p *PrometheusCollector) AddUnmounted(n int) {
	p.ensureRegistered()
	p.unmounted.Add(float64(n))
}
