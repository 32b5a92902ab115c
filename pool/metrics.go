// File: pool/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus instrumentation for pool growth and the release protocol.
// All counting helpers are nil-safe so instrumentation stays optional.

package pool

import "github.com/prometheus/client_golang/prometheus"

// Metrics aggregates pool allocation and release-protocol counters.
type Metrics struct {
	Grows              prometheus.Counter
	Releases           prometheus.Counter
	Recycles           prometheus.Counter
	DestroyedOnRelease prometheus.Counter
	SegmentBytes       prometheus.Gauge
}

// NewMetrics builds and registers the pool metric set.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Grows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmframe",
			Subsystem: "pool",
			Name:      "grows_total",
			Help:      "Segment growths, one new buffer extent each.",
		}),
		Releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmframe",
			Subsystem: "pool",
			Name:      "releases_total",
			Help:      "Release notifications received from the compositor.",
		}),
		Recycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmframe",
			Subsystem: "pool",
			Name:      "recycles_total",
			Help:      "Released buffers returned to a live free list.",
		}),
		DestroyedOnRelease: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmframe",
			Subsystem: "pool",
			Name:      "destroyed_on_release_total",
			Help:      "Released buffers destroyed because their pool was gone.",
		}),
		SegmentBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shmframe",
			Subsystem: "pool",
			Name:      "segment_bytes",
			Help:      "Current mapped length of the backing segment.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Grows, m.Releases, m.Recycles, m.DestroyedOnRelease, m.SegmentBytes)
	}
	return m
}

func (m *Metrics) countGrow(segmentLen int) {
	if m == nil {
		return
	}
	m.Grows.Inc()
	m.SegmentBytes.Set(float64(segmentLen))
}

func (m *Metrics) countRelease() {
	if m == nil {
		return
	}
	m.Releases.Inc()
}

func (m *Metrics) countRecycle() {
	if m == nil {
		return
	}
	m.Recycles.Inc()
}

func (m *Metrics) countDestroyOnRelease() {
	if m == nil {
		return
	}
	m.DestroyedOnRelease.Inc()
}
