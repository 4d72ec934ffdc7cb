// SPDX-License-Identifier: MIT

// Package metrics instruments FLDR sampling with Prometheus collectors.
//
// Collectors (all under the given namespace, subsystem "fldr"):
//
//	samples_total     resolved draws
//	bits_total        random bits consumed by resolved draws
//	restarts_total    rejection restarts
//	bits_per_sample   histogram of bits per resolved draw
//	errors_total      draws aborted by a bit-source error
//
// Sampling through Metrics consumes exactly the bits a plain Roller.Sample
// would, so instrumented and uninstrumented runs see the same sequence.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/fldr/roller"
)

const subsystem = "fldr"

// Metrics holds the registered collectors. Safe for concurrent use.
type Metrics struct {
	Samples  prometheus.Counter
	Bits     prometheus.Counter
	Restarts prometheus.Counter
	PerDraw  prometheus.Histogram
	Errors   prometheus.Counter
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "samples_total",
			Help:      "Number of resolved draws.",
		}),
		Bits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bits_total",
			Help:      "Random bits consumed by resolved draws.",
		}),
		Restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "restarts_total",
			Help:      "Rejection restarts across all draws.",
		}),
		PerDraw: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bits_per_sample",
			Help:      "Random bits consumed per resolved draw.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Draws aborted by a bit-source error.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Samples, m.Bits, m.Restarts, m.PerDraw, m.Errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Sample draws one outcome from r and records it.
func (m *Metrics) Sample(r *roller.Roller, src roller.BitSource) (int, error) {
	res, err := r.Trace(src)
	m.Restarts.Add(float64(res.Restarts))
	if err != nil {
		m.Errors.Inc()
		return res.Index, err
	}
	m.Samples.Inc()
	m.Bits.Add(float64(res.Bits))
	m.PerDraw.Observe(float64(res.Bits))
	return res.Index, nil
}

// SampleN fills dst like Roller.SampleN, recording every draw.
func (m *Metrics) SampleN(r *roller.Roller, src roller.BitSource, dst []int) error {
	for i := range dst {
		z, err := m.Sample(r, src)
		if err != nil {
			return err
		}
		dst[i] = z
	}
	return nil
}
