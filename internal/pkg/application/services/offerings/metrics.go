package offerings

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	created  *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "offerings",
				Name:      "created_total",
				Help:      "Total number of offering requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "offerings",
				Name:      "create_duration_seconds",
				Help:      "Time spent loading, extracting and projecting an offering",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	if registerer != nil {
		for _, c := range []prometheus.Collector{m.created, m.duration} {
			if err := registerer.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	m.created.WithLabelValues(outcome).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}
