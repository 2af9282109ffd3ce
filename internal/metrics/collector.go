package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	trials        *prometheus.CounterVec
	verifications *prometheus.CounterVec
	errorCounter  *prometheus.CounterVec

	trialLatency *prometheus.HistogramVec

	inputSize *prometheus.GaugeVec
	lastK     prometheus.Gauge
}

// NewCollector registers the benchmark metrics on reg. A nil reg falls back
// to prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "topkbench"
	}
	factory := promauto.With(reg)

	return &Collector{
		trials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "trials",
				Name:      "total",
				Help:      "Total number of timed trials by algorithm",
			},
			[]string{"algorithm"},
		),

		verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verify",
				Name:      "total",
				Help:      "Cross-checks of algorithm results by outcome",
			},
			[]string{"algorithm", "status"},
		),

		errorCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total errors by operation",
			},
			[]string{"operation", "error_type"},
		),

		trialLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "latency",
				Name:      "trial_seconds",
				Help:      "Duration of a single selection call in seconds",
				Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"algorithm"},
		),

		inputSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "elements",
				Help:      "Length of the most recent generated input by algorithm",
			},
			[]string{"algorithm"},
		),

		lastK: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "input",
			Name:      "k",
			Help:      "k of the most recent case",
		}),
	}
}

func (c *Collector) RecordTrial(algorithm string, duration time.Duration) {
	c.trialLatency.WithLabelValues(algorithm).Observe(duration.Seconds())
	c.trials.WithLabelValues(algorithm).Inc()
}

func (c *Collector) RecordVerification(algorithm string, ok bool) {
	status := "success"
	if !ok {
		status = "mismatch"
	}
	c.verifications.WithLabelValues(algorithm, status).Inc()
}

func (c *Collector) SetInput(algorithm string, size, k int) {
	c.inputSize.WithLabelValues(algorithm).Set(float64(size))
	c.lastK.Set(float64(k))
}

func (c *Collector) IncrementError(operation string, errorType string) {
	c.errorCounter.WithLabelValues(operation, errorType).Inc()
}
