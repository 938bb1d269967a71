package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var BollingerComputationsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bbands_computations_total",
		Help: "number of bollinger band computations",
	}, []string{"surface", "result"})

var BollingerComputeDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bbands_compute_duration_seconds",
		Help:    "time spent computing bollinger bands",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"surface"})

var BollingerInputBarsMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bbands_input_bars",
		Help:    "number of bars per computation",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"surface"})

func init() {
	prometheus.MustRegister(
		BollingerComputationsMetrics,
		BollingerComputeDurationMetrics,
		BollingerInputBarsMetrics,
	)
}

// ObserveComputation records one computation made through the given surface (cli, http).
func ObserveComputation(surface string, bars int, startTime time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	BollingerComputationsMetrics.WithLabelValues(surface, result).Inc()
	BollingerComputeDurationMetrics.WithLabelValues(surface).Observe(time.Since(startTime).Seconds())
	BollingerInputBarsMetrics.WithLabelValues(surface).Observe(float64(bars))
}
