package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per server so that several servers, as in tests,
// do not collide on the default registry.
type metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	symbols    *prometheus.CounterVec
	duration   prometheus.Histogram
	uploadSize prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrscan_decode_requests_total",
				Help: "Total number of decode requests",
			},
			[]string{"status"}, // ok, bad_request, too_large, timeout
		),
		symbols: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrscan_symbols_decoded_total",
				Help: "Total number of located symbols",
			},
			[]string{"result"}, // ok, error
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qrscan_decode_duration_seconds",
				Help:    "Decode duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		uploadSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qrscan_upload_size_bytes",
				Help:    "Size of uploaded images in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}
}
