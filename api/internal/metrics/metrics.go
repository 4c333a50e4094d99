package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proofreader_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// ProofreadTotal counts proofreading calls by engine and outcome
	// (ok, upstream, malformed_output, bounds).
	ProofreadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proofreader_proofread_total",
		Help: "Proofreading calls by engine and outcome.",
	}, []string{"engine", "outcome"})

	// UpstreamDuration tracks the latency of the single upstream call.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proofreader_upstream_duration_seconds",
		Help:    "Time spent waiting for the upstream model.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"engine"})

	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "proofreader_input_chars",
		Help:    "Number of characters in proofreading input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	Corrections = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "proofreader_corrections",
		Help:    "Number of corrections in validated results.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})
)
