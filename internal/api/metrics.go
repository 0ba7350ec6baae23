package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_analyses_total",
		Help: "Analysis requests by source, applied strategy and outcome.",
	}, []string{"source", "strategy", "outcome"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "triage_analysis_duration_seconds",
		Help:    "Time spent ranking a batch.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"source"})

	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_batch_size",
		Help:    "Number of tasks per analyzed batch.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	cycleNodesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_cycle_nodes_total",
		Help: "Tasks reported as members of a circular dependency.",
	})

	phantomDependenciesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_phantom_dependencies_total",
		Help: "Dependency ids referenced but absent from their batch.",
	})
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)
