// Package metrics exposes Prometheus instrumentation for the evaluation pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codelearn_eval_cache_hits_total",
			Help: "Evaluation cache hits by tier",
		},
		[]string{"tier"},
	)

	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "codelearn_eval_cache_misses_total",
			Help: "Evaluation cache full misses",
		},
	)

	modelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codelearn_model_calls_total",
			Help: "Model provider calls by outcome",
		},
		[]string{"outcome"},
	)

	credentialRotations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "codelearn_credential_rotations_total",
			Help: "Model credential rotations after rate-limit or auth failures",
		},
	)

	evaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codelearn_evaluation_duration_seconds",
			Help:    "End-to-end evaluation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

// Init registers all collectors. Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(cacheHits, cacheMisses, modelCalls, credentialRotations, evaluationDuration)
	})
}

// RecordCacheHit records a cache hit on the given tier ("durable" or "ephemeral").
func RecordCacheHit(tier string) {
	cacheHits.WithLabelValues(tier).Inc()
}

// RecordCacheMiss records a full cache miss.
func RecordCacheMiss() {
	cacheMisses.Inc()
}

// RecordModelCall records a model provider call outcome ("ok", "rotated", "error").
func RecordModelCall(outcome string) {
	modelCalls.WithLabelValues(outcome).Inc()
}

// RecordCredentialRotation records one cursor advance in the rotator.
func RecordCredentialRotation() {
	credentialRotations.Inc()
}

// ObserveEvaluationDuration records end-to-end latency for one evaluation.
func ObserveEvaluationDuration(kind string, seconds float64) {
	evaluationDuration.WithLabelValues(kind).Observe(seconds)
}
