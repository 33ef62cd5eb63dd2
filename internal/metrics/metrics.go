// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Classifications counts classifier results by task and outcome
	// (ok, unmatched, degraded).
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_classifications_total",
		Help: "Classifier results by task and outcome.",
	}, []string{"task", "outcome"})

	// Replies counts dispatched replies by source (template, generated, fallback).
	Replies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_replies_total",
		Help: "Dispatched replies by source.",
	}, []string{"source"})

	// LLMCallDuration observes each model call, including failed ones.
	LLMCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatbot_llm_call_duration_seconds",
		Help:    "Latency of individual model calls.",
		Buckets: []float64{.1, .25, .5, 1, 2, 4, 8, 16},
	}, []string{"chain", "status"})

	// PipelineDuration observes a full classify-and-dispatch cycle.
	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatbot_pipeline_duration_seconds",
		Help:    "Latency of one classify-and-dispatch cycle.",
		Buckets: prometheus.DefBuckets,
	})

	// ActiveSessions tracks sessions currently held in memory.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatbot_sessions_active",
		Help: "Conversation sessions held in memory.",
	})
)
