// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package metrics exposes Prometheus instrumentation for the
// recommendation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pathforge"

// Metrics holds the collectors for one engine instance.
type Metrics struct {
	// RequestsTotal counts fusion requests by outcome
	// ("ok", "fallback", "error").
	RequestsTotal *prometheus.CounterVec

	// ScorerFailures counts scorer errors by scorer name.
	ScorerFailures *prometheus.CounterVec

	// ScorerDuration tracks per-scorer latency.
	ScorerDuration *prometheus.HistogramVec

	// RequestDuration tracks end-to-end fusion latency.
	RequestDuration prometheus.Histogram

	// CandidatesReturned tracks result set sizes.
	CandidatesReturned prometheus.Histogram

	// ClassifierCalls counts complexity classifier invocations by outcome
	// ("ok", "error", "fallback").
	ClassifierCalls *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Passing prometheus.DefaultRegisterer wires them into the default
// /metrics endpoint.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Fusion requests by outcome.",
		}, []string{"outcome"}),
		ScorerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorer_failures_total",
			Help:      "Scorer errors by scorer name.",
		}, []string{"scorer"}),
		ScorerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scorer_duration_seconds",
			Help:      "Per-scorer latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scorer"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "End-to-end fusion latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		CandidatesReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "candidates_returned",
			Help:      "Number of candidates per response.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		ClassifierCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_calls_total",
			Help:      "Complexity classifier invocations by outcome.",
		}, []string{"outcome"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.RequestsTotal,
			m.ScorerFailures,
			m.ScorerDuration,
			m.RequestDuration,
			m.CandidatesReturned,
			m.ClassifierCalls,
		)
	}
	return m
}

// NewNop returns unregistered collectors, useful in tests.
func NewNop() *Metrics {
	return New(nil)
}
