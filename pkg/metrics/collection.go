// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	queueDepth          prometheus.GaugeVec
	pairScanElapsedTime prometheus.HistogramVec
	matchesCreated      prometheus.CounterVec
	requestsExpired     prometheus.CounterVec
	unmatchedReasons    prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	queueDepth := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cc_mm_queue_depth",
			Help: "A gauge of waiting requests per queue partition",
		}, []string{"match_type"})

	//nolint:promlinter
	pairScanElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cc_mm_pair_scan_elapsed_time_ms",
			Help:    "A histogram of pairing engine scan elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"match_type", "function"})

	matchesCreated := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cc_mm_matches_created",
			Help: "A counter of matches finalized by the pairing engine",
		}, []string{"match_type"})

	requestsExpired := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cc_mm_requests_expired",
			Help: "A counter of waiting requests expired by the sweeper",
		}, []string{"match_type"})

	unmatchedReasons := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cc_mm_unmatched_reasons",
			Help: "A counter of reasons a pairing scan left requests unmatched",
		}, []string{"match_type", "reason"})

	return prometheusMetrics{
		queueDepth:          *queueDepth,
		pairScanElapsedTime: *pairScanElapsedTime,
		matchesCreated:      *matchesCreated,
		requestsExpired:     *requestsExpired,
		unmatchedReasons:    *unmatchedReasons,
	}
}

func (metrics prometheusMetrics) SetQueueDepth(matchType string, depth int) {
	metrics.queueDepth.With(prometheus.Labels{"match_type": matchType}).Set(float64(depth))
}

func (metrics prometheusMetrics) AddPairScanElapsedTimeMs(matchType string, function string, elapsedTime time.Duration) {
	metrics.pairScanElapsedTime.With(prometheus.Labels{"match_type": matchType, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddMatchCreated(matchType string) {
	metrics.matchesCreated.With(prometheus.Labels{"match_type": matchType}).Add(float64(1))
}

func (metrics prometheusMetrics) AddRequestExpired(matchType string) {
	metrics.requestsExpired.With(prometheus.Labels{"match_type": matchType}).Add(float64(1))
}

func (metrics prometheusMetrics) AddUnmatchedReason(matchType string, reason string) {
	metrics.unmatchedReasons.With(prometheus.Labels{"match_type": matchType, "reason": reason}).Add(float64(1))
}
