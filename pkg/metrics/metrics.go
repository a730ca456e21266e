// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchmakingMetrics interface {
	SetQueueDepth(matchType string, depth int)
	AddPairScanElapsedTimeMs(matchType string, function string, elapsedTime time.Duration)
	AddMatchCreated(matchType string)
	AddRequestExpired(matchType string)
	AddUnmatchedReason(matchType string, reason string)
}

func NewMetrics(registry *prometheus.Registry) MatchmakingMetrics {
	return setupPrometheusMetrics(registry)
}
