// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"time"

	"github.com/chainchess/matchmaking-engine/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) SetQueueDepth(matchType string, depth int) {
}

func (s stubMetricsCollection) AddPairScanElapsedTimeMs(matchType string, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddMatchCreated(matchType string) {
}

func (s stubMetricsCollection) AddRequestExpired(matchType string) {
}

func (s stubMetricsCollection) AddUnmatchedReason(matchType string, reason string) {
}

func NewMetrics() metrics.MatchmakingMetrics {
	return stubMetricsCollection{}
}
