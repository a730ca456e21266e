// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chainchess/matchmaking-engine/pkg/constants"
)

func TestWaitStatsFallbackWithoutSamples(t *testing.T) {
	w := newWaitStats()
	require.Equal(t, 15, w.estimateSecond(15))
}

func TestWaitStatsMeanOfRecordedSamples(t *testing.T) {
	w := newWaitStats()
	w.record(10 * time.Second)
	w.record(20 * time.Second)

	require.Equal(t, 15, w.estimateSecond(99))
}

func TestWaitStatsRingKeepsRecentWindow(t *testing.T) {
	w := newWaitStats()
	for i := 0; i < constants.WaitSampleWindow; i++ {
		w.record(time.Minute)
	}
	// the window is full of one-minute waits, new fast pairings pull the
	// estimate down as they displace old samples
	for i := 0; i < constants.WaitSampleWindow; i++ {
		w.record(time.Second)
	}

	require.Equal(t, 1, w.estimateSecond(99))
}
