// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/chainchess/matchmaking-engine/pkg/constants"
)

// waitStats keeps a bounded ring of recent time-to-match samples and
// derives the wait estimate reported in QueueStatus. Guarded by the
// engine mutex like the rest of the queue state.
type waitStats struct {
	samples []float64 // seconds
	next    int
	filled  bool
}

func newWaitStats() *waitStats {
	return &waitStats{
		samples: make([]float64, constants.WaitSampleWindow),
	}
}

func (w *waitStats) record(waited time.Duration) {
	w.samples[w.next] = waited.Seconds()
	w.next++
	if w.next == len(w.samples) {
		w.next = 0
		w.filled = true
	}
}

// estimateSecond returns the mean of the recorded samples, or the
// fallback when nothing has been recorded yet.
func (w *waitStats) estimateSecond(fallback int) int {
	window := w.samples
	if !w.filled {
		if w.next == 0 {
			return fallback
		}
		window = w.samples[:w.next]
	}

	mean := stat.Mean(window, nil)
	if mean < 0 {
		return fallback
	}
	return int(mean + 0.5)
}
