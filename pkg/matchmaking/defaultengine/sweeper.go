// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chainchess/matchmaking-engine/pkg/constants"
	"github.com/chainchess/matchmaking-engine/pkg/envelope"
	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
)

// Start launches the expiration sweeper. Pairing itself is triggered
// inline on every mutation, the background loop exists solely to expire
// stale waiting requests.
func (e *matchmakingEngine) Start() {
	e.runMu.Lock()
	if e.running {
		e.runMu.Unlock()
		return
	}
	e.running = true
	// the loop gets its own reference, a later Start must not swap the
	// channel out from under a still-draining pass
	stop := make(chan struct{})
	e.stopChan = stop
	e.runMu.Unlock()

	logrus.WithField("interval", e.sweepInterval).Info("starting expiration sweeper")

	e.wg.Add(1)
	go e.sweepLoop(stop)
}

// Stop halts the sweeper and waits for the in-flight pass to finish.
func (e *matchmakingEngine) Stop() {
	e.runMu.Lock()
	if !e.running {
		e.runMu.Unlock()
		return
	}
	e.running = false
	stop := e.stopChan
	e.runMu.Unlock()

	close(stop)
	e.wg.Wait()
	logrus.Info("expiration sweeper stopped")
}

func (e *matchmakingEngine) sweepLoop(stop <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			scope := envelope.NewRootScope(context.Background(), "defaultEngine.expireSweep")
			e.expireStale(scope)
			scope.Finish()
		case <-stop:
			return
		}
	}
}

// expireStale transitions waiting requests older than the TTL to expired
// and removes them from their partition, with the same atomic discipline
// as cancellation. Returns the number of expired requests.
func (e *matchmakingEngine) expireStale(rootScope *envelope.Scope) int {
	scope := rootScope.NewChildScope("defaultEngine.expireStale")
	defer scope.Finish()

	if e.rules.RequestTTLSecond <= 0 {
		return 0
	}
	ttl := time.Duration(e.rules.RequestTTLSecond) * time.Second
	now := Now()
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	expired := 0
	for matchType, part := range e.partitions {
		for _, request := range part.snapshot() {
			if now.Sub(request.CreatedAt) < ttl {
				continue
			}
			if err := e.registry.transition(request.ID, matchmaking.RequestStatusExpired, ""); err != nil {
				continue
			}
			part.remove(request.ID)
			e.metrics.AddRequestExpired(string(matchType))
			e.metrics.AddUnmatchedReason(string(matchType), constants.ReasonRequestExpired)
			expired++
			scope.Log.WithField("requestID", request.ID).Info("request expired")
		}
		e.updateQueueDepthLocked(matchType)
	}

	if expired > 0 {
		e.metrics.AddPairScanElapsedTimeMs("all", constants.ExpireSweepFunction, time.Since(start))
	}

	return expired
}
