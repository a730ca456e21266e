// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chainchess/matchmaking-engine/pkg/common"
	"github.com/chainchess/matchmaking-engine/pkg/constants"
	"github.com/chainchess/matchmaking-engine/pkg/envelope"
	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
)

// pairScanLocked walks the partition in FIFO order and greedily pairs
// each unresolved pivot with its earliest-joined compatible counterpart.
// Runs after every mutation that can create a pairing opportunity, inside
// the mutating caller's critical section.
func (e *matchmakingEngine) pairScanLocked(scope *envelope.Scope, matchType matchmaking.MatchType) {
	start := time.Now()
	defer func() {
		e.metrics.AddPairScanElapsedTimeMs(string(matchType), constants.PairScanFunction, time.Since(start))
	}()

	snap := e.partitions[matchType].snapshot()
	if len(snap) < 2 {
		e.metrics.AddUnmatchedReason(string(matchType), constants.ReasonNotEnoughRequests)
		return
	}

	now := Now()
	resolved := make(map[string]bool)
	for i, pivot := range snap {
		if resolved[pivot.ID] {
			continue
		}

		matched := false
		for _, candidate := range snap[i+1:] {
			if resolved[candidate.ID] {
				continue
			}
			if !e.pairable(pivot, candidate, matchType, now) {
				continue
			}

			e.finalizePairLocked(scope, pivot, candidate, matchType)
			resolved[pivot.ID] = true
			resolved[candidate.ID] = true
			matched = true
			break
		}

		if !matched {
			e.metrics.AddUnmatchedReason(string(matchType), unmatchedReason(matchType))
		}
	}
}

func (e *matchmakingEngine) pairable(pivot, candidate *matchmaking.MatchRequest, matchType matchmaking.MatchType, now time.Time) bool {
	if matchType == matchmaking.MatchTypeInvite {
		return mutualInvite(pivot, candidate)
	}
	return openCompatible(pivot, candidate, e.rules, now)
}

func unmatchedReason(matchType matchmaking.MatchType) string {
	if matchType == matchmaking.MatchTypeInvite {
		return constants.ReasonNoMutualInvite
	}
	return constants.ReasonNoCompatiblePartner
}

// finalizePairLocked resolves two waiting requests into a match: both are
// transitioned, both leave their partition and the match is stored, all
// in the caller's critical section so no caller can observe a request
// that is matched but still queued.
func (e *matchmakingEngine) finalizePairLocked(scope *envelope.Scope, a, b *matchmaking.MatchRequest, matchType matchmaking.MatchType) matchmaking.Match {
	now := Now()
	match := matchmaking.Match{
		ID:         newMatchID(),
		MatchType:  matchType,
		RequestIDs: []string{a.ID, b.ID},
		Players:    []matchmaking.Player{a.Player, b.Player},
		CreatedAt:  now,
	}

	// both requests were observed waiting under the engine lock, the
	// transitions cannot fail
	_ = e.registry.transition(a.ID, matchmaking.RequestStatusMatched, match.ID)
	_ = e.registry.transition(b.ID, matchmaking.RequestStatusMatched, match.ID)

	part := e.partitions[matchType]
	part.remove(a.ID)
	part.remove(b.ID)

	e.store.put(match)
	e.waits.record(now.Sub(a.CreatedAt))
	e.waits.record(now.Sub(b.CreatedAt))
	e.updateQueueDepthLocked(matchType)
	e.metrics.AddMatchCreated(string(matchType))

	scope.SetAttributes("matchID", match.ID)
	scope.Log.WithFields(logrus.Fields{
		"matchID":   match.ID,
		"matchType": string(matchType),
		"wallets":   common.LogJSONFormatter([]string{a.Player.WalletAddress, b.Player.WalletAddress}),
	}).Info("match created")

	return match
}
