// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"github.com/elliotchance/pie/v2"

	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
)

// partition is the FIFO waiting pool for one match type. It holds waiting
// requests only; membership changes in the same critical section as the
// registry transition, so partition and registry never diverge.
//
// Like the registry, the partition is unlocked, the engine mutex
// serializes all access.
type partition struct {
	matchType matchmaking.MatchType
	requests  []*matchmaking.MatchRequest
}

func newPartition(matchType matchmaking.MatchType) *partition {
	return &partition{matchType: matchType}
}

func (p *partition) enqueue(request *matchmaking.MatchRequest) {
	p.requests = append(p.requests, request)
}

// remove is idempotent, removing an absent id is a no-op since a
// concurrent pairing may have already taken the request out.
func (p *partition) remove(id string) {
	for i, request := range p.requests {
		if request.ID == id {
			p.requests = append(p.requests[:i], p.requests[i+1:]...)
			return
		}
	}
}

// snapshot returns the waiting requests ordered oldest first. Enqueue
// order already follows join time, the sort keeps the ordering stable
// even if admission timestamps arrive skewed.
func (p *partition) snapshot() []*matchmaking.MatchRequest {
	snap := make([]*matchmaking.MatchRequest, len(p.requests))
	copy(snap, p.requests)

	return pie.SortStableUsing(snap, func(a, b *matchmaking.MatchRequest) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func (p *partition) size() int {
	return len(p.requests)
}

// position returns the 1-based FIFO position of a request, 0 if absent.
func (p *partition) position(id string) int {
	for i, request := range p.snapshot() {
		if request.ID == id {
			return i + 1
		}
	}
	return 0
}
