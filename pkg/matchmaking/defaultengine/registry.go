// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
)

// registry owns the canonical record of every matchmaking request and is
// the serialization point for status transitions. Requests are never
// deleted, resolved requests stay readable for status queries.
//
// The registry carries no lock of its own: every call happens under the
// engine mutex, in the same critical section as the partition mutation it
// belongs to.
type registry struct {
	requests        map[string]*matchmaking.MatchRequest
	waitingByWallet map[string]string // wallet -> waiting request id
}

func newRegistry() *registry {
	return &registry{
		requests:        make(map[string]*matchmaking.MatchRequest),
		waitingByWallet: make(map[string]string),
	}
}

// register stores a new waiting request. A duplicate id is a programming
// invariant violation, ids are engine-generated.
func (r *registry) register(request *matchmaking.MatchRequest) error {
	if _, exists := r.requests[request.ID]; exists {
		return matchmaking.ErrDuplicateID
	}

	r.requests[request.ID] = request
	if request.Status == matchmaking.RequestStatusWaiting {
		// keep the first waiting request as the wallet's active one, a
		// synthesized invite-accept request must not clobber it
		if _, taken := r.waitingByWallet[request.Player.WalletAddress]; !taken {
			r.waitingByWallet[request.Player.WalletAddress] = request.ID
		}
	}
	return nil
}

func (r *registry) get(id string) (*matchmaking.MatchRequest, bool) {
	request, ok := r.requests[id]
	return request, ok
}

// waitingRequestFor returns the id of the wallet's waiting request, if any.
func (r *registry) waitingRequestFor(wallet string) (string, bool) {
	id, ok := r.waitingByWallet[wallet]
	return id, ok
}

// transition advances a request to a final status. It only succeeds while
// the request is still waiting, resolved statuses are monotonic.
func (r *registry) transition(id string, status matchmaking.RequestStatus, matchID string) error {
	request, ok := r.requests[id]
	if !ok {
		return matchmaking.ErrRequestNotFound
	}
	if request.Resolved() {
		return matchmaking.ErrInvalidTransition
	}

	request.Status = status
	request.MatchID = matchID
	if r.waitingByWallet[request.Player.WalletAddress] == id {
		delete(r.waitingByWallet, request.Player.WalletAddress)
	}
	return nil
}
