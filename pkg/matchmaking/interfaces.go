// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaking

import (
	"github.com/chainchess/matchmaking-engine/pkg/envelope"
)

/*
Service is the matchmaking facade consumed by the HTTP boundary. The
boundary owns authentication, rate limiting and wire serialization; the
engine owns admission, pairing and request lifecycle. Every method is safe
to call from arbitrarily many goroutines.

Negative outcomes that are expected under concurrency (cancelling a
request that just got matched, accepting an invite that was already
resolved) surface as ErrRequestNotFound or a false return, never as hard
errors.
*/
type Service interface {
	// JoinQueue admits a player into the queue partition selected by the
	// ticket's match type and runs an inline pairing pass, so the returned
	// status may already be matched.
	JoinQueue(scope *envelope.Scope, ticket JoinTicket) (JoinResult, error)

	// GetQueueStatus returns the current view of a request.
	GetQueueStatus(scope *envelope.Scope, requestID string) (QueueStatus, error)

	// CancelRequest transitions a waiting request to cancelled. It returns
	// false when the request is unknown or already resolved.
	CancelRequest(scope *envelope.Scope, requestID string) bool

	// AcceptPrivateInvite resolves an open invite against the accepting
	// player, with no ELO bound. Explicit consent overrides compatibility.
	AcceptPrivateInvite(scope *envelope.Scope, inviterRequestID string, accepting Player) (Match, error)

	// GetMatch returns a finalized match by id.
	GetMatch(scope *envelope.Scope, matchID string) (Match, error)
}

// Engine is the full engine contract: the caller-facing Service plus the
// lifecycle of the background expiration sweeper.
type Engine interface {
	Service

	Start()
	Stop()
}
