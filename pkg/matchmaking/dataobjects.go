// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaking provides the public contract of the matchmaking
// engine: the data objects exchanged with the HTTP boundary and the
// Service interface it consumes.
package matchmaking

import (
	"time"
)

// MatchType selects which queue partition a request waits in.
type MatchType string

const (
	// MatchTypeOpen is public queue matching by ELO.
	MatchTypeOpen MatchType = "open"
	// MatchTypeInvite is direct, consent-based pairing with a specific wallet.
	MatchTypeInvite MatchType = "invite"
)

// RequestStatus is the lifecycle state of a match request. A request
// starts Waiting and resolves at most once; resolved statuses are final.
type RequestStatus string

const (
	RequestStatusWaiting   RequestStatus = "waiting"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusExpired   RequestStatus = "expired"
)

// Player is the immutable identity captured into a request at admission.
type Player struct {
	WalletAddress string    `json:"wallet_address"` // Unique player identity
	Elo           int       `json:"elo"`            // Supplied rating, the engine never computes it
	JoinTime      time.Time `json:"join_time"`      // When the player asked to play
}

// JoinTicket is the caller-supplied input to JoinQueue.
type JoinTicket struct {
	WalletAddress string    `json:"wallet_address"`
	Elo           int       `json:"elo"`
	MatchType     MatchType `json:"match_type"`
	InviteAddress string    `json:"invite_address,omitempty"` // Target wallet, invite requests only
	MaxEloDiff    *int      `json:"max_elo_diff,omitempty"`   // nil means use the engine default
}

// MatchRequest is the canonical record of one matchmaking request.
type MatchRequest struct {
	ID            string        `json:"id"`
	Player        Player        `json:"player"`
	MatchType     MatchType     `json:"match_type"`
	InviteAddress string        `json:"invite_address,omitempty"`
	MaxEloDiff    *int          `json:"max_elo_diff,omitempty"`
	Status        RequestStatus `json:"status"`
	MatchID       string        `json:"match_id,omitempty"` // Set once Status is matched
	CreatedAt     time.Time     `json:"created_at"`
}

// Resolved reports whether the request reached a final status.
func (r MatchRequest) Resolved() bool {
	return r.Status != RequestStatusWaiting
}

// Match is the immutable output of a successful pairing.
type Match struct {
	ID         string    `json:"id"`
	MatchType  MatchType `json:"match_type"`
	RequestIDs []string  `json:"request_ids"` // The two resolved request ids
	Players    []Player  `json:"players"`     // Same order as RequestIDs
	CreatedAt  time.Time `json:"created_at"`
}

// References reports whether the match resolved the given request.
func (m Match) References(requestID string) bool {
	for _, id := range m.RequestIDs {
		if id == requestID {
			return true
		}
	}
	return false
}

// QueueStatus is a point-in-time view of a request, derived rather than stored.
type QueueStatus struct {
	Status              RequestStatus `json:"status"`
	Position            int           `json:"position,omitempty"`              // 1-based FIFO position while waiting
	EstimatedWaitSecond int           `json:"estimated_wait_second,omitempty"` // Rough wait estimate while waiting
	MatchID             string        `json:"match_id,omitempty"`              // Set once the request is matched
}

// JoinResult is returned by JoinQueue: the generated request id plus the
// status right after the inline pairing pass, which may already be matched.
type JoinResult struct {
	RequestID   string      `json:"request_id"`
	QueueStatus QueueStatus `json:"queue_status"`
}
