// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaking

import (
	"errors"
)

var (
	// ErrRequestNotFound covers both unknown request ids and invites that
	// were already resolved, callers cannot tell the two apart.
	ErrRequestNotFound = errors.New("matchmaking request not found")
	ErrMatchNotFound   = errors.New("match not found")

	// ErrInvalidTransition is an attempt to mutate an already-resolved
	// request. Expected under concurrency, treated as a benign negative.
	ErrInvalidTransition = errors.New("request already resolved")

	// ErrDuplicateID should be unreachable with engine-generated ids.
	ErrDuplicateID = errors.New("request id already registered")

	ErrInvalidWalletAddress = errors.New("wallet address must not be empty")
	ErrInvalidElo           = errors.New("elo must be a positive number")
	ErrInvalidEloDiff       = errors.New("max elo diff must not be negative")
	ErrMissingInviteTarget  = errors.New("invite request needs an invite address")
	ErrSelfInvite           = errors.New("invite target cannot be the requesting wallet")
	ErrAlreadyQueued        = errors.New("wallet already has a waiting request")
	ErrInvalidMatchType     = errors.New("unknown match type")
)

var errorCodeMap = map[error]int{
	ErrRequestNotFound:      520201,
	ErrMatchNotFound:        520202,
	ErrInvalidTransition:    520203,
	ErrDuplicateID:          520204,
	ErrInvalidWalletAddress: 520205,
	ErrInvalidElo:           520206,
	ErrInvalidEloDiff:       520207,
	ErrMissingInviteTarget:  520208,
	ErrSelfInvite:           520209,
	ErrAlreadyQueued:        520210,
	ErrInvalidMatchType:     520211,
}

// ErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ErrorCode(err error) int {
	for e, code := range errorCodeMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return 20002
}
