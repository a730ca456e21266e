// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package constants

const (
	PairScanFunction    = "pairScan"
	ExpireSweepFunction = "expireSweep"

	// not matched reason constants.
	ReasonNotEnoughRequests   = "not_enough_requests"
	ReasonNoCompatiblePartner = "no_compatible_partner"
	ReasonNoMutualInvite      = "no_mutual_invite"
	ReasonRequestExpired      = "request_expired"
	ReasonRequestCancelled    = "request_cancelled"
)

// WaitSampleWindow is the number of recent time-to-match samples kept for
// the wait estimate.
const WaitSampleWindow = 64
