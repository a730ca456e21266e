// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

// Package defaultengine provides the default implementation of the
// matchmaking Service: the request registry, queue partitions, pairing
// engine, match store and expiration sweeper.
package defaultengine

import (
	"time"

	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
	"github.com/chainchess/matchmaking-engine/pkg/models"
	"github.com/chainchess/matchmaking-engine/pkg/utils"
)

// Now is a variable that holds the current time function.
// This can be overridden for testing purposes.
var Now = time.Now

// baseBound returns the request's own ELO gap tolerance before widening.
func baseBound(request *matchmaking.MatchRequest, rules models.Rules) int {
	if request.MaxEloDiff != nil {
		return *request.MaxEloDiff
	}
	return rules.DefaultMaxEloDiff
}

// widenedBound returns the request's ELO gap tolerance at the given time.
// The tolerance grows by WideningStepElo for every full
// WideningIntervalSecond the request has waited, capped at MaxEloDiffCap.
// It never shrinks below the request's own base bound.
func widenedBound(request *matchmaking.MatchRequest, rules models.Rules, now time.Time) int {
	bound := baseBound(request, rules)
	if rules.WideningIntervalSecond <= 0 || rules.WideningStepElo <= 0 {
		return bound
	}

	waited := now.Sub(request.CreatedAt)
	if waited <= 0 {
		return bound
	}

	steps := int(waited / (time.Duration(rules.WideningIntervalSecond) * time.Second))
	widened := bound + steps*rules.WideningStepElo
	if rules.MaxEloDiffCap > 0 && widened > rules.MaxEloDiffCap {
		widened = rules.MaxEloDiffCap
	}
	if widened < bound {
		return bound
	}
	return widened
}

// effectiveBound is the pair tolerance: the stricter of the two widened
// bounds, so a pairing never exceeds what either side is willing to accept.
func effectiveBound(a, b *matchmaking.MatchRequest, rules models.Rules, now time.Time) int {
	return utils.MinInt(widenedBound(a, rules, now), widenedBound(b, rules, now))
}

// openCompatible reports whether two waiting open requests may be paired.
func openCompatible(a, b *matchmaking.MatchRequest, rules models.Rules, now time.Time) bool {
	if a.Player.WalletAddress == b.Player.WalletAddress {
		return false
	}
	gap := utils.AbsInt(a.Player.Elo - b.Player.Elo)
	return gap <= effectiveBound(a, b, rules, now)
}

// mutualInvite reports whether two waiting invite requests target each
// other. Mutual consent pairs regardless of ELO gap.
func mutualInvite(a, b *matchmaking.MatchRequest) bool {
	if a.Player.WalletAddress == b.Player.WalletAddress {
		return false
	}
	return a.InviteAddress == b.Player.WalletAddress &&
		b.InviteAddress == a.Player.WalletAddress
}
