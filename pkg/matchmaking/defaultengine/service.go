// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chainchess/matchmaking-engine/pkg/config"
	"github.com/chainchess/matchmaking-engine/pkg/constants"
	"github.com/chainchess/matchmaking-engine/pkg/envelope"
	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
	"github.com/chainchess/matchmaking-engine/pkg/metrics"
	"github.com/chainchess/matchmaking-engine/pkg/models"
	"github.com/chainchess/matchmaking-engine/pkg/utils"
)

// matchmakingEngine implements the matchmaking.Engine interface. A single
// mutex guards the registry, the partitions and the wait samples: every
// compound mutation (admit+enqueue, pair+transition+remove, cancel+remove,
// expire+remove) runs as one critical section, so registry status and
// partition membership never diverge.
type matchmakingEngine struct {
	mu sync.Mutex

	rules               models.Rules
	defaultWaitEstimate int
	registry            *registry
	partitions          map[matchmaking.MatchType]*partition
	store               *matchStore
	waits               *waitStats
	metrics             metrics.MatchmakingMetrics

	sweepInterval time.Duration

	runMu    sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New returns the default engine for the given configuration. The metrics
// collection must not be nil, tests use the testsetup stub.
func New(cfg *config.Config, collection metrics.MatchmakingMetrics) (matchmaking.Engine, error) {
	rules := models.Rules{
		DefaultMaxEloDiff:      cfg.DefaultMaxEloDiff,
		MaxEloDiffCap:          cfg.MaxEloDiffCap,
		WideningIntervalSecond: cfg.WideningIntervalSecond,
		WideningStepElo:        cfg.WideningStepElo,
		RequestTTLSecond:       cfg.RequestTTLSecond,
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	sweepInterval := time.Duration(cfg.SweepIntervalSecond) * time.Second
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Second
	}

	return &matchmakingEngine{
		rules:               rules.Copy(),
		defaultWaitEstimate: cfg.DefaultWaitEstimateSecond,
		registry:            newRegistry(),
		partitions: map[matchmaking.MatchType]*partition{
			matchmaking.MatchTypeOpen:   newPartition(matchmaking.MatchTypeOpen),
			matchmaking.MatchTypeInvite: newPartition(matchmaking.MatchTypeInvite),
		},
		store:         newMatchStore(),
		waits:         newWaitStats(),
		metrics:       collection,
		sweepInterval: sweepInterval,
	}, nil
}

// JoinQueue admits the ticket, enqueues it and runs an inline pairing
// pass before returning, so pairing latency is bounded by arrival rate
// rather than a polling interval.
func (e *matchmakingEngine) JoinQueue(rootScope *envelope.Scope, ticket matchmaking.JoinTicket) (matchmaking.JoinResult, error) {
	scope := rootScope.NewChildScope("defaultEngine.JoinQueue")
	defer scope.Finish()

	if err := validateTicket(ticket); err != nil {
		scope.Log.WithField("wallet", ticket.WalletAddress).Warnf("join rejected: %s", err)
		return matchmaking.JoinResult{}, err
	}

	now := Now()
	request := &matchmaking.MatchRequest{
		ID: utils.GenerateRequestID(),
		Player: matchmaking.Player{
			WalletAddress: ticket.WalletAddress,
			Elo:           ticket.Elo,
			JoinTime:      now,
		},
		MatchType:     ticket.MatchType,
		InviteAddress: ticket.InviteAddress,
		MaxEloDiff:    ticket.MaxEloDiff,
		Status:        matchmaking.RequestStatusWaiting,
		CreatedAt:     now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// one active request per wallet
	if _, queued := e.registry.waitingRequestFor(ticket.WalletAddress); queued {
		return matchmaking.JoinResult{}, matchmaking.ErrAlreadyQueued
	}
	if err := e.registry.register(request); err != nil {
		// unreachable with engine-generated ids, a programming error
		scope.Log.WithField("requestID", request.ID).Errorf("register failed: %s", err)
		return matchmaking.JoinResult{}, err
	}

	e.partitions[request.MatchType].enqueue(request)
	e.updateQueueDepthLocked(request.MatchType)

	scope.SetAttributes("requestID", request.ID)
	scope.Log.WithFields(logrus.Fields{
		"requestID": request.ID,
		"matchType": string(request.MatchType),
		"elo":       request.Player.Elo,
	}).Info("request admitted")

	e.pairScanLocked(scope, request.MatchType)

	return matchmaking.JoinResult{
		RequestID:   request.ID,
		QueueStatus: e.queueStatusLocked(request),
	}, nil
}

// GetQueueStatus returns the current view of a request. Resolved requests
// stay queryable, only an unknown id is reported as not found.
func (e *matchmakingEngine) GetQueueStatus(rootScope *envelope.Scope, requestID string) (matchmaking.QueueStatus, error) {
	scope := rootScope.NewChildScope("defaultEngine.GetQueueStatus")
	defer scope.Finish()

	e.mu.Lock()
	defer e.mu.Unlock()

	request, ok := e.registry.get(requestID)
	if !ok {
		return matchmaking.QueueStatus{}, matchmaking.ErrRequestNotFound
	}

	return e.queueStatusLocked(request), nil
}

// CancelRequest is best-effort: a cancel racing a pairing pass may lose
// the race, which renders as false here and matched in the status query.
func (e *matchmakingEngine) CancelRequest(rootScope *envelope.Scope, requestID string) bool {
	scope := rootScope.NewChildScope("defaultEngine.CancelRequest")
	defer scope.Finish()

	e.mu.Lock()
	defer e.mu.Unlock()

	request, ok := e.registry.get(requestID)
	if !ok {
		return false
	}
	if err := e.registry.transition(requestID, matchmaking.RequestStatusCancelled, ""); err != nil {
		// already resolved, a normal outcome under concurrency
		return false
	}

	e.partitions[request.MatchType].remove(requestID)
	e.updateQueueDepthLocked(request.MatchType)
	e.metrics.AddUnmatchedReason(string(request.MatchType), constants.ReasonRequestCancelled)
	scope.Log.WithField("requestID", requestID).Info("request cancelled")

	return true
}

// AcceptPrivateInvite synthesizes the accepting player's request and
// resolves it against the inviter's waiting request in one critical
// section. No ELO bound applies, consent overrides compatibility.
func (e *matchmakingEngine) AcceptPrivateInvite(rootScope *envelope.Scope, inviterRequestID string, accepting matchmaking.Player) (matchmaking.Match, error) {
	scope := rootScope.NewChildScope("defaultEngine.AcceptPrivateInvite")
	defer scope.Finish()

	if strings.TrimSpace(accepting.WalletAddress) == "" {
		return matchmaking.Match{}, matchmaking.ErrInvalidWalletAddress
	}
	if accepting.Elo <= 0 {
		return matchmaking.Match{}, matchmaking.ErrInvalidElo
	}

	now := Now()
	if accepting.JoinTime.IsZero() {
		accepting.JoinTime = now
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	inviter, ok := e.registry.get(inviterRequestID)
	if !ok || inviter.Resolved() {
		// an already-resolved invite renders the same as an unknown one
		return matchmaking.Match{}, matchmaking.ErrRequestNotFound
	}
	if inviter.MatchType != matchmaking.MatchTypeInvite {
		// an open request id is not an invite, accepting it would pull a
		// request out of the wrong partition
		return matchmaking.Match{}, matchmaking.ErrRequestNotFound
	}
	if inviter.Player.WalletAddress == accepting.WalletAddress {
		return matchmaking.Match{}, matchmaking.ErrSelfInvite
	}
	if inviter.InviteAddress != "" && inviter.InviteAddress != accepting.WalletAddress {
		// the invite is addressed to a different wallet
		return matchmaking.Match{}, matchmaking.ErrRequestNotFound
	}

	acceptingRequest := &matchmaking.MatchRequest{
		ID:            utils.GenerateRequestID(),
		Player:        accepting,
		MatchType:     matchmaking.MatchTypeInvite,
		InviteAddress: inviter.Player.WalletAddress,
		Status:        matchmaking.RequestStatusWaiting,
		CreatedAt:     now,
	}
	if err := e.registry.register(acceptingRequest); err != nil {
		scope.Log.WithField("requestID", acceptingRequest.ID).Errorf("register failed: %s", err)
		return matchmaking.Match{}, err
	}

	match := e.finalizePairLocked(scope, inviter, acceptingRequest, matchmaking.MatchTypeInvite)

	return match, nil
}

// GetMatch returns a finalized match by id. The store is internally
// synchronized, no engine lock is needed for this read.
func (e *matchmakingEngine) GetMatch(rootScope *envelope.Scope, matchID string) (matchmaking.Match, error) {
	scope := rootScope.NewChildScope("defaultEngine.GetMatch")
	defer scope.Finish()

	match, ok := e.store.get(matchID)
	if !ok {
		return matchmaking.Match{}, matchmaking.ErrMatchNotFound
	}

	return match, nil
}

func (e *matchmakingEngine) queueStatusLocked(request *matchmaking.MatchRequest) matchmaking.QueueStatus {
	switch request.Status {
	case matchmaking.RequestStatusWaiting:
		return matchmaking.QueueStatus{
			Status:              matchmaking.RequestStatusWaiting,
			Position:            e.partitions[request.MatchType].position(request.ID),
			EstimatedWaitSecond: e.waits.estimateSecond(e.defaultWaitEstimate),
		}
	case matchmaking.RequestStatusMatched:
		return matchmaking.QueueStatus{
			Status:  matchmaking.RequestStatusMatched,
			MatchID: request.MatchID,
		}
	default:
		return matchmaking.QueueStatus{Status: request.Status}
	}
}

func (e *matchmakingEngine) updateQueueDepthLocked(matchType matchmaking.MatchType) {
	e.metrics.SetQueueDepth(string(matchType), e.partitions[matchType].size())
}

func validateTicket(ticket matchmaking.JoinTicket) error {
	if strings.TrimSpace(ticket.WalletAddress) == "" {
		return matchmaking.ErrInvalidWalletAddress
	}
	if ticket.Elo <= 0 {
		return matchmaking.ErrInvalidElo
	}
	if ticket.MaxEloDiff != nil && *ticket.MaxEloDiff < 0 {
		return matchmaking.ErrInvalidEloDiff
	}

	switch ticket.MatchType {
	case matchmaking.MatchTypeOpen:
		return nil
	case matchmaking.MatchTypeInvite:
		if ticket.InviteAddress == "" {
			return matchmaking.ErrMissingInviteTarget
		}
		if ticket.InviteAddress == ticket.WalletAddress {
			return matchmaking.ErrSelfInvite
		}
		return nil
	default:
		return matchmaking.ErrInvalidMatchType
	}
}
