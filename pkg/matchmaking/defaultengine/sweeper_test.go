// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
	"github.com/chainchess/matchmaking-engine/pkg/testsetup"
)

func TestExpireStaleRequests(t *testing.T) {
	defer func() { Now = time.Now }()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig()) // 300s TTL

	Now = func() time.Time { return base }
	stale, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA", Elo: 1000, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)

	Now = func() time.Time { return base.Add(290 * time.Second) }
	fresh, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB", Elo: 3000, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)

	Now = func() time.Time { return base.Add(301 * time.Second) }
	require.Equal(t, 1, engine.expireStale(scope))

	staleStatus, err := engine.GetQueueStatus(scope, stale.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusExpired, staleStatus.Status)

	freshStatus, err := engine.GetQueueStatus(scope, fresh.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, freshStatus.Status)
	require.Equal(t, 1, freshStatus.Position)

	// a second pass finds nothing left to expire
	require.Equal(t, 0, engine.expireStale(scope))
}

func TestExpireStaleDisabledWithZeroTTL(t *testing.T) {
	defer func() { Now = time.Now }()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	scope := testsetup.NewTestScope()
	defer scope.Finish()

	cfg := testConfig()
	cfg.RequestTTLSecond = 0
	engine := newTestEngine(t, cfg)

	Now = func() time.Time { return base }
	result, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA", Elo: 1000, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)

	Now = func() time.Time { return base.Add(24 * time.Hour) }
	require.Equal(t, 0, engine.expireStale(scope))

	status, err := engine.GetQueueStatus(scope, result.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, status.Status)
}

func TestSweeperStartStop(t *testing.T) {
	engine := newTestEngine(t, testConfig())

	engine.Start()
	engine.Start() // second start is a no-op
	engine.Stop()
	engine.Stop() // second stop is a no-op

	// a restart hands the new loop its own stop channel
	engine.Start()
	engine.Stop()
}
