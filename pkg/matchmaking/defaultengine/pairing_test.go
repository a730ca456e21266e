// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/require"

	"github.com/chainchess/matchmaking-engine/pkg/config"
	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
	"github.com/chainchess/matchmaking-engine/pkg/testsetup"
	"github.com/chainchess/matchmaking-engine/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultMaxEloDiff:         100,
		MaxEloDiffCap:             400,
		WideningIntervalSecond:    10,
		WideningStepElo:           25,
		RequestTTLSecond:          300,
		SweepIntervalSecond:       30,
		DefaultWaitEstimateSecond: 15,
	}
}

func newTestEngine(t *testing.T, cfg *config.Config) *matchmakingEngine {
	t.Helper()
	engine, err := New(cfg, testsetup.NewMetrics())
	require.NoError(t, err)
	return engine.(*matchmakingEngine)
}

func TestPairingWithinEloBound(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	resultA, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA",
		Elo:           1500,
		MatchType:     matchmaking.MatchTypeOpen,
		MaxEloDiff:    swag.Int(50),
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, resultA.QueueStatus.Status)
	require.Equal(t, 1, resultA.QueueStatus.Position)

	// diff 40 <= min(50, 100), pairs on B's join
	resultB, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB",
		Elo:           1540,
		MatchType:     matchmaking.MatchTypeOpen,
		MaxEloDiff:    swag.Int(100),
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusMatched, resultB.QueueStatus.Status)
	require.NotEmpty(t, resultB.QueueStatus.MatchID)

	statusA, err := engine.GetQueueStatus(scope, resultA.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusMatched, statusA.Status)
	require.Equal(t, resultB.QueueStatus.MatchID, statusA.MatchID)

	match, err := engine.GetMatch(scope, resultB.QueueStatus.MatchID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.MatchTypeOpen, match.MatchType)
	wallets := []string{match.Players[0].WalletAddress, match.Players[1].WalletAddress}
	require.Contains(t, wallets, "0xA")
	require.Contains(t, wallets, "0xB")
}

func TestPairingRespectsStricterBound(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	resultA, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA",
		Elo:           1500,
		MatchType:     matchmaking.MatchTypeOpen,
		MaxEloDiff:    swag.Int(10),
	})
	require.NoError(t, err)

	// diff 40 > min(10, 100), both keep waiting
	resultB, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB",
		Elo:           1540,
		MatchType:     matchmaking.MatchTypeOpen,
		MaxEloDiff:    swag.Int(100),
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, resultA.QueueStatus.Status)
	require.Equal(t, matchmaking.RequestStatusWaiting, resultB.QueueStatus.Status)
	require.Equal(t, 2, resultB.QueueStatus.Position)
}

func TestPairingPrefersEarliestJoinedCounterpart(t *testing.T) {
	defer func() { Now = time.Now }()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	// B and C are both compatible with pivot A; B joined first and wins
	Now = func() time.Time { return base }
	resultB, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB", Elo: 1520, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)

	Now = func() time.Time { return base.Add(time.Second) }
	resultC, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xC", Elo: 2400, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)

	Now = func() time.Time { return base.Add(2 * time.Second) }
	resultA, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA", Elo: 1500, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusMatched, resultA.QueueStatus.Status)

	match, err := engine.GetMatch(scope, resultA.QueueStatus.MatchID)
	require.NoError(t, err)
	require.True(t, match.References(resultB.RequestID))
	require.False(t, match.References(resultC.RequestID))

	statusC, err := engine.GetQueueStatus(scope, resultC.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, statusC.Status)
}

func TestWideningPairsStarvedRequests(t *testing.T) {
	defer func() { Now = time.Now }()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	Now = func() time.Time { return base }
	resultA, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA", Elo: 1000, MatchType: matchmaking.MatchTypeOpen,
		MaxEloDiff: swag.Int(10),
	})
	require.NoError(t, err)

	resultB, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB", Elo: 1200, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, resultB.QueueStatus.Status)

	// gap 200; A reaches 10+8*25=210 and B 100+8*25=300 after 80s, the
	// stricter side crosses the gap and the pair resolves
	Now = func() time.Time { return base.Add(80 * time.Second) }
	engine.mu.Lock()
	engine.pairScanLocked(scope, matchmaking.MatchTypeOpen)
	engine.mu.Unlock()

	statusA, err := engine.GetQueueStatus(scope, resultA.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusMatched, statusA.Status)

	statusB, err := engine.GetQueueStatus(scope, resultB.RequestID)
	require.NoError(t, err)
	require.Equal(t, statusA.MatchID, statusB.MatchID)
}

func TestWideningNotYetActiveKeepsWaiting(t *testing.T) {
	defer func() { Now = time.Now }()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	Now = func() time.Time { return base }
	resultA, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA", Elo: 1000, MatchType: matchmaking.MatchTypeOpen,
		MaxEloDiff: swag.Int(10),
	})
	require.NoError(t, err)

	_, err = engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB", Elo: 1200, MatchType: matchmaking.MatchTypeOpen,
	})
	require.NoError(t, err)

	// at 70s the stricter side is 10+7*25=185, still below the 200 gap
	Now = func() time.Time { return base.Add(70 * time.Second) }
	engine.mu.Lock()
	engine.pairScanLocked(scope, matchmaking.MatchTypeOpen)
	engine.mu.Unlock()

	statusA, err := engine.GetQueueStatus(scope, resultA.RequestID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, statusA.Status)
}

func TestMutualInvitesPairOnJoin(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	resultA, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xA", Elo: 900, MatchType: matchmaking.MatchTypeInvite,
		InviteAddress: "0xB",
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusWaiting, resultA.QueueStatus.Status)

	// reciprocal invite pairs immediately, ELO gap does not matter
	resultB, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
		WalletAddress: "0xB", Elo: 2600, MatchType: matchmaking.MatchTypeInvite,
		InviteAddress: "0xA",
	})
	require.NoError(t, err)
	require.Equal(t, matchmaking.RequestStatusMatched, resultB.QueueStatus.Status)

	match, err := engine.GetMatch(scope, resultB.QueueStatus.MatchID)
	require.NoError(t, err)
	require.Equal(t, matchmaking.MatchTypeInvite, match.MatchType)
	require.True(t, match.References(resultA.RequestID))
}

func TestAtMostOneMatchPerRequest(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	requestIDs := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		result, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
			WalletAddress: "0x" + string(rune('A'+i)),
			Elo:           1500 + i,
			MatchType:     matchmaking.MatchTypeOpen,
		})
		require.NoError(t, err)
		requestIDs = append(requestIDs, result.RequestID)
	}

	matchIDs := make(map[string]bool)
	for _, id := range requestIDs {
		status, err := engine.GetQueueStatus(scope, id)
		require.NoError(t, err)
		require.Equal(t, matchmaking.RequestStatusMatched, status.Status)
		matchIDs[status.MatchID] = true
	}
	require.Len(t, matchIDs, 5)

	// every request is referenced by exactly one match
	for _, id := range requestIDs {
		references := 0
		for matchID := range matchIDs {
			match, err := engine.GetMatch(scope, matchID)
			require.NoError(t, err)
			if match.References(id) {
				references++
			}
		}
		require.Equal(t, 1, references, "request %s", id)
	}
}

func TestPartitionAndRegistryNeverDiverge(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	engine := newTestEngine(t, testConfig())

	// the first two pair, the rest are too far apart and keep waiting
	for i, elo := range []int{1000, 1040, 1500, 1900, 2300, 2700, 3100} {
		_, err := engine.JoinQueue(scope, matchmaking.JoinTicket{
			WalletAddress: "0x" + string(rune('A'+i)),
			Elo:           elo,
			MatchType:     matchmaking.MatchTypeOpen,
		})
		require.NoError(t, err)
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	for _, request := range engine.registry.requests {
		inPartition := utils.Contains(
			engine.partitions[request.MatchType].snapshot(), request)
		if request.Status == matchmaking.RequestStatusWaiting {
			require.True(t, inPartition, "waiting request %s missing from partition", request.ID)
		} else {
			require.False(t, inPartition, "resolved request %s still queued", request.ID)
		}
	}
}
