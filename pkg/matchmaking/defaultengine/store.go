// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package defaultengine

import (
	"github.com/oklog/ulid/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/chainchess/matchmaking-engine/pkg/matchmaking"
)

// matchStore holds finalized matches for retrieval by id. Matches are
// immutable and never evicted here, durable persistence is the job of the
// collaborator that copies them out.
type matchStore struct {
	matches *gocache.Cache
}

func newMatchStore() *matchStore {
	return &matchStore{
		matches: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *matchStore) put(match matchmaking.Match) {
	s.matches.Set(match.ID, match, gocache.NoExpiration)
}

func (s *matchStore) get(id string) (matchmaking.Match, bool) {
	value, ok := s.matches.Get(id)
	if !ok {
		return matchmaking.Match{}, false
	}
	match, ok := value.(matchmaking.Match)
	return match, ok
}

// newMatchID generates a lexicographically time-sortable match id.
func newMatchID() string {
	return ulid.Make().String()
}
