// Package rl exposes the engine to learning agents: a stable integer index
// for every action, a legality mask over that index space, and a fixed-layout
// observation encoding of a state.
package rl

import (
	"fmt"
	"sync"

	"catan/game"
)

// ActionSpace maps actions to stable integer indices. A deterministic base
// catalog covers every action whose payload is small enough to enumerate;
// combinatorial payloads (discard multisets, road-building pairs, multi-lot
// trades) are registered dynamically, first come first indexed. Two spaces
// fed the same action sequence assign identical indices.
type ActionSpace struct {
	mu      sync.RWMutex
	actions []game.Action
	index   map[game.Action]int
}

func NewActionSpace() *ActionSpace {
	s := &ActionSpace{index: make(map[game.Action]int)}
	for _, a := range baseCatalog() {
		s.register(a)
	}
	return s
}

// baseCatalog enumerates every statically known action in a fixed order.
func baseCatalog() []game.Action {
	var catalog []game.Action
	catalog = append(catalog, game.Action{Type: game.RollDice})
	catalog = append(catalog, game.Action{Type: game.EndTurn})
	for t := game.TileID(0); t < game.NumTiles; t++ {
		catalog = append(catalog,
			game.Action{Type: game.MoveRobber, Tile: t, Steal: game.NoPlayer},
			game.Action{Type: game.MoveRobber, Tile: t, Steal: stealOpponent})
	}
	for e := game.EdgeID(0); e < game.NumEdges; e++ {
		catalog = append(catalog, game.Action{Type: game.BuildRoad, Edge: e})
	}
	for v := game.VertexID(0); v < game.NumVertices; v++ {
		catalog = append(catalog, game.Action{Type: game.BuildSettlement, Vertex: v})
	}
	for v := game.VertexID(0); v < game.NumVertices; v++ {
		catalog = append(catalog, game.Action{Type: game.BuildCity, Vertex: v})
	}
	catalog = append(catalog,
		game.Action{Type: game.BuyDevelopmentCard},
		game.Action{Type: game.PlayKnight})
	for a := game.Resource(0); a < game.NumResources; a++ {
		for b := a; b < game.NumResources; b++ {
			claim := game.Single(a, 1).Add(game.Single(b, 1))
			catalog = append(catalog, game.Action{Type: game.PlayYearOfPlenty, Receive: claim})
		}
	}
	for r := game.Resource(0); r < game.NumResources; r++ {
		catalog = append(catalog, game.Action{Type: game.PlayMonopoly, Resource: r})
	}
	for give := game.Resource(0); give < game.NumResources; give++ {
		for receive := game.Resource(0); receive < game.NumResources; receive++ {
			if give == receive {
				continue
			}
			catalog = append(catalog, game.Action{
				Type:    game.TradeBank,
				Give:    game.Single(give, 1),
				Receive: game.Single(receive, 1),
			})
			catalog = append(catalog, game.Action{
				Type:    game.OfferPlayerTrade,
				Give:    game.Single(give, 1),
				Receive: game.Single(receive, 1),
			})
		}
	}
	catalog = append(catalog,
		game.Action{Type: game.AcceptPlayerTrade},
		game.Action{Type: game.DeclinePlayerTrade})
	return catalog
}

// stealOpponent is the ego-centric stand-in for "the opponent" in canonical
// action keys. Decode resolves it against the acting player.
const stealOpponent = game.PlayerID(1)

// canonical strips state-dependent detail so equivalent actions share an
// index: forced dice are erased, steal targets become relative, and bank
// trades are keyed by resource pair with the rate left to the state.
func canonical(a game.Action) game.Action {
	switch a.Type {
	case game.RollDice:
		a.Dice = [2]int{}
	case game.MoveRobber:
		if a.Steal != game.NoPlayer {
			a.Steal = stealOpponent
		}
	case game.TradeBank:
		give, _, ok := singleKind(a.Give)
		receive, _, okR := singleKind(a.Receive)
		if ok && okR {
			a.Give = game.Single(give, 1)
			a.Receive = game.Single(receive, 1)
		}
	}
	return a
}

func singleKind(d game.Freqdeck) (game.Resource, int, bool) {
	found := game.Resource(-1)
	n := 0
	for r := game.Resource(0); r < game.NumResources; r++ {
		if d[r] > 0 {
			if found >= 0 {
				return 0, 0, false
			}
			found = r
			n = d[r]
		}
	}
	return found, n, found >= 0
}

func (s *ActionSpace) register(a game.Action) int {
	if i, ok := s.index[a]; ok {
		return i
	}
	i := len(s.actions)
	s.actions = append(s.actions, a)
	s.index[a] = i
	return i
}

// Size is the current number of indexed actions. It grows as combinatorial
// payloads are registered.
func (s *ActionSpace) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.actions)
}

// Encode returns the index for an action, registering it if unseen.
func (s *ActionSpace) Encode(a game.Action) int {
	key := canonical(a)
	s.mu.RLock()
	i, ok := s.index[key]
	s.mu.RUnlock()
	if ok {
		return i
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register(key)
}

// Decode maps an index back to a concrete action for the given state. It is
// the inverse of Encode up to canonicalization: relative steal targets and
// bank trade rates are resolved against the state.
func (s *ActionSpace) Decode(i int, gs *game.GameState) (game.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.actions) {
		return game.Action{}, fmt.Errorf("action index %d out of range [0,%d)", i, len(s.actions))
	}
	a := s.actions[i]
	switch a.Type {
	case game.MoveRobber:
		if a.Steal != game.NoPlayer {
			a.Steal = gs.Current.Opponent()
		}
	case game.TradeBank:
		give, _, ok := singleKind(a.Give)
		if ok {
			rate := gs.Board.TradeRate(give, gs.CurrentPlayer().BuildingVertices())
			a.Give = game.Single(give, rate)
		}
	}
	return a, nil
}

// LegalMask returns a bitmap over the index space marking the legal actions
// of gs. Unseen combinatorial actions are registered first so the mask always
// covers the full legal set.
func (s *ActionSpace) LegalMask(gs *game.GameState) []bool {
	legal := gs.LegalActions()
	indices := make([]int, len(legal))
	for i, a := range legal {
		indices[i] = s.Encode(a)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	mask := make([]bool, len(s.actions))
	for _, i := range indices {
		mask[i] = true
	}
	return mask
}
