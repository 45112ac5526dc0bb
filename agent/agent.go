// Package agent holds the move-selection policies that drive self-play: a
// seeded uniform-random baseline and an MCTS-backed searcher.
package agent

import (
	"catan/game"
	"catan/searcher"

	"golang.org/x/exp/rand"
)

// Agent picks a move for the player to act in the given state. The engine
// validates the choice against the legal set before applying it.
type Agent interface {
	FindMove(state game.State) (game.Move, searcher.MoveMetrics)
}

// Random plays a uniformly random legal move. Deterministic per seed, which
// keeps experiment runs reproducible.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) FindMove(state game.State) (game.Move, searcher.MoveMetrics) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves")
	}
	return moves[a.rng.Intn(len(moves))], searcher.MoveMetrics{}
}

// MCTS wraps a searcher into the Agent interface.
type MCTS struct {
	search *searcher.MCTS
}

func NewMCTS(search *searcher.MCTS) *MCTS {
	return &MCTS{search: search}
}

func (a *MCTS) FindMove(state game.State) (game.Move, searcher.MoveMetrics) {
	return a.search.FindMove(state)
}
