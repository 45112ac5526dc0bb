package game

import "fmt"

// Move is one atomic step of a game. Stochastic moves resolve hidden
// randomness (dice, blind steals, deck draws) when played.
type Move interface {
	IsStochastic() bool
}

// State should be immutable - operations on State always return a new copy.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64

// Determinizer is implemented by states whose hidden randomness can be
// resampled. Search uses it to draw fresh stochastic outcomes; the engine's
// own stream stays untouched.
type Determinizer interface {
	Determinize(seed uint64) State
}

// Determinize returns a copy with a reseeded randomness stream. The copy is a
// hypothetical future: dice, steals and deck draws diverge from the original.
func (gs *GameState) Determinize(seed uint64) State {
	c := gs.Copy()
	c.Rand = NewRNG(seed)
	return c
}

var playerLabels = [NumPlayers]string{"red", "blue"}

// Label is the stable display name used by agents and match records.
func (p PlayerID) Label() string {
	if p < 0 || p >= NumPlayers {
		return "none"
	}
	return playerLabels[p]
}

// PlayerByLabel is the inverse of Label.
func PlayerByLabel(label string) (PlayerID, bool) {
	for id, l := range playerLabels {
		if l == label {
			return PlayerID(id), true
		}
	}
	return NoPlayer, false
}

// Player returns the label of the player to move.
func (gs *GameState) Player() string {
	return gs.Current.Label()
}

// Winner returns the winning player's label, or "" while the game runs.
func (gs *GameState) Winner() string {
	if gs.Phase != Over {
		return ""
	}
	return gs.WinnerID.Label()
}

// LegalMoves wraps LegalActions for tree search.
func (gs *GameState) LegalMoves() []Move {
	actions := gs.LegalActions()
	moves := make([]Move, len(actions))
	for i, a := range actions {
		moves[i] = a
	}
	return moves
}

// Play applies a legal move and returns the successor. Panics on an illegal
// move: search only feeds moves from LegalMoves, so an error here is a bug,
// not a condition to recover from.
func (gs *GameState) Play(m Move) State {
	a, ok := m.(Action)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", m))
	}
	ns, err := gs.Apply(a)
	if err != nil {
		panic(fmt.Sprintf("illegal move %s: %v", a, err))
	}
	return ns
}
