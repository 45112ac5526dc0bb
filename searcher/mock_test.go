package searcher

import "catan/game"

type mockMove struct {
	id         int
	stochastic bool
}

func (m mockMove) IsStochastic() bool { return m.stochastic }

// mockState is a value: Play returns a derived copy, like the real game.
type mockState struct {
	player string
	moves  []game.Move
	played []game.Move
	hash   game.StateHash
	winner string
}

func (s mockState) Player() string          { return s.player }
func (s mockState) LegalMoves() []game.Move { return s.moves }
func (s mockState) Hash() game.StateHash    { return s.hash }
func (s mockState) Winner() string          { return s.winner }

func (s mockState) Play(m game.Move) game.State {
	s.played = append(append([]game.Move{}, s.played...), m)
	s.hash = game.StateHash(uint64(s.hash) + uint64(m.(mockMove).id) + 1)
	return s
}
