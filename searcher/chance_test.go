package searcher

import (
	"testing"

	"catan/game"

	"github.com/stretchr/testify/require"
)

func TestChanceSelectOrExpand(t *testing.T) {
	move := mockMove{id: 3, stochastic: true}

	t.Run("unexplored outcome expands a new decision child", func(t *testing.T) {
		parent := &decision{player: "red"}
		node := newChance(parent, move)
		state := mockState{player: "red", hash: 10}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Len(t, node.children, 1, "Node should add the outcome child")
		require.Equal(t, node.children[0], gotChild)
		require.False(t, gotSelected, "A new outcome ends the descent")
		require.Equal(t, []game.Move{move}, gotState.(mockState).played,
			"The chance node resolves the move")
		require.Equal(t, gotState.Hash(), node.children[0].hash,
			"The child is keyed by the outcome hash")
		require.Equal(t, Loss, node.children[0].rewards, "New child carries a temporary loss")
	})

	t.Run("a repeated outcome selects the matching child", func(t *testing.T) {
		parent := &decision{player: "red"}
		node := newChance(parent, move)
		state := mockState{player: "red", hash: 10}

		first, _, _ := node.SelectOrExpand(state)
		second, _, gotSelected := node.SelectOrExpand(state)

		// The mock resolves deterministically, so the outcome repeats.
		require.Len(t, node.children, 1, "Equal outcomes share one child")
		require.Equal(t, first, second)
		require.True(t, gotSelected, "A known outcome continues the descent")
	})
}

func TestChanceBackup(t *testing.T) {
	parent := &decision{player: "red"}
	node := newChance(parent, mockMove{id: 1, stochastic: true})
	node.applyLoss()

	got := node.Backup("red", Win)

	require.Equal(t, Node(parent), got)
	require.Equal(t, Win, node.rewards, "Loss reversed, win added")
	require.Equal(t, 1.0, node.visits)
}

func TestChanceScoreNegatesOnTurnChange(t *testing.T) {
	parent := &decision{player: "red"}
	node := newChance(parent, mockMove{id: 1, stochastic: true})
	node.rewards = 1
	node.visits = 2

	forOwner := node.Score(1, "red")
	forOpponent := node.Score(1, "blue")
	require.Greater(t, forOwner, forOpponent)
}
