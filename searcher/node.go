package searcher

import (
	"math"

	"catan/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Virtual loss applied during descent

type Node interface {
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	Backup(player string, score float64) Node
	Visits() float64
	Score(normalizer float64, perspective string) float64
	applyLoss()
}

func ucb1(rewards float64, visits float64, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(c2LnN/visits)
}

// reward converts a rollout outcome into the node player's perspective. score
// is from scorer's point of view: the winner's on a full playout, the cutoff
// state's current player's otherwise.
func reward(scorer string, score float64, player string) float64 {
	if scorer == player {
		return score
	}
	return -score
}
