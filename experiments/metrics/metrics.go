// Package metrics defines the experiment record types and the CSV writer
// that stores them for offline analysis.
package metrics

import (
	"time"

	"catan/searcher"
)

// AgentConfig describes one agent entry of an experiment.
type AgentConfig struct {
	ID         int
	Kind       string // "random" or "mcts"
	Seed       uint64 // random agents only
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	Seed       uint64
	Winner     string // empty if the move cap was reached
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// GameRecord ties a game's metric to the two agents that played it.
type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

// MoveRecord ties one move's search metrics to its game and step.
type MoveRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Player string
	searcher.MoveMetrics
}
