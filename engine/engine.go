// Package engine drives complete games: it asks agents for moves, validates
// them against the legal set, applies them, and publishes the semantic
// events of every transition to subscribers.
package engine

import (
	"catan/game"
	"catan/searcher"
)

// MaxMoves aborts runaway games (two agents trading offers forever).
const MaxMoves = 10000

// Subscriber receives every event of a game in order, synchronously, on the
// engine's goroutine. Events of one transition are delivered before the next
// transition starts.
type Subscriber func(game.Event)

// Result is the outcome of a finished run. Searches[i] holds the search
// metrics behind Records[i]; for agents that don't search it is zero.
type Result struct {
	Winner   string // empty if the move cap was reached
	Moves    int
	Records  []game.ActionRecord
	Searches []searcher.MoveMetrics
	Final    *game.GameState
}

type Engine interface {
	// Run starts a game till there's a winner or the move cap is reached.
	Run() (Result, error)
}
