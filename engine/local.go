package engine

import (
	"fmt"

	"catan/agent"
	"catan/game"
	"catan/searcher"

	"github.com/rs/zerolog/log"
)

// Local runs a full game between two in-process agents on one goroutine.
type Local struct {
	state       *game.GameState
	agents      [game.NumPlayers]agent.Agent
	subscribers []Subscriber
}

func NewLocal(state *game.GameState, red, blue agent.Agent) *Local {
	return &Local{
		state:  state,
		agents: [game.NumPlayers]agent.Agent{red, blue},
	}
}

// Subscribe registers fn for every event of the run. Must be called before
// Run; delivery is synchronous and ordered.
func (e *Local) Subscribe(fn Subscriber) {
	e.subscribers = append(e.subscribers, fn)
}

// Run plays until a winner emerges or MaxMoves is reached.
func (e *Local) Run() (Result, error) {
	var records []game.ActionRecord
	var searches []searcher.MoveMetrics

	moves := 0
	for !e.state.IsOver() && moves < MaxMoves {
		current := e.state.Current
		move, searchMetric := e.agents[current].FindMove(e.state)
		action, ok := move.(game.Action)
		if !ok {
			return Result{}, fmt.Errorf("agent for %s returned a %T, not an action", current.Label(), move)
		}

		next, err := e.state.Apply(action)
		if err != nil {
			// A misbehaving agent forfeits the choice, not the game.
			log.Warn().
				Str("player", current.Label()).
				Str("action", action.String()).
				Err(err).
				Msg("agent chose an illegal action, falling back to first legal")
			legal := e.state.LegalActions()
			if len(legal) == 0 {
				return Result{}, fmt.Errorf("no legal action for %s: %w", current.Label(), game.ErrCorruptState)
			}
			action = legal[0]
			next, err = e.state.Apply(action)
			if err != nil {
				return Result{}, fmt.Errorf("legal action rejected: %w", err)
			}
		}

		records = append(records, game.ActionRecord{
			Index:  moves,
			Player: current.Label(),
			Action: action,
			After:  next.Hash(),
		})
		searches = append(searches, searchMetric)
		for _, event := range next.Events() {
			e.publish(event)
		}

		e.state = next
		moves++
	}

	result := Result{
		Winner:   e.state.Winner(),
		Moves:    moves,
		Records:  records,
		Searches: searches,
		Final:    e.state,
	}
	if result.Winner == "" {
		log.Warn().Int("moves", moves).Msg("game stopped at the move cap without a winner")
	} else {
		log.Debug().Str("winner", result.Winner).Int("moves", moves).Msg("game finished")
	}
	return result, nil
}

func (e *Local) publish(event game.Event) {
	for _, fn := range e.subscribers {
		fn(event)
	}
}
