package searcher

import (
	"sync"
	"time"

	"catan/game"

	"golang.org/x/exp/rand"
)

// MaxCutoff effectively disables the rollout depth cutoff.
const MaxCutoff = 1 << 20

type Option func(m *MCTS)

// MCTS runs parallel Monte Carlo tree search with virtual loss. A single
// tree is shared by all goroutines; nodes lock individually.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    MetricsCollector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateProduction,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit-share policy over root
// moves plus the search metrics.
func (m *MCTS) Simulate(state game.State) (map[game.Move]float64, MoveMetrics) {
	m.root = newDecision(nil, state)

	m.metrics.Start()
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

// FindMove searches from state and returns the most visited root move.
func (m *MCTS) FindMove(state game.State) (game.Move, MoveMetrics) {
	_, metric := m.Simulate(state)
	return m.root.bestMove(), metric
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)
	var wg sync.WaitGroup

	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state)
	scorer, score := rollout(newState, m.cutoff, m.evaluate, m.metrics)
	backup(newNode, scorer, score)
}

func selectThenExpand(root Node, state game.State) (Node, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays random moves until the game ends or the cutoff depth is
// reached, then scores the reached state.
func rollout(state game.State, cutoff int, evaluate game.Evaluate, metrics MetricsCollector) (string, float64) {
	if d, ok := state.(game.Determinizer); ok {
		// Fresh randomness per rollout so repeated playouts from one leaf
		// sample different dice.
		state = d.Determinize(rand.Uint64())
	}
	depth := 0
	moves := state.LegalMoves()
	for len(moves) > 0 && depth < cutoff {
		move := moves[rand.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return state.Winner(), Win
	}

	// At the cutoff, score the position from the current player's perspective
	return state.Player(), evaluate(state)
}

func backup(newNode Node, scorer string, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(scorer, score)
	}
}
