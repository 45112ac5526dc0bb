package searcher

import (
	"sync"

	"catan/game"

	"golang.org/x/exp/rand"
)

// chance represents an unresolved stochastic move (a dice roll, a blind
// steal, a deck draw). Each visit resamples the outcome and groups equal
// outcomes into shared decision children.
type chance struct {
	sync.RWMutex
	parent   *decision
	player   string
	move     game.Move
	children []*decision
	rewards  float64
	visits   float64
}

func newChance(parent *decision, move game.Move) *chance {
	return &chance{
		parent: parent,
		player: parent.player,
		move:   move,
	}
}

// SelectOrExpand receives the state before the stochastic move, samples one
// outcome, then selects the matching child or expands a new one.
func (c *chance) SelectOrExpand(state game.State) (Node, game.State, bool) {
	outcome := c.resolve(state)

	c.Lock()
	defer c.Unlock()

	selected := true
	child := c.selects(outcome.Hash())
	if child == nil { // Unexplored outcome
		child = c.expands(outcome)
		selected = false
	}
	child.applyLoss()
	return child, outcome, selected
}

// resolve plays the move on a randomness-resampled copy so repeated visits
// draw fresh outcomes instead of replaying the engine's fixed stream.
func (c *chance) resolve(state game.State) game.State {
	if d, ok := state.(game.Determinizer); ok {
		return d.Determinize(rand.Uint64()).Play(c.move)
	}
	return state.Play(c.move)
}

func (c *chance) selects(expected game.StateHash) *decision {
	for _, child := range c.children {
		if child.hash == expected {
			return child
		}
	}
	return nil
}

func (c *chance) expands(outcome game.State) *decision {
	child := newDecision(c, outcome)
	c.children = append(c.children, child)
	return child
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.rewards += Loss
	c.visits++
}

func (c *chance) reverseLoss() {
	c.rewards -= Loss
	c.visits--
}

func (c *chance) Score(normalizer float64, perspective string) float64 {
	c.RLock()
	defer c.RUnlock()

	q := c.rewards
	if c.player != perspective {
		q = -q
	}
	return ucb1(q, c.visits, normalizer)
}

func (c *chance) Backup(scorer string, score float64) Node {
	c.Lock()
	defer c.Unlock()

	c.reverseLoss()
	c.rewards += reward(scorer, score, c.player)
	c.visits++

	return c.parent
}

func (c *chance) Visits() float64 {
	c.RLock()
	defer c.RUnlock()

	return c.visits
}
