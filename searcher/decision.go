package searcher

import (
	"math"
	"sync"

	"catan/game"
)

// decision is a tree node where one player chooses among legal moves.
type decision struct {
	sync.RWMutex
	parent   Node
	player   string
	hash     game.StateHash
	moves    []game.Move
	children []Node
	rewards  float64
	visits   float64
}

func newDecision(parent Node, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:   parent,
		player:   state.Player(),
		hash:     state.Hash(),
		moves:    moves,
		children: make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.children) < len(d.moves) { // Expandable node
		return d.addChild(state)
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	if _, ok := child.(*chance); ok {
		// The chance node resolves the stochastic move itself.
		return child, state, true
	}
	return child, state.Play(d.moves[ith]), true
}

// addChild expands the next unexplored move. A deterministic move ends the
// descent at its new node; a stochastic move continues into the chance node,
// which samples and matches the outcome.
func (d *decision) addChild(state game.State) (Node, game.State, bool) {
	move := d.moves[len(d.children)]
	if move.IsStochastic() {
		child := newChance(d, move)
		child.applyLoss()
		d.children = append(d.children, child)
		return child, state, true
	}
	childState := state.Play(move)
	child := newDecision(d, childState)
	child.applyLoss()
	d.children = append(d.children, child)
	return child, childState, false
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := CSquared * math.Log(d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.Score(normalizer, d.player)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// Score values this node for a parent deciding as perspective. Rewards are
// stored from this node's player's point of view and negated on a turn change.
func (d *decision) Score(normalizer float64, perspective string) float64 {
	d.RLock()
	defer d.RUnlock()

	q := d.rewards
	if d.player != perspective {
		q = -q
	}
	return ucb1(q, d.visits, normalizer)
}

func (d *decision) Backup(scorer string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // The root never received a virtual loss
		d.reverseLoss()
	}
	d.rewards += reward(scorer, score, d.player)
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy maps each explored root move to its share of simulation visits.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0.0
	for _, child := range d.children {
		total += child.Visits()
	}
	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		if total > 0 {
			policy[d.moves[i]] = child.Visits() / total
		} else {
			policy[d.moves[i]] = 0
		}
	}
	return policy
}

// bestMove returns the most visited root move.
func (d *decision) bestMove() game.Move {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.moves[bestIndex]
}
