package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Phase is the coarse game phase.
type Phase int

const (
	SetupRound1 Phase = iota
	SetupRound2
	Main
	Over
)

func (p Phase) String() string {
	switch p {
	case SetupRound1:
		return "SETUP_ROUND_1"
	case SetupRound2:
		return "SETUP_ROUND_2"
	case Main:
		return "MAIN"
	case Over:
		return "OVER"
	}
	return "UNKNOWN"
}

// Stage is the sub-state of a main turn. Forced sub-phases carry their
// pending data in dedicated GameState fields (PendingDiscards, RobberRoller,
// PendingTrade) rather than as loose flags.
type Stage int

const (
	StageRoll       Stage = iota // awaiting the dice roll
	StageFree                    // free action window after the roll
	StageDiscard                 // a rolled 7 forced discards
	StageRobber                  // awaiting the robber move
	StageTradeReply              // opponent must answer a trade offer
)

func (s Stage) String() string {
	switch s {
	case StageRoll:
		return "AWAITING_ROLL"
	case StageFree:
		return "FREE_ACTION"
	case StageDiscard:
		return "AWAITING_DISCARDS"
	case StageRobber:
		return "AWAITING_ROBBER_MOVE"
	case StageTradeReply:
		return "AWAITING_TRADE_REPLY"
	}
	return "UNKNOWN"
}

// TradeOffer is a pending player trade awaiting the responder's answer.
type TradeOffer struct {
	Proposer PlayerID
	Give     Freqdeck // what the proposer hands over
	Receive  Freqdeck // what the proposer wants back
}

// actionLog is an immutable cons list: appending never touches entries shared
// with sibling states, so parallel simulations can branch freely.
type actionLog struct {
	prev   *actionLog
	action Action
	index  int
}

// GameState is the whole dynamic state of a game. Every transition returns a
// new value; the Board is shared by reference, players and bank are replaced
// wholesale, and the action log shares structure. No method mutates a state
// another goroutine could hold.
type GameState struct {
	Board   *Board
	Players [2]PlayerState
	Bank    Bank

	Robber  TileID
	Turn    int
	Current PlayerID
	Phase   Phase
	Stage   Stage

	LastRoll          int // most recent dice sum, 0 before the first roll
	DevPlayedThisTurn bool
	PendingDiscards   [2]int // outstanding discard counts per player
	RobberRoller      PlayerID
	PendingTrade      *TradeOffer
	AwaitingSetupRoad bool
	SetupVertex       VertexID // settlement awaiting its setup road

	WinnerID PlayerID
	Rand     RNG

	log    *actionLog
	events []Event
}

// NewGame builds a standard board from the seed and returns the initial
// setup-phase state. The dev deck shuffle draws from the state RNG, so the
// entire game is reproducible from the one seed.
func NewGame(seed uint64) (*GameState, error) {
	board, err := BuildStandard(seed)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	rng := NewRNG(seed)
	bank := newBank(&rng)
	gs := &GameState{
		Board:        board,
		Players:      [2]PlayerState{newPlayerState(0), newPlayerState(1)},
		Bank:         bank,
		Robber:       board.DesertTile(),
		Phase:        SetupRound1,
		Current:      0,
		RobberRoller: NoPlayer,
		WinnerID:     NoPlayer,
		Rand:         rng,
	}
	return gs, nil
}

// Copy returns an independent state sharing only the immutable Board and the
// action log spine.
func (gs *GameState) Copy() *GameState {
	c := *gs
	c.Players[0] = gs.Players[0].copy()
	c.Players[1] = gs.Players[1].copy()
	c.Bank = gs.Bank.copy()
	if gs.PendingTrade != nil {
		trade := *gs.PendingTrade
		c.PendingTrade = &trade
	}
	c.events = nil
	return &c
}

// CurrentPlayer returns the player whose action is awaited.
func (gs *GameState) CurrentPlayer() *PlayerState {
	return &gs.Players[gs.Current]
}

// Opponent returns the other player.
func (gs *GameState) Opponent() *PlayerState {
	return &gs.Players[gs.Current.Opponent()]
}

// ActionCount is the monotonically increasing log position.
func (gs *GameState) ActionCount() int {
	if gs.log == nil {
		return 0
	}
	return gs.log.index + 1
}

// ActionLog materializes the applied actions in order.
func (gs *GameState) ActionLog() []Action {
	n := gs.ActionCount()
	out := make([]Action, n)
	for node := gs.log; node != nil; node = node.prev {
		out[node.index] = node.action
	}
	return out
}

// Events returns the semantic events emitted by the transition that produced
// this state, in order.
func (gs *GameState) Events() []Event {
	return gs.events
}

func (gs *GameState) emit(e Event) {
	gs.events = append(gs.events, e)
}

// IsOver reports whether the game has ended.
func (gs *GameState) IsOver() bool {
	return gs.Phase == Over
}

// checkVictory flips the state to GameOver once a player holds 15 total
// points. Called after every point-affecting mutation.
func (gs *GameState) checkVictory(p PlayerID) {
	if gs.Players[p].TotalVictoryPoints() >= VictoryPointsToWin {
		gs.Phase = Over
		gs.WinnerID = p
		gs.emit(Event{Type: EventVictory, Player: p})
	}
}

// StateHash is a 64-bit digest for transposition tables and tree reuse.
type StateHash uint64

// Hash digests the rule-relevant state with FNV-1a. Snapshot hashing (over
// the full canonical encoding) lives in snapshot.go; this one is the cheap
// in-memory key.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	w := func(v int64) {
		binary.Write(h, binary.LittleEndian, v)
	}
	w(int64(gs.Robber))
	w(int64(gs.Turn))
	w(int64(gs.Current))
	w(int64(gs.Phase))
	w(int64(gs.Stage))
	w(int64(gs.LastRoll))
	if gs.DevPlayedThisTurn {
		w(1)
	} else {
		w(0)
	}
	w(int64(gs.PendingDiscards[0]))
	w(int64(gs.PendingDiscards[1]))
	w(int64(gs.RobberRoller))
	if gs.AwaitingSetupRoad {
		w(int64(gs.SetupVertex))
	} else {
		w(-2)
	}
	w(int64(gs.WinnerID))
	w(int64(gs.Rand.Draws))
	for r := 0; r < NumResources; r++ {
		w(int64(gs.Bank.Resources[r]))
	}
	w(int64(len(gs.Bank.DevDeck)))
	for i := range gs.Players {
		p := &gs.Players[i]
		for r := 0; r < NumResources; r++ {
			w(int64(p.Hand[r]))
		}
		for c := 0; c < NumDevCards; c++ {
			w(int64(p.Dev[c]))
			w(int64(p.NewDev[c]))
			w(int64(p.PlayedDev[c]))
		}
		for _, v := range p.Settlements {
			w(int64(v))
		}
		w(-1)
		for _, v := range p.Cities {
			w(int64(v))
		}
		w(-1)
		for _, e := range p.Roads {
			w(int64(e))
		}
		w(-1)
	}
	if gs.PendingTrade != nil {
		w(int64(gs.PendingTrade.Proposer))
		for r := 0; r < NumResources; r++ {
			w(int64(gs.PendingTrade.Give[r]))
			w(int64(gs.PendingTrade.Receive[r]))
		}
	}
	return StateHash(h.Sum64())
}
