package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SnapshotVersion is bumped whenever the encoding changes shape. Decoding
// rejects any other version.
const SnapshotVersion = 1

// PlayerSnapshot is the serialized form of one player's holdings.
type PlayerSnapshot struct {
	Hand         Freqdeck   `json:"hand"`
	Dev          DevHand    `json:"dev"`
	NewDev       DevHand    `json:"newDev"`
	PlayedDev    DevHand    `json:"playedDev"`
	Settlements  []VertexID `json:"settlements"`
	Cities       []VertexID `json:"cities"`
	Roads        []EdgeID   `json:"roads"`
	LongestRoad  bool       `json:"longestRoad"`
	LargestArmy  bool       `json:"largestArmy"`
	HiddenPoints int        `json:"hiddenPoints"`
}

// TradeSnapshot serializes a pending player trade.
type TradeSnapshot struct {
	Proposer PlayerID `json:"proposer"`
	Give     Freqdeck `json:"give"`
	Receive  Freqdeck `json:"receive"`
}

// Snapshot is the full serialized game state. Encoding is canonical: equal
// states produce byte-identical output, so ContentHash is a stable identity.
// The board is not stored; it is rebuilt deterministically from the seed.
type Snapshot struct {
	Version           int                        `json:"version"`
	Seed              uint64                     `json:"seed"`
	Draws             uint64                     `json:"draws"`
	Turn              int                        `json:"turn"`
	Current           PlayerID                   `json:"current"`
	Phase             Phase                      `json:"phase"`
	Stage             Stage                      `json:"stage"`
	LastRoll          int                        `json:"lastRoll"`
	DevPlayedThisTurn bool                       `json:"devPlayedThisTurn"`
	PendingDiscards   [NumPlayers]int            `json:"pendingDiscards"`
	RobberRoller      PlayerID                   `json:"robberRoller"`
	Robber            TileID                     `json:"robber"`
	AwaitingSetupRoad bool                       `json:"awaitingSetupRoad"`
	SetupVertex       VertexID                   `json:"setupVertex"`
	PendingTrade      *TradeSnapshot             `json:"pendingTrade,omitempty"`
	Winner            PlayerID                   `json:"winner"`
	BankResources     Freqdeck                   `json:"bankResources"`
	DevDeck           []DevCard                  `json:"devDeck"`
	Players           [NumPlayers]PlayerSnapshot `json:"players"`
}

// Snapshot captures the state for persistence. The action log is recorded
// separately as ActionRecords; a snapshot alone is enough to resume play.
func (gs *GameState) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:           SnapshotVersion,
		Seed:              gs.Rand.Seed,
		Draws:             gs.Rand.Draws,
		Turn:              gs.Turn,
		Current:           gs.Current,
		Phase:             gs.Phase,
		Stage:             gs.Stage,
		LastRoll:          gs.LastRoll,
		DevPlayedThisTurn: gs.DevPlayedThisTurn,
		PendingDiscards:   gs.PendingDiscards,
		RobberRoller:      gs.RobberRoller,
		Robber:            gs.Robber,
		AwaitingSetupRoad: gs.AwaitingSetupRoad,
		SetupVertex:       gs.SetupVertex,
		Winner:            gs.WinnerID,
		BankResources:     gs.Bank.Resources,
		DevDeck:           append([]DevCard(nil), gs.Bank.DevDeck...),
	}
	if gs.PendingTrade != nil {
		s.PendingTrade = &TradeSnapshot{
			Proposer: gs.PendingTrade.Proposer,
			Give:     gs.PendingTrade.Give,
			Receive:  gs.PendingTrade.Receive,
		}
	}
	for id := PlayerID(0); id < NumPlayers; id++ {
		p := &gs.Players[id]
		s.Players[id] = PlayerSnapshot{
			Hand:         p.Hand,
			Dev:          p.Dev,
			NewDev:       p.NewDev,
			PlayedDev:    p.PlayedDev,
			Settlements:  append([]VertexID(nil), p.Settlements...),
			Cities:       append([]VertexID(nil), p.Cities...),
			Roads:        append([]EdgeID(nil), p.Roads...),
			LongestRoad:  p.HasLongestRoad,
			LargestArmy:  p.HasLargestArmy,
			HiddenPoints: p.HiddenPoints,
		}
	}
	return s
}

// Encode renders the canonical byte form.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// ContentHash is the hex SHA-256 of the canonical encoding.
func (s *Snapshot) ContentHash() (string, error) {
	data, err := s.Encode()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// DecodeSnapshot parses and validates a snapshot without restoring it.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: snapshot version %d, want %d", ErrCorruptState, s.Version, SnapshotVersion)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Restore rebuilds a playable state. The board and RNG position are
// reconstructed from the recorded seed and draw count.
func (s *Snapshot) Restore() (*GameState, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	board, err := BuildStandard(s.Seed)
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		Board:             board,
		Bank:              Bank{Resources: s.BankResources, DevDeck: append([]DevCard(nil), s.DevDeck...)},
		Robber:            s.Robber,
		Turn:              s.Turn,
		Current:           s.Current,
		Phase:             s.Phase,
		Stage:             s.Stage,
		LastRoll:          s.LastRoll,
		DevPlayedThisTurn: s.DevPlayedThisTurn,
		PendingDiscards:   s.PendingDiscards,
		RobberRoller:      s.RobberRoller,
		AwaitingSetupRoad: s.AwaitingSetupRoad,
		SetupVertex:       s.SetupVertex,
		WinnerID:          s.Winner,
		Rand:              ReplayRNG(s.Seed, s.Draws),
	}
	if s.PendingTrade != nil {
		gs.PendingTrade = &TradeOffer{
			Proposer: s.PendingTrade.Proposer,
			Give:     s.PendingTrade.Give,
			Receive:  s.PendingTrade.Receive,
		}
	}
	for id := PlayerID(0); id < NumPlayers; id++ {
		ps := &s.Players[id]
		gs.Players[id] = PlayerState{
			ID:             id,
			Hand:           ps.Hand,
			Dev:            ps.Dev,
			NewDev:         ps.NewDev,
			PlayedDev:      ps.PlayedDev,
			Settlements:    append([]VertexID(nil), ps.Settlements...),
			Cities:         append([]VertexID(nil), ps.Cities...),
			Roads:          append([]EdgeID(nil), ps.Roads...),
			HasLongestRoad: ps.LongestRoad,
			HasLargestArmy: ps.LargestArmy,
			HiddenPoints:   ps.HiddenPoints,
		}
		gs.Players[id].RoadLength = longestRoadLength(board, gs.Players[id].Roads)
	}
	return gs, nil
}

// validate rejects structurally corrupt snapshots before they become states.
func (s *Snapshot) validate() error {
	if s.Current < 0 || s.Current >= NumPlayers {
		return fmt.Errorf("%w: current player %d", ErrCorruptState, s.Current)
	}
	if s.Robber < 0 || s.Robber >= NumTiles {
		return fmt.Errorf("%w: robber tile %d", ErrCorruptState, s.Robber)
	}
	if !s.BankResources.Valid() {
		return fmt.Errorf("%w: negative bank stock", ErrCorruptState)
	}
	if len(s.DevDeck) > DevDeckSize {
		return fmt.Errorf("%w: development deck too large", ErrCorruptState)
	}
	total := s.BankResources
	for id := range s.Players {
		p := &s.Players[id]
		if !p.Hand.Valid() {
			return fmt.Errorf("%w: player %d negative hand", ErrCorruptState, id)
		}
		total = total.Add(p.Hand)
		if len(p.Settlements) > MaxSettlements || len(p.Cities) > MaxCities || len(p.Roads) > MaxRoads {
			return fmt.Errorf("%w: player %d exceeds piece limits", ErrCorruptState, id)
		}
		for _, v := range append(append([]VertexID(nil), p.Settlements...), p.Cities...) {
			if v < 0 || v >= NumVertices {
				return fmt.Errorf("%w: vertex %d out of range", ErrCorruptState, v)
			}
		}
		for _, e := range p.Roads {
			if e < 0 || e >= NumEdges {
				return fmt.Errorf("%w: edge %d out of range", ErrCorruptState, e)
			}
		}
	}
	for r := Resource(0); r < NumResources; r++ {
		if total[r] > BankResourceCount {
			return fmt.Errorf("%w: %s count %d exceeds supply", ErrCorruptState, r, total[r])
		}
	}
	if s.Players[0].LongestRoad && s.Players[1].LongestRoad {
		return fmt.Errorf("%w: both players hold the road bonus", ErrCorruptState)
	}
	if s.Players[0].LargestArmy && s.Players[1].LargestArmy {
		return fmt.Errorf("%w: both players hold the army bonus", ErrCorruptState)
	}
	return nil
}

// ActionRecord is one entry of a game's transcript: who acted, what they did,
// and the digest of the state the action produced.
type ActionRecord struct {
	Index  int       `json:"index"`
	Player string    `json:"player"`
	Action Action    `json:"action"`
	After  StateHash `json:"after"`
}

// Transcript walks the action log from the first move to the present. The
// final record's After digest matches gs.Hash().
func (gs *GameState) Transcript() []ActionRecord {
	actions := gs.ActionLog()
	if len(actions) == 0 {
		return nil
	}
	records := make([]ActionRecord, len(actions))
	// Replay from the initial state to recover per-step digests and actors.
	replay, err := NewGame(gs.Rand.Seed)
	if err != nil {
		return nil
	}
	for i, a := range actions {
		player := replay.Current.Label()
		next, err := replay.Apply(a)
		if err != nil {
			return records[:i]
		}
		replay = next
		records[i] = ActionRecord{Index: i, Player: player, Action: a, After: replay.Hash()}
	}
	return records
}
