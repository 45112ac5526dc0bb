package game

import "sort"

// PlayerID is 0 or 1. NoPlayer marks the absence of a player reference.
type PlayerID int

const NoPlayer PlayerID = -1

const NumPlayers = 2

// Opponent returns the other player of a 1v1 game.
func (p PlayerID) Opponent() PlayerID {
	return 1 - p
}

// Piece caps per player.
const (
	MaxSettlements = 5
	MaxCities      = 4
	MaxRoads       = 15
)

// Victory thresholds of the 1v1 variant.
const (
	VictoryPointsToWin = 15
	DiscardThreshold   = 9
	LongestRoadMinimum = 5
	LargestArmyMinimum = 3
	TitlePoints        = 2
)

// Build costs.
var (
	RoadCost        = NewFreqdeck(ResourceCount{Brick, 1}, ResourceCount{Lumber, 1})
	SettlementCost  = NewFreqdeck(ResourceCount{Brick, 1}, ResourceCount{Lumber, 1}, ResourceCount{Wool, 1}, ResourceCount{Grain, 1})
	CityCost        = NewFreqdeck(ResourceCount{Grain, 2}, ResourceCount{Ore, 3})
	DevelopmentCost = NewFreqdeck(ResourceCount{Wool, 1}, ResourceCount{Grain, 1}, ResourceCount{Ore, 1})
)

// PlayerState holds everything owned by one player. Piece ownership uses
// sorted ID slices for deterministic iteration; all mutation goes through a
// copied state, never in place on a shared one.
type PlayerState struct {
	ID   PlayerID
	Hand Freqdeck

	Dev       DevHand // held and playable
	NewDev    DevHand // bought this turn, playable next turn
	PlayedDev DevHand

	Settlements []VertexID
	Cities      []VertexID
	Roads       []EdgeID

	RoadLength     int // longest-trail cache, updated on every road mutation
	HasLongestRoad bool
	HasLargestArmy bool
	HiddenPoints   int // victory-point cards, hidden until game end
}

func newPlayerState(id PlayerID) PlayerState {
	return PlayerState{ID: id}
}

func (p PlayerState) copy() PlayerState {
	c := p
	c.Settlements = append([]VertexID(nil), p.Settlements...)
	c.Cities = append([]VertexID(nil), p.Cities...)
	c.Roads = append([]EdgeID(nil), p.Roads...)
	return c
}

// Knights returns the number of knight cards this player has played.
func (p *PlayerState) Knights() int {
	return p.PlayedDev[Knight]
}

// VisibleVictoryPoints is the score an opponent can see: pieces plus titles.
func (p *PlayerState) VisibleVictoryPoints() int {
	points := len(p.Settlements) + 2*len(p.Cities)
	if p.HasLongestRoad {
		points += TitlePoints
	}
	if p.HasLargestArmy {
		points += TitlePoints
	}
	return points
}

// TotalVictoryPoints includes hidden victory-point cards.
func (p *PlayerState) TotalVictoryPoints() int {
	return p.VisibleVictoryPoints() + p.HiddenPoints
}

func (p *PlayerState) HasSettlementAt(v VertexID) bool {
	return containsVertex(p.Settlements, v)
}

func (p *PlayerState) HasCityAt(v VertexID) bool {
	return containsVertex(p.Cities, v)
}

// OwnsVertex reports a settlement or city at v.
func (p *PlayerState) OwnsVertex(v VertexID) bool {
	return p.HasSettlementAt(v) || p.HasCityAt(v)
}

func (p *PlayerState) OwnsEdge(e EdgeID) bool {
	for _, owned := range p.Roads {
		if owned == e {
			return true
		}
	}
	return false
}

// BuildingVertices returns every vertex holding one of the player's
// settlements or cities, sorted.
func (p *PlayerState) BuildingVertices() []VertexID {
	out := make([]VertexID, 0, len(p.Settlements)+len(p.Cities))
	out = append(out, p.Settlements...)
	out = append(out, p.Cities...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (p *PlayerState) addSettlement(v VertexID) {
	p.Settlements = insertVertex(p.Settlements, v)
}

func (p *PlayerState) addCity(v VertexID) {
	p.Settlements = removeVertex(p.Settlements, v)
	p.Cities = insertVertex(p.Cities, v)
}

func (p *PlayerState) addRoad(e EdgeID) {
	i := sort.Search(len(p.Roads), func(i int) bool { return p.Roads[i] >= e })
	p.Roads = append(p.Roads, 0)
	copy(p.Roads[i+1:], p.Roads[i:])
	p.Roads[i] = e
}

func containsVertex(s []VertexID, v VertexID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	return i < len(s) && s[i] == v
}

func insertVertex(s []VertexID, v VertexID) []VertexID {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeVertex(s []VertexID, v VertexID) []VertexID {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if i < len(s) && s[i] == v {
		return append(s[:i], s[i+1:]...)
	}
	return s
}
