package rl

import "catan/game"

// Observation layout, all blocks ego-centric: "own" always refers to the
// player the observation is built for. Sizes are fixed so the tensor shape
// never depends on the state.
const (
	tileFeatures  = 6 // resource one-hot (5) + robber-aware production weight
	boardBlock    = game.NumTiles * tileFeatures
	roadBlock     = game.NumEdges
	buildingBlock = game.NumVertices
	handBlock     = 2 * game.NumResources
	devBlock      = 2 * game.NumDevCards
	bankBlock     = game.NumResources
	metaBlock     = 10

	// ObservationSize is the length of every encoded observation.
	ObservationSize = boardBlock + roadBlock + buildingBlock + handBlock + devBlock + bankBlock + metaBlock
)

// Observe encodes the state as seen by player p. The same position observed
// by the two players yields mirrored tensors.
func Observe(gs *game.GameState, p game.PlayerID) []float32 {
	obs := make([]float32, 0, ObservationSize)
	obs = appendBoard(obs, gs)
	obs = appendRoads(obs, gs, p)
	obs = appendBuildings(obs, gs, p)
	obs = appendHands(obs, gs, p)
	obs = appendDevCards(obs, gs, p)
	obs = appendBank(obs, gs)
	obs = appendMetadata(obs, gs, p)
	return obs
}

// appendBoard emits one row per tile: a resource one-hot (all zero for the
// desert) and the dice-probability production weight, zeroed while the robber
// sits on the tile.
func appendBoard(obs []float32, gs *game.GameState) []float32 {
	for _, tile := range gs.Board.Tiles {
		var row [tileFeatures]float32
		if resource, produces := tile.Terrain.Produces(); produces {
			row[resource] = 1
			if tile.ID != gs.Robber {
				diff := 7 - tile.Pip
				if diff < 0 {
					diff = -diff
				}
				row[game.NumResources] = float32(6-diff) / 5
			}
		}
		obs = append(obs, row[:]...)
	}
	return obs
}

// appendRoads emits +1 for own roads, -1 for opponent roads.
func appendRoads(obs []float32, gs *game.GameState, p game.PlayerID) []float32 {
	row := make([]float32, roadBlock)
	for _, e := range gs.Players[p].Roads {
		row[e] = 1
	}
	for _, e := range gs.Players[p.Opponent()].Roads {
		row[e] = -1
	}
	return append(obs, row...)
}

// appendBuildings emits settlements as ±0.5 and cities as ±1, own positive.
func appendBuildings(obs []float32, gs *game.GameState, p game.PlayerID) []float32 {
	row := make([]float32, buildingBlock)
	for _, v := range gs.Players[p].Settlements {
		row[v] = 0.5
	}
	for _, v := range gs.Players[p].Cities {
		row[v] = 1
	}
	opponent := p.Opponent()
	for _, v := range gs.Players[opponent].Settlements {
		row[v] = -0.5
	}
	for _, v := range gs.Players[opponent].Cities {
		row[v] = -1
	}
	return append(obs, row...)
}

// appendHands emits both hands scaled by the bank supply, own first. The
// simulator is perfect-information; hiding the opponent hand is a caller
// concern, not an encoding one.
func appendHands(obs []float32, gs *game.GameState, p game.PlayerID) []float32 {
	for _, id := range []game.PlayerID{p, p.Opponent()} {
		hand := gs.Players[id].Hand
		for r := game.Resource(0); r < game.NumResources; r++ {
			obs = append(obs, float32(hand[r])/game.BankResourceCount)
		}
	}
	return obs
}

// appendDevCards emits own playable cards and the opponent's played cards,
// scaled by the deck composition's largest kind.
func appendDevCards(obs []float32, gs *game.GameState, p game.PlayerID) []float32 {
	own := gs.Players[p]
	for c := game.DevCard(0); c < game.NumDevCards; c++ {
		obs = append(obs, float32(own.Dev[c]+own.NewDev[c])/5)
	}
	opp := gs.Players[p.Opponent()]
	for c := game.DevCard(0); c < game.NumDevCards; c++ {
		obs = append(obs, float32(opp.PlayedDev[c])/5)
	}
	return obs
}

func appendBank(obs []float32, gs *game.GameState) []float32 {
	for r := game.Resource(0); r < game.NumResources; r++ {
		obs = append(obs, float32(gs.Bank.Resources[r])/game.BankResourceCount)
	}
	return obs
}

// appendMetadata emits the scalar game context: turn clock, last roll, both
// score lines, road and army races, and the stage flags.
func appendMetadata(obs []float32, gs *game.GameState, p game.PlayerID) []float32 {
	own := &gs.Players[p]
	opp := &gs.Players[p.Opponent()]
	meta := [metaBlock]float32{
		float32(gs.Turn) / 100,
		float32(gs.LastRoll) / 12,
		float32(own.TotalVictoryPoints()) / game.VictoryPointsToWin,
		float32(opp.VisibleVictoryPoints()) / game.VictoryPointsToWin,
		float32(own.RoadLength) / game.MaxRoads,
		float32(opp.RoadLength) / game.MaxRoads,
		float32(own.Knights()) / 5,
		float32(opp.Knights()) / 5,
		boolFeature(gs.Current == p),
		float32(gs.Stage) / 4,
	}
	return append(obs, meta[:]...)
}

func boolFeature(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
