package game

// EvaluatePoints tallies each player's victory points to produce a relative
// score between -1 and 1 from the current player's perspective.
func EvaluatePoints(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Current
	opponent := current.Opponent()
	return normalize(
		float64(gs.Players[current].TotalVictoryPoints()),
		float64(gs.Players[opponent].TotalVictoryPoints()),
	)
}

// EvaluateProduction considers expected per-roll income, in addition to
// victory points, to produce a score between -1 and 1 from the current
// player's perspective.
func EvaluateProduction(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Current
	opponent := current.Opponent()
	pointScore := normalize(
		float64(gs.Players[current].TotalVictoryPoints()),
		float64(gs.Players[opponent].TotalVictoryPoints()),
	)
	productionScore := normalize(
		gs.productionWeight(current),
		gs.productionWeight(opponent),
	)
	return (2*pointScore + productionScore) / 3
}

// productionWeight sums dice-probability-weighted yield over the player's
// buildings. Pip p on 2d6 comes up with weight 6-|7-p| out of 36.
func (gs *GameState) productionWeight(p PlayerID) float64 {
	player := &gs.Players[p]
	weight := 0.0
	for _, tile := range gs.Board.Tiles {
		if _, produces := tile.Terrain.Produces(); !produces || tile.ID == gs.Robber {
			continue
		}
		diff := 7 - tile.Pip
		if diff < 0 {
			diff = -diff
		}
		w := float64(6-diff) / 36
		for _, v := range gs.Board.VerticesOfTile(tile.ID) {
			if player.HasSettlementAt(v) {
				weight += w
			} else if player.HasCityAt(v) {
				weight += 2 * w
			}
		}
	}
	return weight
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
