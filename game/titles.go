package game

// longestRoadLength finds the longest simple trail (edges distinct, vertices
// may repeat) through the player's road graph. With at most 15 roads the
// exhaustive search from every endpoint is cheap.
func longestRoadLength(board *Board, roads []EdgeID) int {
	if len(roads) == 0 {
		return 0
	}
	owned := make(map[EdgeID]bool, len(roads))
	for _, e := range roads {
		owned[e] = true
	}
	var visited [NumEdges]bool
	var walk func(v VertexID) int
	walk = func(v VertexID) int {
		best := 0
		for _, e := range board.EdgesOfVertex(v) {
			if !owned[e] || visited[e] {
				continue
			}
			visited[e] = true
			for _, next := range board.VerticesOfEdge(e) {
				if next == v {
					continue
				}
				if length := walk(next) + 1; length > best {
					best = length
				}
			}
			visited[e] = false
		}
		return best
	}
	best := 0
	for _, e := range roads {
		for _, v := range board.VerticesOfEdge(e) {
			if length := walk(v); length > best {
				best = length
			}
		}
	}
	return best
}

// updateLongestRoad recomputes p's cached road length and re-arbitrates the
// bonus. The title moves only on a strictly greater length; ties leave it
// with the current holder. Called after every road placement by p.
func (gs *GameState) updateLongestRoad(p PlayerID) {
	player := &gs.Players[p]
	player.RoadLength = longestRoadLength(gs.Board, player.Roads)
	if player.HasLongestRoad || player.RoadLength < LongestRoadMinimum {
		return
	}
	opponent := &gs.Players[p.Opponent()]
	if opponent.HasLongestRoad {
		if player.RoadLength <= opponent.RoadLength {
			return
		}
		opponent.HasLongestRoad = false
		player.HasLongestRoad = true
		gs.emit(Event{Type: EventTitleTransferred, Title: LongestRoadTitle, Player: p, From: opponent.ID})
		return
	}
	player.HasLongestRoad = true
	gs.emit(Event{Type: EventTitleTransferred, Title: LongestRoadTitle, Player: p, From: NoPlayer})
}

// updateLargestArmy re-arbitrates the army bonus after p plays a knight.
// Same strictly-greater rule as the road title.
func (gs *GameState) updateLargestArmy(p PlayerID) {
	player := &gs.Players[p]
	if player.HasLargestArmy || player.Knights() < LargestArmyMinimum {
		return
	}
	opponent := &gs.Players[p.Opponent()]
	if opponent.HasLargestArmy {
		if player.Knights() <= opponent.Knights() {
			return
		}
		opponent.HasLargestArmy = false
		player.HasLargestArmy = true
		gs.emit(Event{Type: EventTitleTransferred, Title: LargestArmyTitle, Player: p, From: opponent.ID})
		return
	}
	player.HasLargestArmy = true
	gs.emit(Event{Type: EventTitleTransferred, Title: LargestArmyTitle, Player: p, From: NoPlayer})
}
