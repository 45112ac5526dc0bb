package game

// discardEnumerationCap bounds the number of discard combinations offered
// before the generator falls back to a single canonical discard. Hands above
// the threshold can otherwise produce thousands of multisets.
const discardEnumerationCap = 128

// LegalActions enumerates every action Apply would accept in the current
// state, in deterministic order. The slice is freshly allocated per call.
func (gs *GameState) LegalActions() []Action {
	if gs.Phase == Over {
		return nil
	}
	if gs.Phase == SetupRound1 || gs.Phase == SetupRound2 {
		return gs.setupActions()
	}
	switch gs.Stage {
	case StageRoll:
		return []Action{{Type: RollDice}}
	case StageDiscard:
		return gs.discardActions()
	case StageRobber:
		return gs.robberActions()
	case StageTradeReply:
		return gs.tradeReplyActions()
	}
	return gs.freeActions()
}

func (gs *GameState) setupActions() []Action {
	var actions []Action
	if gs.AwaitingSetupRoad {
		for _, e := range gs.Board.EdgesOfVertex(gs.SetupVertex) {
			if !gs.edgeOccupied(e) {
				actions = append(actions, Action{Type: BuildRoad, Edge: e})
			}
		}
		return actions
	}
	for v := VertexID(0); v < NumVertices; v++ {
		if gs.Board.DistanceOK(v, gs.vertexOccupied) {
			actions = append(actions, Action{Type: BuildSettlement, Vertex: v})
		}
	}
	return actions
}

func (gs *GameState) discardActions() []Action {
	player := gs.CurrentPlayer()
	required := gs.PendingDiscards[gs.Current]
	combos := enumerateDiscards(player.Hand, required, discardEnumerationCap)
	if combos == nil {
		combos = []Freqdeck{greedyDiscard(player.Hand, required)}
	}
	actions := make([]Action, len(combos))
	for i, give := range combos {
		actions[i] = Action{Type: DiscardToThreshold, Give: give}
	}
	return actions
}

func (gs *GameState) robberActions() []Action {
	var actions []Action
	for t := TileID(0); t < NumTiles; t++ {
		if t == gs.Robber {
			continue
		}
		targets := gs.stealTargets(t)
		if len(targets) == 0 {
			actions = append(actions, Action{Type: MoveRobber, Tile: t, Steal: NoPlayer})
			continue
		}
		for _, victim := range targets {
			actions = append(actions, Action{Type: MoveRobber, Tile: t, Steal: victim})
		}
	}
	return actions
}

func (gs *GameState) tradeReplyActions() []Action {
	actions := []Action{{Type: DeclinePlayerTrade}}
	if gs.validateTradeReply(Action{Type: AcceptPlayerTrade}) == nil {
		actions = append(actions, Action{Type: AcceptPlayerTrade})
	}
	return actions
}

func (gs *GameState) freeActions() []Action {
	player := gs.CurrentPlayer()
	actions := []Action{{Type: EndTurn}}

	if len(player.Roads) < MaxRoads && player.Hand.Contains(RoadCost) {
		for _, e := range gs.roadCandidates(player, nil) {
			actions = append(actions, Action{Type: BuildRoad, Edge: e})
		}
	}
	if len(player.Settlements) < MaxSettlements && player.Hand.Contains(SettlementCost) {
		for v := VertexID(0); v < NumVertices; v++ {
			if gs.validateSettlementPlacement(player, v, true) == nil {
				actions = append(actions, Action{Type: BuildSettlement, Vertex: v})
			}
		}
	}
	if len(player.Cities) < MaxCities && player.Hand.Contains(CityCost) {
		for _, v := range player.Settlements {
			actions = append(actions, Action{Type: BuildCity, Vertex: v})
		}
	}
	if len(gs.Bank.DevDeck) > 0 && player.Hand.Contains(DevelopmentCost) {
		actions = append(actions, Action{Type: BuyDevelopmentCard})
	}

	if player.Dev[Knight] > 0 {
		actions = append(actions, Action{Type: PlayKnight})
	}
	if !gs.DevPlayedThisTurn {
		actions = append(actions, gs.progressCardActions(player)...)
	}

	actions = append(actions, gs.bankTradeActions(player)...)
	actions = append(actions, gs.playerTradeOffers(player)...)
	return actions
}

func (gs *GameState) progressCardActions(player *PlayerState) []Action {
	var actions []Action
	if player.Dev[RoadBuilding] > 0 && MaxRoads-len(player.Roads) >= 2 {
		seen := make(map[[2]EdgeID]bool)
		for _, first := range gs.roadCandidates(player, nil) {
			for _, second := range gs.roadCandidates(player, []EdgeID{first}) {
				pair := [2]EdgeID{first, second}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				if seen[pair] {
					continue
				}
				seen[pair] = true
				actions = append(actions, Action{Type: PlayRoadBuilding, Edges: pair})
			}
		}
	}
	if player.Dev[YearOfPlenty] > 0 {
		for a := Resource(0); a < NumResources; a++ {
			for b := a; b < NumResources; b++ {
				claim := Single(a, 1).Add(Single(b, 1))
				if gs.Bank.Resources.Contains(claim) {
					actions = append(actions, Action{Type: PlayYearOfPlenty, Receive: claim})
				}
			}
		}
	}
	if player.Dev[Monopoly] > 0 {
		for r := Resource(0); r < NumResources; r++ {
			actions = append(actions, Action{Type: PlayMonopoly, Resource: r})
		}
	}
	return actions
}

// bankTradeActions offers single-lot maritime trades at the best rate per
// resource. Multi-lot trades are still accepted by Apply.
func (gs *GameState) bankTradeActions(player *PlayerState) []Action {
	var actions []Action
	owned := player.BuildingVertices()
	for give := Resource(0); give < NumResources; give++ {
		rate := gs.Board.TradeRate(give, owned)
		if player.Hand[give] < rate {
			continue
		}
		for receive := Resource(0); receive < NumResources; receive++ {
			if receive == give || gs.Bank.Resources[receive] == 0 {
				continue
			}
			actions = append(actions, Action{
				Type:    TradeBank,
				Give:    Single(give, rate),
				Receive: Single(receive, 1),
			})
		}
	}
	return actions
}

// playerTradeOffers enumerates one-for-one offers. Richer offers remain legal
// through Apply; the generator keeps the branching factor bounded.
func (gs *GameState) playerTradeOffers(player *PlayerState) []Action {
	var actions []Action
	for give := Resource(0); give < NumResources; give++ {
		if player.Hand[give] == 0 {
			continue
		}
		for receive := Resource(0); receive < NumResources; receive++ {
			if receive == give {
				continue
			}
			actions = append(actions, Action{
				Type:    OfferPlayerTrade,
				Give:    Single(give, 1),
				Receive: Single(receive, 1),
			})
		}
	}
	return actions
}

func (gs *GameState) roadCandidates(player *PlayerState, staged []EdgeID) []EdgeID {
	var edges []EdgeID
	for e := EdgeID(0); e < NumEdges; e++ {
		if gs.validateRoadPlacement(player, e, staged) == nil {
			edges = append(edges, e)
		}
	}
	return edges
}

// enumerateDiscards lists all multisets of size required drawn from hand, in
// lexicographic resource order. Returns nil once the count exceeds limit.
func enumerateDiscards(hand Freqdeck, required, limit int) []Freqdeck {
	var combos []Freqdeck
	var current Freqdeck
	var walk func(r Resource, left int) bool
	walk = func(r Resource, left int) bool {
		if left == 0 {
			if len(combos) >= limit {
				return false
			}
			combos = append(combos, current)
			return true
		}
		if r >= NumResources {
			return true
		}
		max := hand[r]
		if max > left {
			max = left
		}
		for n := 0; n <= max; n++ {
			current[r] = n
			if !walk(r+1, left-n) {
				return false
			}
		}
		current[r] = 0
		return true
	}
	if !walk(0, required) {
		return nil
	}
	return combos
}

// greedyDiscard takes required cards in fixed resource order, most plentiful
// kinds untouched last.
func greedyDiscard(hand Freqdeck, required int) Freqdeck {
	var give Freqdeck
	left := required
	for r := Resource(0); r < NumResources && left > 0; r++ {
		n := hand[r]
		if n > left {
			n = left
		}
		give[r] = n
		left -= n
	}
	return give
}
