package game

import "fmt"

// validate is the one legality gate. Apply consults it before any mutation
// and LegalActions only emits actions that pass it, so the generated set and
// the accepted set never diverge.
func (gs *GameState) validate(a Action) error {
	if gs.Phase == Over {
		return fmt.Errorf("%w: game is over", ErrPhaseViolation)
	}
	if a.Type < 0 || a.Type >= numActionTypes {
		return fmt.Errorf("%w: unknown action type %d", ErrInvalidTarget, a.Type)
	}

	if gs.Phase == SetupRound1 || gs.Phase == SetupRound2 {
		return gs.validateSetup(a)
	}

	switch gs.Stage {
	case StageRoll:
		if a.Type != RollDice {
			return fmt.Errorf("%w: awaiting dice roll", ErrPhaseViolation)
		}
		return validDicePair(a.Dice)
	case StageDiscard:
		if a.Type != DiscardToThreshold {
			return fmt.Errorf("%w: awaiting discards", ErrPhaseViolation)
		}
		return gs.validateDiscard(a)
	case StageRobber:
		if a.Type != MoveRobber {
			return fmt.Errorf("%w: awaiting robber move", ErrPhaseViolation)
		}
		return gs.validateRobberMove(a)
	case StageTradeReply:
		if a.Type != AcceptPlayerTrade && a.Type != DeclinePlayerTrade {
			return fmt.Errorf("%w: awaiting trade reply", ErrPhaseViolation)
		}
		return gs.validateTradeReply(a)
	}

	// StageFree.
	player := gs.CurrentPlayer()
	switch a.Type {
	case BuildRoad:
		if len(player.Roads) >= MaxRoads {
			return fmt.Errorf("%w: all %d roads placed", ErrRuleLimitExceeded, MaxRoads)
		}
		if !player.Hand.Contains(RoadCost) {
			return ErrInsufficientResources
		}
		return gs.validateRoadPlacement(player, a.Edge, nil)
	case BuildSettlement:
		if len(player.Settlements) >= MaxSettlements {
			return fmt.Errorf("%w: all %d settlements placed", ErrRuleLimitExceeded, MaxSettlements)
		}
		if !player.Hand.Contains(SettlementCost) {
			return ErrInsufficientResources
		}
		return gs.validateSettlementPlacement(player, a.Vertex, true)
	case BuildCity:
		if len(player.Cities) >= MaxCities {
			return fmt.Errorf("%w: all %d cities placed", ErrRuleLimitExceeded, MaxCities)
		}
		if !player.HasSettlementAt(a.Vertex) {
			return fmt.Errorf("%w: no own settlement at vertex %d", ErrIllegalPlacement, a.Vertex)
		}
		if !player.Hand.Contains(CityCost) {
			return ErrInsufficientResources
		}
		return nil
	case BuyDevelopmentCard:
		if len(gs.Bank.DevDeck) == 0 {
			return fmt.Errorf("%w: development deck is empty", ErrBankDepleted)
		}
		if !player.Hand.Contains(DevelopmentCost) {
			return ErrInsufficientResources
		}
		return nil
	case PlayKnight:
		if player.Dev[Knight] == 0 {
			if player.NewDev[Knight] > 0 {
				return fmt.Errorf("%w: knight bought this turn", ErrRuleLimitExceeded)
			}
			return fmt.Errorf("%w: no knight in hand", ErrCardNotPlayable)
		}
		return nil
	case PlayRoadBuilding:
		if err := gs.validateProgressCard(player, RoadBuilding); err != nil {
			return err
		}
		if MaxRoads-len(player.Roads) < 2 {
			return fmt.Errorf("%w: fewer than two road pieces left", ErrRuleLimitExceeded)
		}
		if a.Edges[0] == a.Edges[1] {
			return fmt.Errorf("%w: duplicate edge", ErrInvalidTarget)
		}
		if err := gs.validateRoadPlacement(player, a.Edges[0], nil); err != nil {
			return err
		}
		return gs.validateRoadPlacement(player, a.Edges[1], []EdgeID{a.Edges[0]})
	case PlayYearOfPlenty:
		if err := gs.validateProgressCard(player, YearOfPlenty); err != nil {
			return err
		}
		if !a.Receive.Valid() || a.Receive.Total() != 2 {
			return fmt.Errorf("%w: must claim exactly two resources", ErrInvalidTarget)
		}
		if !gs.Bank.Resources.Contains(a.Receive) {
			return fmt.Errorf("%w: bank cannot cover %s", ErrBankDepleted, a.Receive)
		}
		return nil
	case PlayMonopoly:
		if err := gs.validateProgressCard(player, Monopoly); err != nil {
			return err
		}
		if a.Resource < 0 || a.Resource >= NumResources {
			return fmt.Errorf("%w: unknown resource", ErrInvalidTarget)
		}
		return nil
	case TradeBank:
		return gs.validateBankTrade(player, a)
	case OfferPlayerTrade:
		if !a.Give.Valid() || !a.Receive.Valid() || a.Give.IsZero() || a.Receive.IsZero() {
			return fmt.Errorf("%w: offer must move resources both ways", ErrInvalidTarget)
		}
		if !player.Hand.Contains(a.Give) {
			return ErrInsufficientResources
		}
		return nil
	case EndTurn:
		return nil
	}
	return fmt.Errorf("%w: %s not allowed now", ErrPhaseViolation, a.Type)
}

func (gs *GameState) validateSetup(a Action) error {
	player := gs.CurrentPlayer()
	if gs.AwaitingSetupRoad {
		if a.Type != BuildRoad {
			return fmt.Errorf("%w: awaiting setup road", ErrPhaseViolation)
		}
		if a.Edge < 0 || a.Edge >= NumEdges {
			return fmt.Errorf("%w: edge %d out of range", ErrInvalidTarget, a.Edge)
		}
		if gs.edgeOccupied(a.Edge) {
			return fmt.Errorf("%w: edge %d occupied", ErrIllegalPlacement, a.Edge)
		}
		// The setup road must touch the settlement just placed.
		for _, v := range gs.Board.VerticesOfEdge(a.Edge) {
			if v == gs.SetupVertex {
				return nil
			}
		}
		return fmt.Errorf("%w: edge %d not adjacent to new settlement", ErrIllegalPlacement, a.Edge)
	}
	if a.Type != BuildSettlement {
		return fmt.Errorf("%w: awaiting setup settlement", ErrPhaseViolation)
	}
	return gs.validateSettlementPlacement(player, a.Vertex, false)
}

func (gs *GameState) validateDiscard(a Action) error {
	required := gs.PendingDiscards[gs.Current]
	if required == 0 {
		return fmt.Errorf("%w: no discard outstanding", ErrPhaseViolation)
	}
	if !a.Give.Valid() {
		return fmt.Errorf("%w: negative discard count", ErrInvalidTarget)
	}
	if a.Give.Total() != required {
		return fmt.Errorf("%w: must discard exactly %d cards", ErrInvalidTarget, required)
	}
	if !gs.CurrentPlayer().Hand.Contains(a.Give) {
		return ErrInsufficientResources
	}
	return nil
}

func (gs *GameState) validateRobberMove(a Action) error {
	if a.Tile < 0 || a.Tile >= NumTiles {
		return fmt.Errorf("%w: tile %d out of range", ErrInvalidTarget, a.Tile)
	}
	if a.Tile == gs.Robber {
		return fmt.Errorf("%w: robber already on tile %d", ErrInvalidTarget, a.Tile)
	}
	targets := gs.stealTargets(a.Tile)
	if len(targets) == 0 {
		if a.Steal != NoPlayer {
			return fmt.Errorf("%w: no player to steal from on tile %d", ErrInvalidTarget, a.Tile)
		}
		return nil
	}
	for _, t := range targets {
		if a.Steal == t {
			return nil
		}
	}
	return fmt.Errorf("%w: player %d is not a steal target", ErrInvalidTarget, a.Steal)
}

func (gs *GameState) validateTradeReply(a Action) error {
	trade := gs.PendingTrade
	if trade == nil {
		return fmt.Errorf("%w: no trade pending", ErrCorruptState)
	}
	if a.Type == DeclinePlayerTrade {
		return nil
	}
	if !gs.Players[trade.Proposer].Hand.Contains(trade.Give) {
		return fmt.Errorf("%w: proposer no longer holds offer", ErrInsufficientResources)
	}
	if !gs.CurrentPlayer().Hand.Contains(trade.Receive) {
		return ErrInsufficientResources
	}
	return nil
}

func (gs *GameState) validateProgressCard(player *PlayerState, card DevCard) error {
	if gs.DevPlayedThisTurn {
		return fmt.Errorf("%w: already played a progress card this turn", ErrRuleLimitExceeded)
	}
	if player.Dev[card] == 0 {
		if player.NewDev[card] > 0 {
			return fmt.Errorf("%w: %s bought this turn", ErrRuleLimitExceeded, card)
		}
		return fmt.Errorf("%w: no %s in hand", ErrCardNotPlayable, card)
	}
	return nil
}

func (gs *GameState) validateBankTrade(player *PlayerState, a Action) error {
	give, giveAmount, ok := singleResource(a.Give)
	if !ok {
		return fmt.Errorf("%w: give exactly one resource kind", ErrInvalidTarget)
	}
	receive, receiveAmount, ok := singleResource(a.Receive)
	if !ok {
		return fmt.Errorf("%w: receive exactly one resource kind", ErrInvalidTarget)
	}
	if give == receive {
		return fmt.Errorf("%w: cannot trade a resource for itself", ErrInvalidTarget)
	}
	rate := gs.Board.TradeRate(give, player.BuildingVertices())
	if giveAmount != rate*receiveAmount {
		return fmt.Errorf("%w: trade rate for %s is %d:1", ErrInvalidTarget, give, rate)
	}
	if !player.Hand.Contains(a.Give) {
		return ErrInsufficientResources
	}
	if !gs.Bank.Resources.Contains(a.Receive) {
		return fmt.Errorf("%w: bank out of %s", ErrBankDepleted, receive)
	}
	return nil
}

// validateRoadPlacement checks an edge is free and connected to the player's
// network. staged carries roads granted earlier in the same action.
func (gs *GameState) validateRoadPlacement(player *PlayerState, e EdgeID, staged []EdgeID) error {
	if e < 0 || e >= NumEdges {
		return fmt.Errorf("%w: edge %d out of range", ErrInvalidTarget, e)
	}
	if gs.edgeOccupied(e) {
		return fmt.Errorf("%w: edge %d occupied", ErrIllegalPlacement, e)
	}
	for _, staging := range staged {
		if staging == e {
			return fmt.Errorf("%w: edge %d occupied", ErrIllegalPlacement, e)
		}
	}
	if gs.roadConnected(player, e, staged) {
		return nil
	}
	return fmt.Errorf("%w: edge %d not connected to network", ErrIllegalPlacement, e)
}

func (gs *GameState) roadConnected(player *PlayerState, e EdgeID, staged []EdgeID) bool {
	for _, v := range gs.Board.VerticesOfEdge(e) {
		if player.OwnsVertex(v) {
			return true
		}
		for _, incident := range gs.Board.EdgesOfVertex(v) {
			if incident == e {
				continue
			}
			if player.OwnsEdge(incident) {
				return true
			}
			for _, staging := range staged {
				if staging == incident {
					return true
				}
			}
		}
	}
	return false
}

// validateSettlementPlacement enforces vertex range, the distance rule, and
// (outside setup) connectivity to one of the player's roads.
func (gs *GameState) validateSettlementPlacement(player *PlayerState, v VertexID, needRoad bool) error {
	if v < 0 || v >= NumVertices {
		return fmt.Errorf("%w: vertex %d out of range", ErrInvalidTarget, v)
	}
	if !gs.Board.DistanceOK(v, gs.vertexOccupied) {
		return fmt.Errorf("%w: vertex %d violates distance rule", ErrIllegalPlacement, v)
	}
	if needRoad {
		touched := false
		for _, e := range gs.Board.EdgesOfVertex(v) {
			if player.OwnsEdge(e) {
				touched = true
				break
			}
		}
		if !touched {
			return fmt.Errorf("%w: vertex %d not on own road", ErrIllegalPlacement, v)
		}
	}
	return nil
}

func (gs *GameState) vertexOccupied(v VertexID) bool {
	return gs.Players[0].OwnsVertex(v) || gs.Players[1].OwnsVertex(v)
}

func (gs *GameState) edgeOccupied(e EdgeID) bool {
	return gs.Players[0].OwnsEdge(e) || gs.Players[1].OwnsEdge(e)
}

// stealTargets returns opponents with a building on the tile and at least one
// resource card, in ID order.
func (gs *GameState) stealTargets(t TileID) []PlayerID {
	mover := gs.Current
	var targets []PlayerID
	for id := PlayerID(0); id < NumPlayers; id++ {
		if id == mover {
			continue
		}
		p := &gs.Players[id]
		if p.Hand.Total() == 0 {
			continue
		}
		for _, v := range gs.Board.VerticesOfTile(t) {
			if p.OwnsVertex(v) {
				targets = append(targets, id)
				break
			}
		}
	}
	return targets
}

func singleResource(d Freqdeck) (Resource, int, bool) {
	found := Resource(-1)
	amount := 0
	for r, n := range d {
		if n < 0 {
			return 0, 0, false
		}
		if n > 0 {
			if found >= 0 {
				return 0, 0, false
			}
			found = Resource(r)
			amount = n
		}
	}
	if found < 0 {
		return 0, 0, false
	}
	return found, amount, true
}

func validDicePair(dice [2]int) error {
	if dice[0] == 0 && dice[1] == 0 {
		return nil
	}
	for _, d := range dice {
		if d < 1 || d > 6 {
			return fmt.Errorf("%w: forced die %d out of range", ErrInvalidTarget, d)
		}
	}
	return nil
}
