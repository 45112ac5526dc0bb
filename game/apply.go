package game

import "fmt"

// Apply validates a against the current state and returns the successor.
// The receiver is never mutated; on a rule violation the error wraps one of
// the sentinel errors in errors.go and the returned state is nil.
func (gs *GameState) Apply(a Action) (*GameState, error) {
	if err := gs.validate(a); err != nil {
		return nil, err
	}
	ns := gs.Copy()
	ns.log = &actionLog{prev: gs.log, action: a, index: gs.ActionCount()}

	switch a.Type {
	case RollDice:
		ns.applyRoll(a)
	case MoveRobber:
		ns.applyRobberMove(a)
	case DiscardToThreshold:
		ns.applyDiscard(a)
	case BuildRoad:
		ns.applyBuildRoad(a)
	case BuildSettlement:
		ns.applyBuildSettlement(a)
	case BuildCity:
		ns.applyBuildCity(a)
	case BuyDevelopmentCard:
		ns.applyBuyDevelopment()
	case PlayKnight:
		ns.applyKnight()
	case PlayRoadBuilding:
		ns.applyRoadBuilding(a)
	case PlayYearOfPlenty:
		ns.applyYearOfPlenty(a)
	case PlayMonopoly:
		ns.applyMonopoly(a)
	case TradeBank:
		ns.applyBankTrade(a)
	case OfferPlayerTrade:
		ns.applyTradeOffer(a)
	case AcceptPlayerTrade:
		ns.applyTradeAccept()
	case DeclinePlayerTrade:
		ns.applyTradeDecline()
	case EndTurn:
		ns.applyEndTurn()
	default:
		return nil, fmt.Errorf("%w: unhandled action %s", ErrCorruptState, a.Type)
	}
	return ns, nil
}

func (gs *GameState) applyRoll(a Action) {
	d1, d2 := a.Dice[0], a.Dice[1]
	if d1 == 0 {
		d1, d2 = gs.Rand.d6(), gs.Rand.d6()
	}
	roll := d1 + d2
	gs.LastRoll = roll
	gs.emit(Event{Type: EventDiceRolled, Player: gs.Current, Roll: roll})

	if roll == 7 {
		gs.RobberRoller = gs.Current
		anyPending := false
		for id := PlayerID(0); id < NumPlayers; id++ {
			if total := gs.Players[id].Hand.Total(); total > DiscardThreshold {
				gs.PendingDiscards[id] = total - DiscardThreshold
				anyPending = true
			}
		}
		if anyPending {
			gs.Stage = StageDiscard
			gs.Current = gs.nextDiscarder()
		} else {
			gs.Stage = StageRobber
		}
		return
	}
	gs.distribute(roll)
	gs.Stage = StageFree
}

// distribute pays out production for a non-seven roll. If the bank cannot
// cover the total demand for a resource, nobody receives that resource.
func (gs *GameState) distribute(roll int) {
	var demand [NumPlayers]Freqdeck
	for _, tile := range gs.Board.Tiles {
		if tile.Pip != roll || tile.ID == gs.Robber {
			continue
		}
		resource, produces := tile.Terrain.Produces()
		if !produces {
			continue
		}
		for _, v := range gs.Board.VerticesOfTile(tile.ID) {
			for id := PlayerID(0); id < NumPlayers; id++ {
				if gs.Players[id].HasSettlementAt(v) {
					demand[id][resource]++
				} else if gs.Players[id].HasCityAt(v) {
					demand[id][resource] += 2
				}
			}
		}
	}
	for r := Resource(0); r < NumResources; r++ {
		if demand[0][r]+demand[1][r] > gs.Bank.Resources[r] {
			demand[0][r], demand[1][r] = 0, 0
		}
	}
	for id := PlayerID(0); id < NumPlayers; id++ {
		if demand[id].IsZero() {
			continue
		}
		gs.Bank.Resources = gs.Bank.Resources.Sub(demand[id])
		gs.Players[id].Hand = gs.Players[id].Hand.Add(demand[id])
		gs.emit(Event{Type: EventResourcesDistributed, Player: id, Resources: demand[id]})
	}
}

func (gs *GameState) nextDiscarder() PlayerID {
	for id := PlayerID(0); id < NumPlayers; id++ {
		if gs.PendingDiscards[id] > 0 {
			return id
		}
	}
	return NoPlayer
}

func (gs *GameState) applyDiscard(a Action) {
	player := gs.CurrentPlayer()
	player.Hand = player.Hand.Sub(a.Give)
	gs.Bank.Resources = gs.Bank.Resources.Add(a.Give)
	gs.PendingDiscards[gs.Current] = 0
	gs.emit(Event{Type: EventDiscardResolved, Player: gs.Current, Resources: a.Give})

	if next := gs.nextDiscarder(); next != NoPlayer {
		gs.Current = next
		return
	}
	gs.Current = gs.RobberRoller
	gs.Stage = StageRobber
}

func (gs *GameState) applyRobberMove(a Action) {
	gs.Robber = a.Tile
	gs.emit(Event{Type: EventRobberMoved, Player: gs.Current, Tile: a.Tile})
	if a.Steal != NoPlayer {
		victim := &gs.Players[a.Steal]
		stolen := gs.Rand.pickCard(victim.Hand)
		victim.Hand = victim.Hand.Sub(Single(stolen, 1))
		gs.CurrentPlayer().Hand = gs.CurrentPlayer().Hand.Add(Single(stolen, 1))
		gs.emit(Event{Type: EventResourceStolen, Player: gs.Current, From: a.Steal})
	}
	gs.RobberRoller = NoPlayer
	gs.Stage = StageFree
}

func (gs *GameState) applyBuildRoad(a Action) {
	player := gs.CurrentPlayer()
	if gs.Phase == SetupRound1 || gs.Phase == SetupRound2 {
		player.addRoad(a.Edge)
		gs.updateLongestRoad(gs.Current)
		gs.emit(Event{Type: EventRoadPlaced, Player: gs.Current, Edge: a.Edge})
		gs.AwaitingSetupRoad = false
		gs.advanceSetup()
		return
	}
	player.Hand = player.Hand.Sub(RoadCost)
	gs.Bank.Resources = gs.Bank.Resources.Add(RoadCost)
	player.addRoad(a.Edge)
	gs.updateLongestRoad(gs.Current)
	gs.emit(Event{Type: EventRoadPlaced, Player: gs.Current, Edge: a.Edge})
	gs.checkVictory(gs.Current)
}

// advanceSetup moves the snake order 0,1,1,0 forward after each completed
// settlement-road pair.
func (gs *GameState) advanceSetup() {
	if gs.Phase == SetupRound1 {
		if gs.Current == 0 {
			gs.Current = 1
		} else {
			gs.Phase = SetupRound2
		}
		return
	}
	if gs.Current == 1 {
		gs.Current = 0
		return
	}
	gs.Phase = Main
	gs.Stage = StageRoll
	gs.Current = 0
	gs.Turn = 1
}

func (gs *GameState) applyBuildSettlement(a Action) {
	player := gs.CurrentPlayer()
	if gs.Phase == SetupRound1 || gs.Phase == SetupRound2 {
		player.addSettlement(a.Vertex)
		gs.emit(Event{Type: EventSettlementPlaced, Player: gs.Current, Vertex: a.Vertex})
		if gs.Phase == SetupRound2 {
			gs.grantSetupYield(a.Vertex)
		}
		gs.AwaitingSetupRoad = true
		gs.SetupVertex = a.Vertex
		return
	}
	player.Hand = player.Hand.Sub(SettlementCost)
	gs.Bank.Resources = gs.Bank.Resources.Add(SettlementCost)
	player.addSettlement(a.Vertex)
	gs.emit(Event{Type: EventSettlementPlaced, Player: gs.Current, Vertex: a.Vertex})
	gs.checkVictory(gs.Current)
}

// grantSetupYield pays one unit per producing tile adjacent to the second
// setup settlement, capped by bank stock.
func (gs *GameState) grantSetupYield(v VertexID) {
	var gain Freqdeck
	for _, t := range gs.Board.TilesOfVertex(v) {
		resource, produces := gs.Board.Tiles[t].Terrain.Produces()
		if produces && gs.Bank.Resources[resource] > gain[resource] {
			gain[resource]++
		}
	}
	if gain.IsZero() {
		return
	}
	gs.Bank.Resources = gs.Bank.Resources.Sub(gain)
	gs.CurrentPlayer().Hand = gs.CurrentPlayer().Hand.Add(gain)
	gs.emit(Event{Type: EventResourcesDistributed, Player: gs.Current, Resources: gain})
}

func (gs *GameState) applyBuildCity(a Action) {
	player := gs.CurrentPlayer()
	player.Hand = player.Hand.Sub(CityCost)
	gs.Bank.Resources = gs.Bank.Resources.Add(CityCost)
	player.addCity(a.Vertex)
	gs.emit(Event{Type: EventCityBuilt, Player: gs.Current, Vertex: a.Vertex})
	gs.checkVictory(gs.Current)
}

func (gs *GameState) applyBuyDevelopment() {
	player := gs.CurrentPlayer()
	player.Hand = player.Hand.Sub(DevelopmentCost)
	gs.Bank.Resources = gs.Bank.Resources.Add(DevelopmentCost)
	card, _ := gs.Bank.draw()
	player.NewDev[card]++
	if card == VictoryPointCard {
		player.HiddenPoints++
	}
	gs.emit(Event{Type: EventCardBought, Player: gs.Current, Card: card})
	gs.checkVictory(gs.Current)
}

func (gs *GameState) applyKnight() {
	player := gs.CurrentPlayer()
	player.Dev[Knight]--
	player.PlayedDev[Knight]++
	gs.updateLargestArmy(gs.Current)
	gs.emit(Event{Type: EventCardPlayed, Player: gs.Current, Card: Knight})
	gs.checkVictory(gs.Current)
	if gs.Phase == Over {
		return
	}
	gs.RobberRoller = gs.Current
	gs.Stage = StageRobber
}

func (gs *GameState) applyRoadBuilding(a Action) {
	player := gs.CurrentPlayer()
	player.Dev[RoadBuilding]--
	player.PlayedDev[RoadBuilding]++
	gs.DevPlayedThisTurn = true
	gs.emit(Event{Type: EventCardPlayed, Player: gs.Current, Card: RoadBuilding})
	for _, e := range a.Edges {
		player.addRoad(e)
		gs.emit(Event{Type: EventRoadPlaced, Player: gs.Current, Edge: e})
	}
	gs.updateLongestRoad(gs.Current)
	gs.checkVictory(gs.Current)
}

func (gs *GameState) applyYearOfPlenty(a Action) {
	player := gs.CurrentPlayer()
	player.Dev[YearOfPlenty]--
	player.PlayedDev[YearOfPlenty]++
	gs.DevPlayedThisTurn = true
	gs.Bank.Resources = gs.Bank.Resources.Sub(a.Receive)
	player.Hand = player.Hand.Add(a.Receive)
	gs.emit(Event{Type: EventCardPlayed, Player: gs.Current, Card: YearOfPlenty, Resources: a.Receive})
}

func (gs *GameState) applyMonopoly(a Action) {
	player := gs.CurrentPlayer()
	player.Dev[Monopoly]--
	player.PlayedDev[Monopoly]++
	gs.DevPlayedThisTurn = true
	opponent := gs.Opponent()
	taken := Single(a.Resource, opponent.Hand[a.Resource])
	opponent.Hand = opponent.Hand.Sub(taken)
	player.Hand = player.Hand.Add(taken)
	gs.emit(Event{Type: EventCardPlayed, Player: gs.Current, Card: Monopoly, Resources: taken})
}

func (gs *GameState) applyBankTrade(a Action) {
	player := gs.CurrentPlayer()
	player.Hand = player.Hand.Sub(a.Give).Add(a.Receive)
	gs.Bank.Resources = gs.Bank.Resources.Add(a.Give).Sub(a.Receive)
	gs.emit(Event{Type: EventTradeExecuted, Player: gs.Current, Resources: a.Give})
}

func (gs *GameState) applyTradeOffer(a Action) {
	gs.PendingTrade = &TradeOffer{Proposer: gs.Current, Give: a.Give, Receive: a.Receive}
	gs.Stage = StageTradeReply
	gs.Current = gs.Current.Opponent()
}

func (gs *GameState) applyTradeAccept() {
	trade := gs.PendingTrade
	proposer := &gs.Players[trade.Proposer]
	responder := gs.CurrentPlayer()
	proposer.Hand = proposer.Hand.Sub(trade.Give).Add(trade.Receive)
	responder.Hand = responder.Hand.Sub(trade.Receive).Add(trade.Give)
	gs.emit(Event{Type: EventTradeExecuted, Player: trade.Proposer, From: responder.ID, Resources: trade.Give})
	gs.Current = trade.Proposer
	gs.PendingTrade = nil
	gs.Stage = StageFree
}

func (gs *GameState) applyTradeDecline() {
	gs.Current = gs.PendingTrade.Proposer
	gs.PendingTrade = nil
	gs.Stage = StageFree
}

func (gs *GameState) applyEndTurn() {
	player := gs.CurrentPlayer()
	for c := DevCard(0); c < NumDevCards; c++ {
		player.Dev[c] += player.NewDev[c]
		player.NewDev[c] = 0
	}
	gs.emit(Event{Type: EventTurnEnded, Player: gs.Current})
	gs.Current = gs.Current.Opponent()
	gs.Turn++
	gs.Stage = StageRoll
	gs.LastRoll = 0
	gs.DevPlayedThisTurn = false
}
