package game

// EventType tags the semantic events a transition emits for observers
// (GUI, telemetry). Events flow out of the engine only; subscribers cannot
// feed back into the state.
type EventType int

const (
	EventDiceRolled EventType = iota
	EventResourcesDistributed
	EventSettlementPlaced
	EventRoadPlaced
	EventCityBuilt
	EventRobberMoved
	EventResourceStolen
	EventCardBought
	EventCardPlayed
	EventTradeExecuted
	EventDiscardResolved
	EventTitleTransferred
	EventTurnEnded
	EventVictory
)

func (t EventType) String() string {
	switch t {
	case EventDiceRolled:
		return "DICE_ROLLED"
	case EventResourcesDistributed:
		return "RESOURCES_DISTRIBUTED"
	case EventSettlementPlaced:
		return "SETTLEMENT_PLACED"
	case EventRoadPlaced:
		return "ROAD_PLACED"
	case EventCityBuilt:
		return "CITY_BUILT"
	case EventRobberMoved:
		return "ROBBER_MOVED"
	case EventResourceStolen:
		return "RESOURCE_STOLEN"
	case EventCardBought:
		return "CARD_BOUGHT"
	case EventCardPlayed:
		return "CARD_PLAYED"
	case EventTradeExecuted:
		return "TRADE_EXECUTED"
	case EventDiscardResolved:
		return "DISCARD_RESOLVED"
	case EventTitleTransferred:
		return "TITLE_TRANSFERRED"
	case EventTurnEnded:
		return "TURN_ENDED"
	case EventVictory:
		return "VICTORY"
	}
	return "UNKNOWN"
}

// Title names a transferable bonus.
type Title int

const (
	LongestRoadTitle Title = iota
	LargestArmyTitle
)

func (t Title) String() string {
	if t == LongestRoadTitle {
		return "LONGEST_ROAD"
	}
	return "LARGEST_ARMY"
}

// Event is one semantic occurrence during a transition. Only the fields
// relevant to the Type are set.
type Event struct {
	Type      EventType
	Player    PlayerID
	Vertex    VertexID
	Edge      EdgeID
	Tile      TileID
	Roll      int
	Card      DevCard
	Title     Title
	From      PlayerID // previous title holder or steal victim; NoPlayer if none
	Resources Freqdeck // distribution, steal, trade or discard deltas
}
