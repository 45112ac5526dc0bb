package game

import "fmt"

// ActionType discriminates the closed set of action kinds.
type ActionType int

const (
	RollDice ActionType = iota
	MoveRobber
	DiscardToThreshold
	BuildRoad
	BuildSettlement
	BuildCity
	BuyDevelopmentCard
	PlayKnight
	PlayRoadBuilding
	PlayYearOfPlenty
	PlayMonopoly
	TradeBank
	OfferPlayerTrade
	AcceptPlayerTrade
	DeclinePlayerTrade
	EndTurn

	numActionTypes
)

func (t ActionType) String() string {
	switch t {
	case RollDice:
		return "ROLL_DICE"
	case MoveRobber:
		return "MOVE_ROBBER"
	case DiscardToThreshold:
		return "DISCARD"
	case BuildRoad:
		return "BUILD_ROAD"
	case BuildSettlement:
		return "BUILD_SETTLEMENT"
	case BuildCity:
		return "BUILD_CITY"
	case BuyDevelopmentCard:
		return "BUY_DEVELOPMENT"
	case PlayKnight:
		return "PLAY_KNIGHT"
	case PlayRoadBuilding:
		return "PLAY_ROAD_BUILDING"
	case PlayYearOfPlenty:
		return "PLAY_YEAR_OF_PLENTY"
	case PlayMonopoly:
		return "PLAY_MONOPOLY"
	case TradeBank:
		return "TRADE_BANK"
	case OfferPlayerTrade:
		return "OFFER_TRADE"
	case AcceptPlayerTrade:
		return "ACCEPT_TRADE"
	case DeclinePlayerTrade:
		return "DECLINE_TRADE"
	case EndTurn:
		return "END_TURN"
	}
	return "UNKNOWN"
}

// Action is a tagged union over all action kinds: Type selects the case and
// the payload fields it reads, everything else stays at its zero value. The
// struct is comparable, so actions index maps and catalogs directly.
type Action struct {
	Type     ActionType
	Vertex   VertexID   // BuildSettlement, BuildCity
	Edge     EdgeID     // BuildRoad
	Edges    [2]EdgeID  // PlayRoadBuilding
	Tile     TileID     // MoveRobber
	Steal    PlayerID   // MoveRobber; NoPlayer when nothing to steal
	Resource Resource   // PlayMonopoly
	Give     Freqdeck   // DiscardToThreshold, TradeBank, OfferPlayerTrade
	Receive  Freqdeck   // TradeBank, OfferPlayerTrade, PlayYearOfPlenty
	Dice     [2]int     // RollDice: forced pair for test scenarios, zero to draw
}

// IsStochastic reports whether applying the action consumes RNG draws, which
// the searcher models with chance nodes.
func (a Action) IsStochastic() bool {
	switch a.Type {
	case RollDice:
		return a.Dice[0] == 0
	case MoveRobber:
		return a.Steal != NoPlayer
	case BuyDevelopmentCard:
		// The drawn card depends on the hidden deck order.
		return true
	}
	return false
}

func (a Action) String() string {
	switch a.Type {
	case BuildSettlement, BuildCity:
		return fmt.Sprintf("%s(v%d)", a.Type, a.Vertex)
	case BuildRoad:
		return fmt.Sprintf("%s(e%d)", a.Type, a.Edge)
	case PlayRoadBuilding:
		return fmt.Sprintf("%s(e%d,e%d)", a.Type, a.Edges[0], a.Edges[1])
	case MoveRobber:
		if a.Steal == NoPlayer {
			return fmt.Sprintf("%s(t%d)", a.Type, a.Tile)
		}
		return fmt.Sprintf("%s(t%d,steal p%d)", a.Type, a.Tile, a.Steal)
	case PlayMonopoly:
		return fmt.Sprintf("%s(%s)", a.Type, a.Resource)
	case PlayYearOfPlenty:
		return fmt.Sprintf("%s(%s)", a.Type, a.Receive)
	case DiscardToThreshold:
		return fmt.Sprintf("%s(%s)", a.Type, a.Give)
	case TradeBank, OfferPlayerTrade:
		return fmt.Sprintf("%s(give %s, receive %s)", a.Type, a.Give, a.Receive)
	}
	return a.Type.String()
}
