package game

// Resource is one of the five tradeable resource kinds.
type Resource int

const (
	Brick Resource = iota
	Lumber
	Wool
	Grain
	Ore
)

const NumResources = 5

func (r Resource) String() string {
	switch r {
	case Brick:
		return "BRICK"
	case Lumber:
		return "LUMBER"
	case Wool:
		return "WOOL"
	case Grain:
		return "GRAIN"
	case Ore:
		return "ORE"
	}
	return "UNKNOWN"
}

// Terrain is a tile's terrain kind: the five producing kinds plus desert.
type Terrain int

const (
	Hills Terrain = iota // produces Brick
	Forest
	Pasture
	Fields
	Mountains
	Desert
)

func (t Terrain) String() string {
	switch t {
	case Hills:
		return "HILLS"
	case Forest:
		return "FOREST"
	case Pasture:
		return "PASTURE"
	case Fields:
		return "FIELDS"
	case Mountains:
		return "MOUNTAINS"
	case Desert:
		return "DESERT"
	}
	return "UNKNOWN"
}

// Produces returns the resource a terrain yields, and false for desert.
func (t Terrain) Produces() (Resource, bool) {
	if t == Desert {
		return 0, false
	}
	return Resource(t), true
}

// DevCard is a development card kind.
type DevCard int

const (
	Knight DevCard = iota
	VictoryPointCard
	RoadBuilding
	YearOfPlenty
	Monopoly
)

const NumDevCards = 5

func (c DevCard) String() string {
	switch c {
	case Knight:
		return "KNIGHT"
	case VictoryPointCard:
		return "VICTORY_POINT"
	case RoadBuilding:
		return "ROAD_BUILDING"
	case YearOfPlenty:
		return "YEAR_OF_PLENTY"
	case Monopoly:
		return "MONOPOLY"
	}
	return "UNKNOWN"
}
