package game

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// Canonical sizes of the standard 19-tile board.
const (
	NumTiles    = 19
	NumVertices = 54
	NumEdges    = 72
	NumPorts    = 9
)

type (
	TileID   int
	VertexID int
	EdgeID   int
	PortID   int
)

// NoTile marks the absence of a tile reference.
const NoTile TileID = -1

// Tile is one hex of the board. Pip is 0 for the desert. The robber location
// is not stored here: it lives on GameState so the Board can stay immutable
// and shared across every state of a game.
type Tile struct {
	ID      TileID
	Terrain Terrain
	Pip     int
}

// Port is a harbor bound to one boundary edge. Generic ports trade 3:1 on any
// resource; specific ports trade 2:1 on their resource.
type Port struct {
	ID       PortID
	Edge     EdgeID
	Generic  bool
	Resource Resource
}

// Board is the static topology: tiles, ports, and precomputed adjacency
// between canonical integer IDs. It is built once per game and never mutated;
// all other components thread only the IDs.
type Board struct {
	Tiles [NumTiles]Tile
	Ports [NumPorts]Port

	tileVertices   [NumTiles][6]VertexID
	tileNeighbors  [NumTiles][]TileID
	vertexTiles    [NumVertices][]TileID
	vertexEdges    [NumVertices][]EdgeID
	vertexAdjacent [NumVertices][]VertexID
	edgeVertices   [NumEdges][2]VertexID
	edgeAdjacent   [NumEdges][]EdgeID
	edgeTiles      [NumEdges][]TileID

	// Trade rates reachable from each vertex: generic 3:1 and per-resource 2:1.
	vertexGenericPort  [NumVertices]bool
	vertexResourcePort [NumVertices][NumResources]bool
}

// cube coordinates of the 19 standard tiles, desert-first spiral.
var tileCubes = [NumTiles][3]int{
	{0, 0, 0},
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1}, {-1, 1, 0}, {-1, 0, 1}, {0, -1, 1},
	{2, -1, -1}, {2, 0, -2}, {1, 1, -2}, {0, 2, -2}, {-1, 2, -1}, {-2, 2, 0},
	{-2, 1, 1}, {-2, 0, 2}, {-1, -1, 2}, {0, -2, 2}, {1, -2, 1}, {2, -2, 0},
}

/// Terrain multiset of the standard board: 4 forest, 4 pasture, 4 fields,
// 3 hills, 3 mountains, 1 desert.
var terrainPool = []Terrain{
	Forest, Forest, Forest, Forest,
	Pasture, Pasture, Pasture, Pasture,
	Fields, Fields, Fields, Fields,
	Hills, Hills, Hills,
	Mountains, Mountains, Mountains,
	Desert,
}

// Pip multiset for the 18 producing tiles.
var pipPool = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

var portKindPool = []Port{
	{Generic: true},
	{Resource: Brick},
	{Generic: true},
	{Resource: Ore},
	{Generic: true},
	{Resource: Wool},
	{Generic: true},
	{Resource: Grain},
	{Resource: Lumber},
}

// Vertex offsets around a pointy-top hex center on the doubled integer
// lattice (x scaled by 2/sqrt3, y scaled by 2), at 30 + 60k degrees.
var vertexOffsets = [6][2]int{
	{1, 1}, {0, 2}, {-1, 1}, {-1, -1}, {0, -2}, {1, -1},
}

type latticeCoord struct{ x, y int }

// BuildStandard deterministically lays out the standard board from a seed:
// terrain and pip numbers shuffled over the fixed tile positions (never
// placing a 6 or 8 next to another 6 or 8), port kinds shuffled over the nine
// fixed harbor edges, and all adjacency tables precomputed. The same seed
// always yields the identical board.
func BuildStandard(seed uint64) (*Board, error) {
	b := &Board{}
	if err := b.buildGeometry(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	if err := b.assignTerrain(rng); err != nil {
		return nil, err
	}
	b.assignPorts(rng)
	return b, nil
}

// buildGeometry derives canonical vertex and edge IDs from the tile lattice.
// Every identity is assigned exactly once, here; no other component ever
// reconstructs one from coordinates.
func (b *Board) buildGeometry() error {
	vertexTiles := map[latticeCoord][]TileID{}
	tileVertexCoords := [NumTiles][6]latticeCoord{}

	for t, cube := range tileCubes {
		q, r := cube[0], cube[2]
		cx, cy := 2*q+r, 3*r
		for k, off := range vertexOffsets {
			c := latticeCoord{cx + off[0], cy + off[1]}
			tileVertexCoords[t][k] = c
			vertexTiles[c] = append(vertexTiles[c], TileID(t))
		}
	}

	vertexCoords := make([]latticeCoord, 0, len(vertexTiles))
	for c := range vertexTiles {
		vertexCoords = append(vertexCoords, c)
	}
	sort.Slice(vertexCoords, func(i, j int) bool {
		if vertexCoords[i].x != vertexCoords[j].x {
			return vertexCoords[i].x < vertexCoords[j].x
		}
		return vertexCoords[i].y < vertexCoords[j].y
	})
	if len(vertexCoords) != NumVertices {
		return fmt.Errorf("%w: expected %d vertices, derived %d",
			ErrCorruptState, NumVertices, len(vertexCoords))
	}
	vertexID := make(map[latticeCoord]VertexID, NumVertices)
	for i, c := range vertexCoords {
		vertexID[c] = VertexID(i)
	}

	type edgeKey struct{ a, b latticeCoord }
	canonicalEdge := func(a, b latticeCoord) edgeKey {
		if b.x < a.x || (b.x == a.x && b.y < a.y) {
			a, b = b, a
		}
		return edgeKey{a, b}
	}

	edgeTiles := map[edgeKey][]TileID{}
	for t := range tileCubes {
		for k := 0; k < 6; k++ {
			a := tileVertexCoords[t][k]
			c := tileVertexCoords[t][(k+1)%6]
			key := canonicalEdge(a, c)
			edgeTiles[key] = append(edgeTiles[key], TileID(t))
		}
	}

	edgeKeys := make([]edgeKey, 0, len(edgeTiles))
	for k := range edgeTiles {
		edgeKeys = append(edgeKeys, k)
	}
	sort.Slice(edgeKeys, func(i, j int) bool {
		a, c := edgeKeys[i], edgeKeys[j]
		if a.a != c.a {
			if a.a.x != c.a.x {
				return a.a.x < c.a.x
			}
			return a.a.y < c.a.y
		}
		if a.b.x != c.b.x {
			return a.b.x < c.b.x
		}
		return a.b.y < c.b.y
	})
	if len(edgeKeys) != NumEdges {
		return fmt.Errorf("%w: expected %d edges, derived %d",
			ErrCorruptState, NumEdges, len(edgeKeys))
	}

	for i, key := range edgeKeys {
		e := EdgeID(i)
		va, vb := vertexID[key.a], vertexID[key.b]
		if vb < va {
			va, vb = vb, va
		}
		b.edgeVertices[e] = [2]VertexID{va, vb}
		tiles := edgeTiles[key]
		sortTiles(tiles)
		b.edgeTiles[e] = tiles
		b.vertexEdges[va] = append(b.vertexEdges[va], e)
		b.vertexEdges[vb] = append(b.vertexEdges[vb], e)
		b.vertexAdjacent[va] = append(b.vertexAdjacent[va], vb)
		b.vertexAdjacent[vb] = append(b.vertexAdjacent[vb], va)
	}

	for c, tiles := range vertexTiles {
		sortTiles(tiles)
		b.vertexTiles[vertexID[c]] = tiles
	}
	for t := range tileCubes {
		for k := 0; k < 6; k++ {
			b.tileVertices[t][k] = vertexID[tileVertexCoords[t][k]]
		}
	}

	// Edges sharing a vertex are adjacent.
	for e := 0; e < NumEdges; e++ {
		for _, v := range b.edgeVertices[e] {
			for _, other := range b.vertexEdges[v] {
				if other != EdgeID(e) {
					b.edgeAdjacent[e] = append(b.edgeAdjacent[e], other)
				}
			}
		}
	}

	// Tiles at cube distance 1 are neighbors.
	for i, a := range tileCubes {
		for j, c := range tileCubes {
			if i == j {
				continue
			}
			d := abs(a[0]-c[0]) + abs(a[1]-c[1]) + abs(a[2]-c[2])
			if d == 2 {
				b.tileNeighbors[i] = append(b.tileNeighbors[i], TileID(j))
			}
		}
	}

	return nil
}

const pipLayoutAttempts = 1000

func (b *Board) assignTerrain(rng *rand.Rand) error {
	if len(terrainPool) != NumTiles || len(pipPool) != NumTiles-1 {
		return fmt.Errorf("%w: terrain/pip pools do not match board size", ErrCorruptState)
	}

	terrains := make([]Terrain, NumTiles)
	pips := make([]int, len(pipPool))

	for attempt := 0; attempt < pipLayoutAttempts; attempt++ {
		copy(terrains, terrainPool)
		rng.Shuffle(len(terrains), func(i, j int) {
			terrains[i], terrains[j] = terrains[j], terrains[i]
		})
		copy(pips, pipPool)
		rng.Shuffle(len(pips), func(i, j int) {
			pips[i], pips[j] = pips[j], pips[i]
		})

		next := 0
		for t := 0; t < NumTiles; t++ {
			tile := Tile{ID: TileID(t), Terrain: terrains[t]}
			if terrains[t] != Desert {
				tile.Pip = pips[next]
				next++
			}
			b.Tiles[t] = tile
		}

		if b.pipsAreFair() {
			return nil
		}
	}
	return fmt.Errorf("%w: no fair pip layout found in %d attempts",
		ErrCorruptState, pipLayoutAttempts)
}

// pipsAreFair rejects layouts where a 6 or 8 touches another 6 or 8.
func (b *Board) pipsAreFair() bool {
	hot := func(t TileID) bool {
		p := b.Tiles[t].Pip
		return p == 6 || p == 8
	}
	for t := range b.Tiles {
		if !hot(TileID(t)) {
			continue
		}
		for _, n := range b.tileNeighbors[t] {
			if hot(n) {
				return false
			}
		}
	}
	return true
}

// assignPorts places the nine harbors on fixed, evenly spaced boundary edges
// and shuffles the kind assignment by seed.
func (b *Board) assignPorts(rng *rand.Rand) {
	type rim struct {
		edge  EdgeID
		angle float64
	}
	boundary := []rim{}
	for e := 0; e < NumEdges; e++ {
		if len(b.edgeTiles[e]) != 1 {
			continue
		}
		va, vb := b.edgeVertices[e][0], b.edgeVertices[e][1]
		// Midpoint angle on the lattice orders the rim walk.
		ax, ay := latticeOf(b, va)
		bx, by := latticeOf(b, vb)
		angle := math.Atan2(float64(ay+by), float64(ax+bx))
		boundary = append(boundary, rim{EdgeID(e), angle})
	}
	sort.Slice(boundary, func(i, j int) bool {
		return boundary[i].angle < boundary[j].angle
	})

	kinds := make([]Port, len(portKindPool))
	copy(kinds, portKindPool)
	rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	for i := 0; i < NumPorts; i++ {
		edge := boundary[i*len(boundary)/NumPorts].edge
		port := kinds[i]
		port.ID = PortID(i)
		port.Edge = edge
		b.Ports[i] = port

		for _, v := range b.edgeVertices[edge] {
			if port.Generic {
				b.vertexGenericPort[v] = true
			} else {
				b.vertexResourcePort[v][port.Resource] = true
			}
		}
	}
}

// latticeOf recovers a vertex's lattice coordinate from the tile that owns it.
// Only used during construction for the rim ordering.
func latticeOf(b *Board, v VertexID) (int, int) {
	t := b.vertexTiles[v][0]
	cube := tileCubes[t]
	cx, cy := 2*cube[0]+cube[2], 3*cube[2]
	for k, off := range vertexOffsets {
		if b.tileVertices[t][k] == v {
			return cx + off[0], cy + off[1]
		}
	}
	return cx, cy
}

// DesertTile returns the desert's tile ID, the robber's starting location.
func (b *Board) DesertTile() TileID {
	for _, t := range b.Tiles {
		if t.Terrain == Desert {
			return t.ID
		}
	}
	return 0
}

// TilesOfVertex returns the up-to-three tiles touching a vertex.
func (b *Board) TilesOfVertex(v VertexID) []TileID { return b.vertexTiles[v] }

// VerticesOfTile returns the six corners of a tile.
func (b *Board) VerticesOfTile(t TileID) [6]VertexID { return b.tileVertices[t] }

// VerticesOfEdge returns an edge's two endpoints, smaller ID first.
func (b *Board) VerticesOfEdge(e EdgeID) [2]VertexID { return b.edgeVertices[e] }

// EdgesOfVertex returns the up-to-three edges incident to a vertex.
func (b *Board) EdgesOfVertex(v VertexID) []EdgeID { return b.vertexEdges[v] }

// AdjacentVertices returns the vertices one edge away from v.
func (b *Board) AdjacentVertices(v VertexID) []VertexID { return b.vertexAdjacent[v] }

// AdjacentEdges returns the edges sharing a vertex with e.
func (b *Board) AdjacentEdges(e EdgeID) []EdgeID { return b.edgeAdjacent[e] }

// DistanceOK reports whether v satisfies the building distance rule given the
// occupied vertices: neither v itself nor any adjacent vertex may be occupied.
func (b *Board) DistanceOK(v VertexID, occupied func(VertexID) bool) bool {
	if occupied(v) {
		return false
	}
	for _, n := range b.vertexAdjacent[v] {
		if occupied(n) {
			return false
		}
	}
	return true
}

// TradeRate returns the best ratio the given vertices unlock for a resource:
// 2 with a matching specific port, 3 with a generic port, 4 otherwise.
func (b *Board) TradeRate(r Resource, owned []VertexID) int {
	rate := 4
	for _, v := range owned {
		if b.vertexResourcePort[v][r] {
			return 2
		}
		if b.vertexGenericPort[v] {
			rate = 3
		}
	}
	return rate
}

func sortTiles(tiles []TileID) {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i] < tiles[j] })
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
