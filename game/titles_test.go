package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// perimeterEdges returns a tile's six boundary edges in cyclic corner order.
func perimeterEdges(t *testing.T, b *Board, tile TileID) []EdgeID {
	t.Helper()
	corners := b.VerticesOfTile(tile)
	edges := make([]EdgeID, 0, 6)
	for i := range corners {
		edges = append(edges, edgeBetween(t, b, corners[i], corners[(i+1)%len(corners)]))
	}
	return edges
}

func edgeBetween(t *testing.T, b *Board, v1, v2 VertexID) EdgeID {
	t.Helper()
	for _, e := range b.EdgesOfVertex(v1) {
		ends := b.VerticesOfEdge(e)
		if ends[0] == v2 || ends[1] == v2 {
			return e
		}
	}
	t.Fatalf("no edge between vertices %d and %d", v1, v2)
	return 0
}

func TestLongestRoadLength(t *testing.T) {
	board, err := BuildStandard(7)
	require.NoError(t, err)
	perimeter := perimeterEdges(t, board, 0)

	t.Run("empty graph", func(t *testing.T) {
		require.Zero(t, longestRoadLength(board, nil))
	})

	t.Run("open path counts its edges", func(t *testing.T) {
		for k := 1; k <= 5; k++ {
			require.Equal(t, k, longestRoadLength(board, perimeter[:k]),
				"Path of %d edges", k)
		}
	})

	t.Run("closed loop counts every edge once", func(t *testing.T) {
		require.Equal(t, 6, longestRoadLength(board, perimeter))
	})

	t.Run("fork counts the two longest branches", func(t *testing.T) {
		// Three edges of the perimeter plus a spur off the path's interior
		// make branches of 2, 1 and 1: the best trail is 3.
		corners := board.VerticesOfTile(0)
		var spur EdgeID
		found := false
		for _, e := range board.EdgesOfVertex(corners[1]) {
			if e != perimeter[0] && e != perimeter[1] {
				spur = e
				found = true
				break
			}
		}
		require.True(t, found, "Interior corner should have a third edge")
		roads := []EdgeID{perimeter[0], perimeter[1], perimeter[2], spur}
		require.Equal(t, 3, longestRoadLength(board, roads))
	})
}

func TestLongestRoadTitle(t *testing.T) {
	gs := mustNewGame(t, 7)
	pathA := perimeterEdges(t, gs.Board, 0)
	pathB := perimeterEdges(t, gs.Board, 18)
	for _, e := range pathB {
		for _, o := range pathA {
			require.NotEqual(t, o, e, "Test tiles must not share edges")
		}
	}

	t.Run("five roads claim the unheld title", func(t *testing.T) {
		s := gs.Copy()
		for _, e := range pathA[:4] {
			s.Players[0].addRoad(e)
		}
		s.updateLongestRoad(0)
		require.False(t, s.Players[0].HasLongestRoad, "Four roads are below the minimum")

		s.Players[0].addRoad(pathA[4])
		s.updateLongestRoad(0)
		require.True(t, s.Players[0].HasLongestRoad)
		require.Equal(t, 5, s.Players[0].RoadLength)
	})

	t.Run("a tie leaves the title with its holder", func(t *testing.T) {
		s := gs.Copy()
		for _, e := range pathA[:5] {
			s.Players[0].addRoad(e)
		}
		s.updateLongestRoad(0)
		require.True(t, s.Players[0].HasLongestRoad)

		for _, e := range pathB[:5] {
			s.Players[1].addRoad(e)
		}
		s.updateLongestRoad(1)
		require.True(t, s.Players[0].HasLongestRoad, "Holder keeps the title on a tie")
		require.False(t, s.Players[1].HasLongestRoad)

		s.Players[1].addRoad(pathB[5])
		s.updateLongestRoad(1)
		require.False(t, s.Players[0].HasLongestRoad, "Strictly longer network takes the title")
		require.True(t, s.Players[1].HasLongestRoad)
	})
}

func TestLargestArmyTitle(t *testing.T) {
	gs := mustNewGame(t, 7)

	t.Run("three knights claim the unheld title", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].PlayedDev[Knight] = 2
		s.updateLargestArmy(0)
		require.False(t, s.Players[0].HasLargestArmy, "Two knights are below the minimum")

		s.Players[0].PlayedDev[Knight] = 3
		s.updateLargestArmy(0)
		require.True(t, s.Players[0].HasLargestArmy)
	})

	t.Run("a tie leaves the title with its holder", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].PlayedDev[Knight] = 3
		s.updateLargestArmy(0)

		s.Players[1].PlayedDev[Knight] = 3
		s.updateLargestArmy(1)
		require.True(t, s.Players[0].HasLargestArmy, "Holder keeps the title on a tie")
		require.False(t, s.Players[1].HasLargestArmy)

		s.Players[1].PlayedDev[Knight] = 4
		s.updateLargestArmy(1)
		require.False(t, s.Players[0].HasLargestArmy)
		require.True(t, s.Players[1].HasLargestArmy)
	})

	t.Run("titles are worth two points", func(t *testing.T) {
		s := gs.Copy()
		base := s.Players[0].VisibleVictoryPoints()
		s.Players[0].HasLargestArmy = true
		require.Equal(t, base+TitlePoints, s.Players[0].VisibleVictoryPoints())
	})
}
