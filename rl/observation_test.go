package rl

import (
	"testing"

	"catan/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func advance(t *testing.T, gs *game.GameState, seed uint64, steps int) *game.GameState {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < steps && !gs.IsOver(); i++ {
		actions := gs.LegalActions()
		next, err := gs.Apply(actions[rng.Intn(len(actions))])
		require.NoError(t, err)
		gs = next
	}
	return gs
}

func TestObservationShape(t *testing.T) {
	gs := advance(t, mustNewGame(t, 4), 4, 80)

	for p := game.PlayerID(0); p < game.NumPlayers; p++ {
		obs := Observe(gs, p)
		require.Len(t, obs, ObservationSize, "Fixed layout regardless of state")
	}
}

func TestObservationIsEgoCentric(t *testing.T) {
	gs := advance(t, mustNewGame(t, 4), 4, 60)

	a := Observe(gs, 0)
	b := Observe(gs, 1)

	t.Run("board block is shared", func(t *testing.T) {
		require.Equal(t, a[:boardBlock], b[:boardBlock])
	})

	t.Run("road block flips sign", func(t *testing.T) {
		roadsA := a[boardBlock : boardBlock+roadBlock]
		roadsB := b[boardBlock : boardBlock+roadBlock]
		for i := range roadsA {
			require.Equal(t, roadsA[i], -roadsB[i], "Edge %d", i)
		}
	})

	t.Run("hand blocks swap", func(t *testing.T) {
		off := boardBlock + roadBlock + buildingBlock
		n := game.NumResources
		require.Equal(t, a[off:off+n], b[off+n:off+2*n], "A's own hand is B's opponent hand")
		require.Equal(t, a[off+n:off+2*n], b[off:off+n])
	})
}

func TestObservationTracksRobber(t *testing.T) {
	gs := mustNewGame(t, 4)
	obs := Observe(gs, 0)

	robberRow := obs[int(gs.Robber)*tileFeatures : (int(gs.Robber)+1)*tileFeatures]
	require.Zero(t, robberRow[game.NumResources],
		"The desert start tile has no production weight")

	for tile := game.TileID(0); tile < game.NumTiles; tile++ {
		row := obs[int(tile)*tileFeatures : (int(tile)+1)*tileFeatures]
		if _, produces := gs.Board.Tiles[tile].Terrain.Produces(); produces {
			require.Positive(t, row[game.NumResources], "Tile %d produces", tile)
		}
	}
}

func TestObservationValueRanges(t *testing.T) {
	gs := advance(t, mustNewGame(t, 12), 12, 120)
	for p := game.PlayerID(0); p < game.NumPlayers; p++ {
		for i, v := range Observe(gs, p) {
			require.GreaterOrEqualf(t, v, float32(-2), "Component %d", i)
			require.LessOrEqualf(t, v, float32(2), "Component %d", i)
		}
	}
}
