package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// drive advances a fresh game by steps random actions.
func drive(t *testing.T, seed uint64, steps int) *GameState {
	t.Helper()
	gs := mustNewGame(t, seed)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < steps && !gs.IsOver(); i++ {
		actions := gs.LegalActions()
		require.NotEmpty(t, actions)
		next, err := gs.Apply(actions[rng.Intn(len(actions))])
		require.NoError(t, err)
		gs = next
	}
	return gs
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, steps := range []int{0, 8, 60, 200} {
		gs := drive(t, 21, steps)
		snap := gs.Snapshot()

		data, err := snap.Encode()
		require.NoError(t, err)

		decoded, err := DecodeSnapshot(data)
		require.NoError(t, err)

		restored, err := decoded.Restore()
		require.NoError(t, err)

		require.Equal(t, snap, restored.Snapshot(),
			"After %d steps the restored state should snapshot identically", steps)
		require.Equal(t, gs.Phase, restored.Phase)
		require.Equal(t, gs.Current, restored.Current)
		require.Equal(t, gs.Board.Tiles, restored.Board.Tiles,
			"The board is rebuilt from the recorded seed")
	}
}

func TestSnapshotCanonicalEncoding(t *testing.T) {
	gs := drive(t, 21, 40)
	first, err := gs.Snapshot().Encode()
	require.NoError(t, err)
	second, err := gs.Snapshot().Encode()
	require.NoError(t, err)
	require.Equal(t, first, second, "Equal states must encode to identical bytes")

	h1, err := gs.Snapshot().ContentHash()
	require.NoError(t, err)
	h2, err := gs.Snapshot().ContentHash()
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64, "Content hash is hex SHA-256")
}

func TestSnapshotReplayedRandomness(t *testing.T) {
	// A restored state must draw the same dice the original would have.
	gs := drive(t, 33, 25)
	if gs.Stage != StageRoll {
		// Walk with EndTurn-ish first actions until a roll is pending.
		for !gs.IsOver() && gs.Stage != StageRoll {
			next, err := gs.Apply(gs.LegalActions()[0])
			require.NoError(t, err)
			gs = next
		}
	}
	if gs.IsOver() {
		t.Skip("game finished before reaching a roll")
	}

	restored, err := gs.Snapshot().Restore()
	require.NoError(t, err)

	a := forceRoll(t, gs, 0, 0)
	b := forceRoll(t, restored, 0, 0)
	require.Equal(t, a.LastRoll, b.LastRoll, "Replayed RNG must continue the same stream")
}

func TestDecodeSnapshotRejectsCorruption(t *testing.T) {
	gs := drive(t, 21, 30)
	good := gs.Snapshot()

	t.Run("wrong version", func(t *testing.T) {
		bad := *good
		bad.Version = SnapshotVersion + 1
		data, err := bad.Encode()
		require.NoError(t, err)
		_, err = DecodeSnapshot(data)
		require.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("negative bank stock", func(t *testing.T) {
		bad := *good
		bad.BankResources[Ore] = -1
		data, err := bad.Encode()
		require.NoError(t, err)
		_, err = DecodeSnapshot(data)
		require.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("resource total above supply", func(t *testing.T) {
		bad := *good
		bad.Players[0].Hand[Brick] += BankResourceCount
		data, err := bad.Encode()
		require.NoError(t, err)
		_, err = DecodeSnapshot(data)
		require.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("out of range robber", func(t *testing.T) {
		bad := *good
		bad.Robber = NumTiles
		data, err := bad.Encode()
		require.NoError(t, err)
		_, err = DecodeSnapshot(data)
		require.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("garbage bytes", func(t *testing.T) {
		_, err := DecodeSnapshot([]byte("not a snapshot"))
		require.Error(t, err)
	})
}

func TestTranscript(t *testing.T) {
	gs := drive(t, 21, 50)
	records := gs.Transcript()
	require.Len(t, records, gs.ActionCount())

	for i, rec := range records {
		require.Equal(t, i, rec.Index)
		require.Contains(t, []string{"red", "blue"}, rec.Player)
	}
	require.Equal(t, gs.Hash(), records[len(records)-1].After,
		"Replaying the log must reproduce the present state")
}
