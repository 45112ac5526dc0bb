package archive

import (
	"context"
	"path/filepath"
	"testing"

	"catan/game"

	"github.com/stretchr/testify/require"
)

func TestArchiveRoundTrip(t *testing.T) {
	a, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err, "should open a fresh archive")
	defer a.Close()

	state := playSome(t, 42, 60)
	records := state.Transcript()
	require.NotEmpty(t, records, "a played game should have a transcript")

	ctx := context.Background()
	id, err := a.SaveGame(ctx, state, records)
	require.NoError(t, err, "should store a finished game")

	restored, loaded, err := a.LoadGame(ctx, id)
	require.NoError(t, err, "should load a stored game")
	require.Equal(t, state.Hash(), restored.Hash(), "restored state should match the saved one")
	require.Equal(t, len(records), len(loaded), "should load the full transcript")
	for i := range records {
		require.Equal(t, records[i].Action, loaded[i].Action, "action %d should round-trip", i)
		require.Equal(t, records[i].After, loaded[i].After, "digest %d should round-trip", i)
	}
}

func TestArchiveListsGames(t *testing.T) {
	a, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	for _, seed := range []uint64{1, 2} {
		state := playSome(t, seed, 30)
		_, err := a.SaveGame(ctx, state, state.Transcript())
		require.NoError(t, err)
	}

	summaries, err := a.Games(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2, "should list every stored game")
	require.Equal(t, uint64(2), summaries[0].Seed, "newest game should come first")
	require.Equal(t, 30, summaries[0].Moves)
}

func TestArchiveLoadMissingGame(t *testing.T) {
	a, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer a.Close()

	_, _, err = a.LoadGame(context.Background(), 999)
	require.Error(t, err, "loading an unknown id should fail")
}

// playSome advances a fresh game by up to n first-legal actions.
func playSome(t *testing.T, seed uint64, n int) *game.GameState {
	t.Helper()
	state, err := game.NewGame(seed)
	require.NoError(t, err)
	for i := 0; i < n && !state.IsOver(); i++ {
		actions := state.LegalActions()
		require.NotEmpty(t, actions)
		state, err = state.Apply(actions[0])
		require.NoError(t, err)
	}
	return state
}
