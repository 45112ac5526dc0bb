package rl

import (
	"testing"

	"catan/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestActionSpaceBaseCatalog(t *testing.T) {
	a := NewActionSpace()
	b := NewActionSpace()

	require.Equal(t, a.Size(), b.Size(), "Base catalog size is deterministic")
	for i := 0; i < a.Size(); i++ {
		require.Equal(t, a.actions[i], b.actions[i],
			"Index %d must map to the same action in every fresh space", i)
	}

	t.Run("no duplicate indices", func(t *testing.T) {
		require.Len(t, a.index, len(a.actions))
	})
}

func TestEncodeDecodeInverse(t *testing.T) {
	gs := mustNewGame(t, 3)
	space := NewActionSpace()

	rng := rand.New(rand.NewSource(3))
	for step := 0; step < 200 && !gs.IsOver(); step++ {
		for _, a := range gs.LegalActions() {
			i := space.Encode(a)
			decoded, err := space.Decode(i, gs)
			require.NoError(t, err)
			// Decoding restores the action up to canonicalization, so the
			// decoded action must itself be applicable.
			_, err = gs.Apply(decoded)
			require.NoErrorf(t, err, "Step %d: decoded action %s must stay legal", step, decoded)
		}
		actions := gs.LegalActions()
		next, err := gs.Apply(actions[rng.Intn(len(actions))])
		require.NoError(t, err)
		gs = next
	}
}

func TestLegalMaskMatchesGenerator(t *testing.T) {
	gs := mustNewGame(t, 8)
	space := NewActionSpace()

	rng := rand.New(rand.NewSource(8))
	for step := 0; step < 150 && !gs.IsOver(); step++ {
		legal := gs.LegalActions()
		mask := space.LegalMask(gs)

		marked := 0
		for _, bit := range mask {
			if bit {
				marked++
			}
		}
		// Canonicalization can merge several legal payloads onto one index
		// (different forced dice, same trade pair), never the other way.
		require.LessOrEqual(t, marked, len(legal))
		for _, a := range legal {
			require.Truef(t, mask[space.Encode(a)],
				"Step %d: legal action %s must be marked", step, a)
		}

		next, err := gs.Apply(legal[rng.Intn(len(legal))])
		require.NoError(t, err)
		gs = next
	}
}

func TestDynamicRegistration(t *testing.T) {
	space := NewActionSpace()
	base := space.Size()

	discard := game.Action{Type: game.DiscardToThreshold, Give: game.Single(game.Wool, 3)}
	i := space.Encode(discard)
	require.Equal(t, base, i, "First dynamic action lands after the base catalog")
	require.Equal(t, base+1, space.Size())
	require.Equal(t, i, space.Encode(discard), "Repeated encoding is stable")

	pair := game.Action{Type: game.PlayRoadBuilding, Edges: [2]game.EdgeID{3, 7}}
	require.Equal(t, base+1, space.Encode(pair))
}

func TestDecodeRange(t *testing.T) {
	gs := mustNewGame(t, 3)
	space := NewActionSpace()
	_, err := space.Decode(-1, gs)
	require.Error(t, err)
	_, err = space.Decode(space.Size(), gs)
	require.Error(t, err)
}

func mustNewGame(t *testing.T, seed uint64) *game.GameState {
	t.Helper()
	gs, err := game.NewGame(seed)
	require.NoError(t, err)
	return gs
}
