package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLegalActionsAlwaysApply(t *testing.T) {
	for _, seed := range []uint64{1, 17, 65} {
		gs := mustNewGame(t, seed)
		rng := rand.New(rand.NewSource(seed))
		for step := 0; step < 250 && !gs.IsOver(); step++ {
			actions := gs.LegalActions()
			require.NotEmpty(t, actions, "Seed %d step %d: a running game offers actions", seed, step)
			for _, a := range actions {
				require.NoErrorf(t, gs.validate(a),
					"Seed %d step %d: generated action %s must validate", seed, step, a)
			}
			next, err := gs.Apply(actions[rng.Intn(len(actions))])
			require.NoError(t, err)
			gs = next
		}
	}
}

func TestLegalActionsDeterministic(t *testing.T) {
	gs := drive(t, 5, 37)
	require.Equal(t, gs.LegalActions(), gs.LegalActions(),
		"Enumeration must not depend on call order")
}

func TestPhaseViolations(t *testing.T) {
	setup := mustNewGame(t, 11)

	t.Run("no building before the roll", func(t *testing.T) {
		gs := completeSetup(t, setup)
		require.Equal(t, StageRoll, gs.Stage)
		_, err := gs.Apply(Action{Type: BuildRoad, Edge: 0})
		require.ErrorIs(t, err, ErrPhaseViolation)
		_, err = gs.Apply(Action{Type: EndTurn})
		require.ErrorIs(t, err, ErrPhaseViolation)
	})

	t.Run("no rolling twice", func(t *testing.T) {
		gs := forceRoll(t, completeSetup(t, setup), 2, 1)
		_, err := gs.Apply(Action{Type: RollDice})
		require.ErrorIs(t, err, ErrPhaseViolation)
	})

	t.Run("no main-phase actions during setup", func(t *testing.T) {
		_, err := setup.Apply(Action{Type: RollDice})
		require.ErrorIs(t, err, ErrPhaseViolation)
		_, err = setup.Apply(Action{Type: BuyDevelopmentCard})
		require.ErrorIs(t, err, ErrPhaseViolation)
	})

	t.Run("nothing is legal after the game ends", func(t *testing.T) {
		gs := completeSetup(t, setup).Copy()
		gs.Phase = Over
		gs.WinnerID = 0
		require.Empty(t, gs.LegalActions())
		_, err := gs.Apply(Action{Type: EndTurn})
		require.ErrorIs(t, err, ErrPhaseViolation)
	})
}

func TestBuildingValidation(t *testing.T) {
	gs := forceRoll(t, completeSetup(t, mustNewGame(t, 11)), 2, 1)
	gs = gs.Copy()
	gs.Players[0].Hand = NewFreqdeck(
		ResourceCount{Brick, 5}, ResourceCount{Lumber, 5},
		ResourceCount{Wool, 2}, ResourceCount{Grain, 2},
	)

	t.Run("roads must extend the network", func(t *testing.T) {
		// An edge far from player 0's pieces: any edge owned-adjacent only to
		// player 1, or floating free.
		for e := EdgeID(0); e < NumEdges; e++ {
			if gs.edgeOccupied(e) || gs.roadConnected(&gs.Players[0], e, nil) {
				continue
			}
			_, err := gs.Apply(Action{Type: BuildRoad, Edge: e})
			require.ErrorIs(t, err, ErrIllegalPlacement)
			return
		}
		t.Fatal("expected at least one disconnected edge")
	})

	t.Run("settlements need an own road and distance two", func(t *testing.T) {
		occupied := gs.Players[1].Settlements[0]
		_, err := gs.Apply(Action{Type: BuildSettlement, Vertex: occupied})
		require.ErrorIs(t, err, ErrIllegalPlacement)
	})

	t.Run("cities only upgrade own settlements", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = CityCost
		_, err := s.Apply(Action{Type: BuildCity, Vertex: s.Players[1].Settlements[0]})
		require.ErrorIs(t, err, ErrIllegalPlacement)
	})

	t.Run("insufficient resources are reported as such", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = Freqdeck{}
		_, err := s.Apply(Action{Type: BuildRoad, Edge: 0})
		require.ErrorIs(t, err, ErrInsufficientResources)
	})

	t.Run("piece limits are enforced", func(t *testing.T) {
		s := gs.Copy()
		// Fifteen roads anywhere, legality not required for the cap check.
		s.Players[0].Roads = make([]EdgeID, 0, MaxRoads)
		for e := EdgeID(0); e < MaxRoads; e++ {
			s.Players[0].addRoad(e)
		}
		_, err := s.Apply(Action{Type: BuildRoad, Edge: 70})
		require.ErrorIs(t, err, ErrRuleLimitExceeded)
	})
}
