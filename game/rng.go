package game

import "golang.org/x/exp/rand"

// RNG is the dice and steal randomness carried inside GameState. It is a
// value: copying a state copies the stream position, so parallel simulations
// branching from one state draw independently. Seed and Draws fully determine
// the position, which keeps any snapshot independently replayable.
type RNG struct {
	Seed  uint64
	Draws uint64
	src   rand.PCGSource
}

func NewRNG(seed uint64) RNG {
	r := RNG{Seed: seed}
	r.src.Seed(seed)
	return r
}

// ReplayRNG reconstructs a stream at the given position by re-drawing from
// the seed. Used when decoding snapshots.
func ReplayRNG(seed, draws uint64) RNG {
	r := NewRNG(seed)
	for i := uint64(0); i < draws; i++ {
		r.src.Uint64()
	}
	r.Draws = draws
	return r
}

// d6 returns a die face in [1,6] and advances the stream by one draw.
func (r *RNG) d6() int {
	r.Draws++
	return int(r.src.Uint64()%6) + 1
}

// intn returns a value in [0,n) and advances the stream by one draw.
func (r *RNG) intn(n int) int {
	r.Draws++
	return int(r.src.Uint64() % uint64(n))
}

// pickCard draws a uniformly random card from a non-empty hand, one stream
// draw regardless of hand size.
func (r *RNG) pickCard(hand Freqdeck) Resource {
	k := r.intn(hand.Total())
	for res := Resource(0); res < NumResources; res++ {
		if k < hand[res] {
			return res
		}
		k -= hand[res]
	}
	return NumResources - 1
}
