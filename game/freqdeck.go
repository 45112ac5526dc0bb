package game

import (
	"fmt"
	"strings"
)

// Freqdeck is a fixed-size count vector over the five resource kinds. It is a
// value type: arithmetic returns new decks, so states sharing a deck never
// alias each other's counts.
type Freqdeck [NumResources]int

// NewFreqdeck builds a deck from (resource, count) pairs.
func NewFreqdeck(pairs ...ResourceCount) Freqdeck {
	var d Freqdeck
	for _, p := range pairs {
		d[p.Resource] += p.Count
	}
	return d
}

type ResourceCount struct {
	Resource Resource
	Count    int
}

// Single returns a deck holding n of a single resource.
func Single(r Resource, n int) Freqdeck {
	var d Freqdeck
	d[r] = n
	return d
}

func (d Freqdeck) Total() int {
	sum := 0
	for _, n := range d {
		sum += n
	}
	return sum
}

func (d Freqdeck) IsZero() bool {
	return d == Freqdeck{}
}

// Contains reports whether every count in other is covered by d.
func (d Freqdeck) Contains(other Freqdeck) bool {
	for r, n := range other {
		if d[r] < n {
			return false
		}
	}
	return true
}

func (d Freqdeck) Add(other Freqdeck) Freqdeck {
	for r, n := range other {
		d[r] += n
	}
	return d
}

func (d Freqdeck) Sub(other Freqdeck) Freqdeck {
	for r, n := range other {
		d[r] -= n
	}
	return d
}

// Valid reports whether all counts are non-negative.
func (d Freqdeck) Valid() bool {
	for _, n := range d {
		if n < 0 {
			return false
		}
	}
	return true
}

func (d Freqdeck) String() string {
	parts := make([]string, 0, NumResources)
	for r, n := range d {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", Resource(r), n))
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// DevHand is a count vector over development card kinds.
type DevHand [NumDevCards]int

func (h DevHand) Total() int {
	sum := 0
	for _, n := range h {
		sum += n
	}
	return sum
}
