package model

import (
	"fmt"
	"strings"
)

// Candidate is one point in the search space together with the rank it
// received from the most recent fitness evaluation. Rank is stale after any
// coordinate change and must not be read until the candidate is re-evaluated.
type Candidate struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Rank float64 `json:"rank"`

	// Rejected marks a candidate whose residual was not finite under a
	// rejecting evaluation policy.
	Rejected bool `json:"rejected,omitempty"`
}

// NewCandidate builds a candidate without validating any of its values.
func NewCandidate(rank, x, y, z float64) Candidate {
	return Candidate{X: x, Y: y, Z: z, Rank: rank}
}

// Mutate scales each coordinate by its factor in place.
func (c *Candidate) Mutate(fx, fy, fz float64) {
	c.X *= fx
	c.Y *= fy
	c.Z *= fz
}

// Coordinates returns a copy of the candidate with rank and evaluation state
// cleared, ready to be evaluated again.
func (c Candidate) Coordinates() Candidate {
	return Candidate{X: c.X, Y: c.Y, Z: c.Z}
}

func (c Candidate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rank %d\n", int64(c.Rank))
	fmt.Fprintf(&b, "x: %f y: %f z: %f\n", c.X, c.Y, c.Z)
	return b.String()
}

// Population is an ordered generation of candidates. Sorting orders it by
// descending rank with rejected candidates last; equal ranks fall back to the
// coordinates so that seeded runs stay reproducible.
type Population []Candidate

func (p Population) Len() int      { return len(p) }
func (p Population) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p Population) Less(i, j int) bool {
	return Better(p[i], p[j])
}

// Better reports whether a ranks strictly ahead of b.
func Better(a, b Candidate) bool {
	if a.Rejected != b.Rejected {
		return !a.Rejected
	}
	if a.Rank != b.Rank {
		return a.Rank > b.Rank
	}
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// Clone returns an independent copy of the population.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	copy(out, p)
	return out
}
