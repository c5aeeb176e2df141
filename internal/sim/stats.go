package sim

import "github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"

// Stats describes how content the population of a grid is.
type Stats struct {
	Counts      core.Counts `json:"counts"`
	Satisfied   int         `json:"satisfied"`
	Unsatisfied int         `json:"unsatisfied"`
	// Isolated actors have no occupied neighbor and count as satisfied.
	Isolated int `json:"isolated"`
	// MeanSimilarity is the average same-type share over actors with at least
	// one occupied neighbor, 0 when there are none.
	MeanSimilarity float64 `json:"mean_similarity"`
}

// AllSatisfied reports whether no actor wants to move.
func (s Stats) AllSatisfied() bool { return s.Unsatisfied == 0 }

// SatisfiedFraction is the share of actors that are satisfied, 1 for an
// empty world.
func (s Stats) SatisfiedFraction() float64 {
	actors := s.Counts.Occupied()
	if actors == 0 {
		return 1
	}
	return float64(s.Satisfied) / float64(actors)
}

// ComputeStats classifies every cell of g against threshold.
func ComputeStats(g *core.Grid, threshold float64) Stats {
	st := Stats{Counts: g.Counts()}

	var similaritySum float64
	withNeighbors := 0
	for idx, c := range g.Cells() {
		if !c.IsOccupied() {
			continue
		}
		p := g.Pos(idx)
		same, occupied := Neighborhood(g, p)
		if occupied == 0 {
			st.Isolated++
			st.Satisfied++
			continue
		}
		ratio := float64(same) / float64(occupied)
		similaritySum += ratio
		withNeighbors++
		if ratio < threshold {
			st.Unsatisfied++
		} else {
			st.Satisfied++
		}
	}

	if withNeighbors > 0 {
		st.MeanSimilarity = similaritySum / float64(withNeighbors)
	}
	return st
}
