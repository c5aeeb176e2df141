package sim

import (
	"fmt"
	"math"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
)

// Satisfaction is the classification of a single cell for one step.
type Satisfaction int

const (
	NotApplicable Satisfaction = iota // empty cells
	Satisfied
	Unsatisfied
)

func (s Satisfaction) String() string {
	switch s {
	case Satisfied:
		return "satisfied"
	case Unsatisfied:
		return "unsatisfied"
	default:
		return "n/a"
	}
}

// ValidateThreshold checks that a satisfaction threshold is a fraction.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: threshold must be in [0,1], got %v", core.ErrInvalidConfiguration, threshold)
	}
	return nil
}

// Neighborhood counts the Moore neighbors of p holding the same type as p and
// those holding any actor. Off-grid offsets are skipped.
func Neighborhood(g *core.Grid, p core.Position) (same, occupied int) {
	self := g.At(p)
	for _, q := range p.Neighbors(g.Size()) {
		c := g.At(q)
		if !c.IsOccupied() {
			continue
		}
		occupied++
		if c == self {
			same++
		}
	}
	return same, occupied
}

// Classify decides whether the actor at p is content with its neighborhood.
// An actor with no occupied neighbors is satisfied.
func Classify(g *core.Grid, p core.Position, threshold float64) Satisfaction {
	if !g.At(p).IsOccupied() {
		return NotApplicable
	}
	same, occupied := Neighborhood(g, p)
	if occupied == 0 {
		return Satisfied
	}
	if float64(same)/float64(occupied) < threshold {
		return Unsatisfied
	}
	return Satisfied
}

// Plan returns every unsatisfied position of g in row-major order.
// g is only read.
func Plan(g *core.Grid, threshold float64) []core.Position {
	var movers []core.Position
	n := g.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			p := core.Position{Row: row, Col: col}
			if Classify(g, p, threshold) == Unsatisfied {
				movers = append(movers, p)
			}
		}
	}
	return movers
}
