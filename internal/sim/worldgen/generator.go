package worldgen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
)

// fracTolerance absorbs float representation error, e.g. 0.29*100 = 28.999999999999996.
const fracTolerance = 1e-9

// WorldConfig holds world generation settings
type WorldConfig struct {
	Population int
	FracA      float64
	FracB      float64
}

// DefaultWorldConfig returns the classic setup: 9000 locations, a quarter of
// each actor type and half of the world empty.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Population: 9000,
		FracA:      0.25,
		FracB:      0.25,
	}
}

// Validate checks generation parameters.
func (c WorldConfig) Validate() error {
	if c.Population < 1 {
		return fmt.Errorf("%w: population must be positive, got %d", core.ErrInvalidConfiguration, c.Population)
	}
	if math.IsNaN(c.FracA) || c.FracA < 0 {
		return fmt.Errorf("%w: fraction of type A must be non-negative, got %v", core.ErrInvalidConfiguration, c.FracA)
	}
	if math.IsNaN(c.FracB) || c.FracB < 0 {
		return fmt.Errorf("%w: fraction of type B must be non-negative, got %v", core.ErrInvalidConfiguration, c.FracB)
	}
	if c.FracA+c.FracB > 1+fracTolerance {
		return fmt.Errorf("%w: actor fractions sum to %v, must not exceed 1", core.ErrInvalidConfiguration, c.FracA+c.FracB)
	}
	return nil
}

// SideLength is the grid side for a population: round(sqrt(population)).
func SideLength(population int) int {
	return int(math.Round(math.Sqrt(float64(population))))
}

// Generator builds randomized worlds from an injected RNG
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a new world generator
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a shuffled world. No grid is returned on invalid input.
func (g *Generator) Generate(population int, fracA, fracB float64) (*core.Grid, error) {
	cfg := WorldConfig{Population: population, FracA: fracA, FracB: fracB}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := Populate(cfg)
	g.Shuffle(grid)
	return grid, nil
}

// Populate lays out actors in row-major order before shuffling: type A first,
// then type B, the remainder empty. Counts are truncated, so realized
// populations may be one below the requested fractions.
func Populate(cfg WorldConfig) *core.Grid {
	grid := core.NewGrid(SideLength(cfg.Population))
	cells := grid.Cells()

	endA := truncatedCount(cfg.FracA, cfg.Population, len(cells))
	endB := truncatedCount(cfg.FracA+cfg.FracB, cfg.Population, len(cells))

	for i := range cells {
		switch {
		case i < endA:
			cells[i] = core.TypeA
		case i < endB:
			cells[i] = core.TypeB
		default:
			cells[i] = core.Empty
		}
	}
	return grid
}

func truncatedCount(frac float64, population, limit int) int {
	n := int(math.Floor(frac*float64(population) + fracTolerance))
	if n > limit {
		return limit
	}
	return n
}

// Shuffle visits every position in row-major order and swaps it with a
// position whose row and column are drawn independently. The result is not a
// perfectly unbiased permutation, but every arrangement is reachable and the
// multiset of cells is unchanged.
func (g *Generator) Shuffle(grid *core.Grid) {
	n := grid.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			target := core.Position{Row: g.rng.Intn(n), Col: g.rng.Intn(n)}
			grid.Swap(core.Position{Row: row, Col: col}, target)
		}
	}
}

// Generate is a one-shot form of Generator.Generate.
func Generate(rng *rand.Rand, population int, fracA, fracB float64) (*core.Grid, error) {
	return NewGenerator(rng).Generate(population, fracA, fracB)
}
