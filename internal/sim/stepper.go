package sim

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
)

// Relocation records one actor moving into a vacancy.
type Relocation struct {
	From core.Position
	To   core.Position
	Cell core.Cell
}

// StepResult summarizes a single Advance call.
type StepResult struct {
	Unsatisfied int // actors classified unsatisfied at the start of the step
	Relocations []Relocation
}

// Moved is the number of swaps performed.
func (r StepResult) Moved() int { return len(r.Relocations) }

// Stepper advances a grid by one step. It is not safe for concurrent use.
type Stepper struct {
	rng      *rand.Rand
	strategy VacancyStrategy
	logger   zerolog.Logger
}

// NewStepper creates a stepper. A nil rng is replaced by a time-seeded one.
func NewStepper(rng *rand.Rand, strategy VacancyStrategy, logger zerolog.Logger) *Stepper {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if strategy == "" {
		strategy = VacancyRejection
	}
	return &Stepper{
		rng:      rng,
		strategy: strategy,
		logger:   logger.With().Str("component", "stepper").Logger(),
	}
}

// Strategy returns the vacancy sampling strategy in use.
func (s *Stepper) Strategy() VacancyStrategy { return s.strategy }

// Advance moves every unsatisfied actor of grid to a random empty cell.
//
// All classifications use a snapshot taken when the call starts, so moves made
// earlier in the scan never change a later actor's decision. Moves are applied
// to the live grid in row-major order of the movers, and each target is empty
// at the moment of its swap. A grid without any empty cell is left unchanged.
//
// ErrNoVacancy means the sampler gave up; the grid is still square but may be
// partially updated and the run should be aborted.
func (s *Stepper) Advance(grid *core.Grid, threshold float64) (StepResult, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return StepResult{}, err
	}

	snapshot := grid.Clone()
	movers := Plan(snapshot, threshold)
	result := StepResult{Unsatisfied: len(movers)}
	if len(movers) == 0 {
		return result, nil
	}

	if grid.Counts().Empty == 0 {
		s.logger.Debug().
			Int("unsatisfied", len(movers)).
			Msg("No empty cells, nobody can relocate")
		return result, nil
	}

	finder := newVacancyFinder(s.strategy, grid, s.rng)
	result.Relocations = make([]Relocation, 0, len(movers))
	for _, from := range movers {
		to, err := finder.Find()
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("from", from.String()).
				Int("relocated", len(result.Relocations)).
				Msg("Relocation search failed")
			return result, err
		}
		cell := grid.At(from)
		grid.Swap(from, to)
		finder.Moved(from, to)
		result.Relocations = append(result.Relocations, Relocation{From: from, To: to, Cell: cell})
	}

	s.logger.Debug().
		Int("unsatisfied", result.Unsatisfied).
		Int("relocated", result.Moved()).
		Msg("Advanced grid")
	return result, nil
}

// Advance is a one-shot form of Stepper.Advance using rejection sampling.
func Advance(grid *core.Grid, threshold float64, rng *rand.Rand) (StepResult, error) {
	return NewStepper(rng, VacancyRejection, zerolog.Nop()).Advance(grid, threshold)
}
