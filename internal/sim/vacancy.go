package sim

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
)

// VacancyStrategy selects how relocation targets are sampled.
type VacancyStrategy string

const (
	// VacancyRejection draws random positions until an empty one turns up.
	VacancyRejection VacancyStrategy = "rejection"
	// VacancyIndex keeps an explicit list of empty positions for O(1) draws.
	VacancyIndex VacancyStrategy = "index"
)

// rejectionAttemptsPerCell bounds the rejection search. With a single empty
// cell the chance of exhausting the bound is about e^-32.
const rejectionAttemptsPerCell = 32

// ParseVacancyStrategy maps a config string to a strategy. Empty means rejection.
func ParseVacancyStrategy(s string) (VacancyStrategy, error) {
	switch VacancyStrategy(s) {
	case "", VacancyRejection:
		return VacancyRejection, nil
	case VacancyIndex:
		return VacancyIndex, nil
	default:
		return "", fmt.Errorf("%w: unknown vacancy strategy %q", core.ErrInvalidConfiguration, s)
	}
}

// vacancyFinder picks a uniformly random empty cell of the live grid and is
// told about every swap so it can keep its view current.
type vacancyFinder interface {
	Find() (core.Position, error)
	Moved(from, to core.Position)
}

func newVacancyFinder(strategy VacancyStrategy, g *core.Grid, rng *rand.Rand) vacancyFinder {
	if strategy == VacancyIndex {
		return newIndexFinder(g, rng)
	}
	return &rejectionFinder{grid: g, rng: rng, maxAttempts: g.Len() * rejectionAttemptsPerCell}
}

type rejectionFinder struct {
	grid        *core.Grid
	rng         *rand.Rand
	maxAttempts int
}

func (f *rejectionFinder) Find() (core.Position, error) {
	n := f.grid.Size()
	for attempts := 0; attempts < f.maxAttempts; attempts++ {
		p := core.Position{Row: f.rng.Intn(n), Col: f.rng.Intn(n)}
		if f.grid.At(p) == core.Empty {
			return p, nil
		}
	}
	return core.Position{}, fmt.Errorf("%w after %d draws", core.ErrNoVacancy, f.maxAttempts)
}

func (f *rejectionFinder) Moved(from, to core.Position) {}

type indexFinder struct {
	grid  *core.Grid
	rng   *rand.Rand
	empty []int // grid indices of empty cells
	slot  map[int]int
}

func newIndexFinder(g *core.Grid, rng *rand.Rand) *indexFinder {
	f := &indexFinder{grid: g, rng: rng, slot: make(map[int]int)}
	for idx, c := range g.Cells() {
		if c == core.Empty {
			f.slot[idx] = len(f.empty)
			f.empty = append(f.empty, idx)
		}
	}
	return f
}

func (f *indexFinder) Find() (core.Position, error) {
	if len(f.empty) == 0 {
		return core.Position{}, core.ErrNoVacancy
	}
	return f.grid.Pos(f.empty[f.rng.Intn(len(f.empty))]), nil
}

// Moved records that the actor at from now occupies the former vacancy to,
// leaving from empty. The slot of to is reused for from.
func (f *indexFinder) Moved(from, to core.Position) {
	toIdx, fromIdx := f.grid.Idx(to), f.grid.Idx(from)
	s, ok := f.slot[toIdx]
	if !ok {
		return
	}
	delete(f.slot, toIdx)
	f.empty[s] = fromIdx
	f.slot[fromIdx] = s
}
