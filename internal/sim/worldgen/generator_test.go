package worldgen

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestDefaultWorldConfig(t *testing.T) {
	cfg := DefaultWorldConfig()
	assert.Equal(t, 9000, cfg.Population)
	assert.Equal(t, 0.25, cfg.FracA)
	assert.Equal(t, 0.25, cfg.FracB)
	assert.NoError(t, cfg.Validate())
}

func TestNewGenerator(t *testing.T) {
	rng := newTestRNG()
	generator := NewGenerator(rng)

	require.NotNil(t, generator)
	assert.Same(t, rng, generator.rng)
}

func TestSideLength(t *testing.T) {
	tests := []struct {
		population int
		expected   int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{9, 3},
		{10, 3},
		{13, 4},
		{900, 30},
		{9000, 95},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SideLength(tt.population), "SideLength(%d)", tt.population)
	}
}

func TestWorldConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     WorldConfig
		wantErr bool
	}{
		{"default", DefaultWorldConfig(), false},
		{"fully occupied", WorldConfig{Population: 100, FracA: 0.5, FracB: 0.5}, false},
		{"all empty", WorldConfig{Population: 4}, false},
		{"float sum at one", WorldConfig{Population: 10, FracA: 0.7, FracB: 0.3}, false},
		{"zero population", WorldConfig{Population: 0, FracA: 0.25, FracB: 0.25}, true},
		{"negative population", WorldConfig{Population: -9, FracA: 0.25, FracB: 0.25}, true},
		{"fractions above one", WorldConfig{Population: 100, FracA: 0.6, FracB: 0.5}, true},
		{"negative fraction A", WorldConfig{Population: 100, FracA: -0.1, FracB: 0.5}, true},
		{"negative fraction B", WorldConfig{Population: 100, FracA: 0.1, FracB: -0.5}, true},
		{"NaN fraction", WorldConfig{Population: 100, FracA: math.NaN(), FracB: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerate_InvalidConfigurationReturnsNoGrid(t *testing.T) {
	generator := NewGenerator(newTestRNG())

	grid, err := generator.Generate(0, 0.25, 0.25)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	assert.Nil(t, grid)

	grid, err = generator.Generate(100, 0.75, 0.5)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	assert.Nil(t, grid)
}

func TestPopulate(t *testing.T) {
	t.Run("distribution bound before shuffling", func(t *testing.T) {
		grid := Populate(WorldConfig{Population: 900, FracA: 0.25, FracB: 0.25})

		require.Equal(t, 30, grid.Size())
		assert.Equal(t, core.Counts{A: 225, B: 225, Empty: 450}, grid.Counts())

		// Row-major layout: A block, then B block, then empties
		cells := grid.Cells()
		for i, c := range cells {
			switch {
			case i < 225:
				assert.Equal(t, core.TypeA, c, "cell %d", i)
			case i < 450:
				assert.Equal(t, core.TypeB, c, "cell %d", i)
			default:
				assert.Equal(t, core.Empty, c, "cell %d", i)
			}
		}
	})

	t.Run("counts are truncated", func(t *testing.T) {
		grid := Populate(WorldConfig{Population: 9, FracA: 0.3, FracB: 0.3})
		// 0.3*9 = 2.7 -> 2 A; 0.6*9 = 5.4 -> 5 cumulative, so 3 B
		assert.Equal(t, core.Counts{A: 2, B: 3, Empty: 4}, grid.Counts())
	})

	t.Run("representation error does not lose an actor", func(t *testing.T) {
		grid := Populate(WorldConfig{Population: 100, FracA: 0.29, FracB: 0.01})
		assert.Equal(t, 29, grid.Counts().A)
		assert.Equal(t, 1, grid.Counts().B)
	})

	t.Run("counts capped at grid size", func(t *testing.T) {
		// population 10 -> side 3 -> only 9 cells for 10 requested actors
		grid := Populate(WorldConfig{Population: 10, FracA: 0.5, FracB: 0.5})
		assert.Equal(t, core.Counts{A: 5, B: 4, Empty: 0}, grid.Counts())
	})

	t.Run("grid larger than population leaves extra cells empty", func(t *testing.T) {
		// population 13 -> side 4 -> 16 cells
		grid := Populate(WorldConfig{Population: 13, FracA: 0.5, FracB: 0.5})
		assert.Equal(t, 4, grid.Size())
		assert.Equal(t, core.Counts{A: 6, B: 7, Empty: 3}, grid.Counts())
	})
}

func TestShuffle_PreservesMultiset(t *testing.T) {
	generator := NewGenerator(newTestRNG())

	for _, cfg := range []WorldConfig{
		{Population: 900, FracA: 0.25, FracB: 0.25},
		{Population: 25, FracA: 0.4, FracB: 0.6},
		{Population: 1, FracA: 1},
		{Population: 400, FracA: 0.1, FracB: 0.05},
	} {
		grid := Populate(cfg)
		before := grid.Counts()
		for i := 0; i < 5; i++ {
			generator.Shuffle(grid)
			assert.Equal(t, before, grid.Counts(), "shuffle changed counts for %+v", cfg)
		}
	}
}

func TestShuffle_MovesCells(t *testing.T) {
	generator := NewGenerator(newTestRNG())
	grid := Populate(WorldConfig{Population: 900, FracA: 0.25, FracB: 0.25})
	original := grid.Clone()

	generator.Shuffle(grid)
	assert.False(t, original.Equal(grid), "a 30x30 shuffle should rearrange the block layout")

	// Type A should no longer be confined to the first rows
	aInLowerHalf := 0
	for idx, c := range grid.Cells() {
		if c == core.TypeA && idx >= grid.Len()/2 {
			aInLowerHalf++
		}
	}
	assert.Greater(t, aInLowerHalf, 0)
}

func TestShuffle_IsDeterministicForSeed(t *testing.T) {
	a := Populate(DefaultWorldConfig())
	b := Populate(DefaultWorldConfig())

	NewGenerator(rand.New(rand.NewSource(7))).Shuffle(a)
	NewGenerator(rand.New(rand.NewSource(7))).Shuffle(b)
	assert.True(t, a.Equal(b))
}

func TestGenerate(t *testing.T) {
	generator := NewGenerator(newTestRNG())

	grid, err := generator.Generate(900, 0.25, 0.25)
	require.NoError(t, err)
	require.NotNil(t, grid)
	assert.Equal(t, 30, grid.Size())
	assert.Equal(t, core.Counts{A: 225, B: 225, Empty: 450}, grid.Counts())

	grid, err = generator.Generate(9000, 0.25, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 95, grid.Size())
	counts := grid.Counts()
	assert.Equal(t, 2250, counts.A)
	assert.Equal(t, 2250, counts.B)
	assert.Equal(t, 95*95-4500, counts.Empty)
}
