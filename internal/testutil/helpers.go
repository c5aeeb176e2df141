package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// GridFromRows builds a grid from strings where 'A' and 'B' are actors and
// any other rune is an empty cell, e.g. GridFromRows(t, "A.B", "..B", "A.B").
func GridFromRows(t testing.TB, rows ...string) *core.Grid {
	t.Helper()
	cells := make([][]core.Cell, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			switch ch {
			case 'A':
				cells[r] = append(cells[r], core.TypeA)
			case 'B':
				cells[r] = append(cells[r], core.TypeB)
			default:
				cells[r] = append(cells[r], core.Empty)
			}
		}
	}
	g, err := core.NewGridFromRows(cells)
	if err != nil {
		t.Fatalf("invalid test grid: %v", err)
	}
	return g
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
