package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInBounds(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		row, col int
		expected bool
	}{
		{"origin", 3, 0, 0, true},
		{"far corner", 3, 2, 2, true},
		{"negative row", 3, -1, 0, false},
		{"negative col", 3, 0, -1, false},
		{"row at size", 3, 3, 0, false},
		{"col at size", 3, 0, 3, false},
		{"single cell grid", 1, 0, 0, true},
		{"both out", 3, 5, -5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InBounds(tt.n, tt.row, tt.col))
			assert.Equal(t, tt.expected, NewPosition(tt.row, tt.col).IsValid(tt.n))
		})
	}
}

func TestInBoundsExhaustive(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for r := -3; r < n+3; r++ {
			for c := -3; c < n+3; c++ {
				want := r >= 0 && r < n && c >= 0 && c < n
				assert.Equal(t, want, InBounds(n, r, c), "InBounds(%d,%d,%d)", n, r, c)
			}
		}
	}
}

func TestPosition_IndexRoundTrip(t *testing.T) {
	n := 7
	for idx := 0; idx < n*n; idx++ {
		p := FromIndex(idx, n)
		assert.True(t, p.IsValid(n))
		assert.Equal(t, idx, p.ToIndex(n))
	}
	assert.Equal(t, Position{Row: 2, Col: 3}, FromIndex(17, 7))
}

func TestPosition_Neighbors(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		n     int
		count int
	}{
		{"corner", Position{0, 0}, 3, 3},
		{"opposite corner", Position{2, 2}, 3, 3},
		{"edge", Position{0, 1}, 3, 5},
		{"center", Position{1, 1}, 3, 8},
		{"single cell", Position{0, 0}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			neighbors := tt.pos.Neighbors(tt.n)
			assert.Len(t, neighbors, tt.count)
			for _, q := range neighbors {
				assert.True(t, q.IsValid(tt.n))
				assert.NotEqual(t, tt.pos, q, "a cell is not its own neighbor")
			}
		})
	}

	t.Run("row-major order", func(t *testing.T) {
		got := Position{1, 1}.Neighbors(3)
		want := []Position{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
		assert.Equal(t, want, got)
	})
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "(4,2)", Position{Row: 4, Col: 2}.String())
}
