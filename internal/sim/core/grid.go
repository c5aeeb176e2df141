package core

import "fmt"

// Grid is a square world of cells stored row-major.
// The side length is fixed at construction.
type Grid struct {
	n     int
	cells []Cell // length = n*n (row-major)
}

// NewGrid allocates an n×n grid with every cell Empty.
func NewGrid(n int) *Grid {
	if n < 0 {
		n = 0
	}
	return &Grid{n: n, cells: make([]Cell, n*n)}
}

// NewGridFromRows builds a grid from explicit rows. Every row must have the
// same length as the number of rows.
func NewGridFromRows(rows [][]Cell) (*Grid, error) {
	n := len(rows)
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfiguration, r, len(row), n)
		}
		copy(g.cells[r*n:(r+1)*n], row)
	}
	return g, nil
}

// Size returns the side length.
func (g *Grid) Size() int { return g.n }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) Idx(p Position) int { return p.Row*g.n + p.Col }
func (g *Grid) Pos(idx int) Position {
	return FromIndex(idx, g.n)
}

// At returns the cell at p. The position must be in bounds.
func (g *Grid) At(p Position) Cell { return g.cells[g.Idx(p)] }

// Set stores c at p. The position must be in bounds.
func (g *Grid) Set(p Position, c Cell) { g.cells[g.Idx(p)] = c }

// Swap exchanges the values of two cells.
func (g *Grid) Swap(a, b Position) {
	ia, ib := g.Idx(a), g.Idx(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// Cells exposes the backing slice for row-major scans.
// Callers must not change its length.
func (g *Grid) Cells() []Cell { return g.cells }

// Counts tallies every cell value.
func (g *Grid) Counts() Counts {
	var c Counts
	for _, cell := range g.cells {
		switch cell {
		case TypeA:
			c.A++
		case TypeB:
			c.B++
		default:
			c.Empty++
		}
	}
	return c
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	cp := &Grid{n: g.n, cells: make([]Cell, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// Rows returns a copy of the grid as nested rows for renderers.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.n)
	for r := range rows {
		rows[r] = make([]Cell, g.n)
		copy(rows[r], g.cells[r*g.n:(r+1)*g.n])
	}
	return rows
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.n != other.n {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}
