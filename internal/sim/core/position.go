package core

import "fmt"

// Position addresses a grid cell by row and column.
type Position struct {
	Row, Col int
}

// NewPosition creates a new position with the given row and column
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// FromIndex converts a row-major index back into a position on an n×n grid
func FromIndex(idx, n int) Position {
	return Position{Row: idx / n, Col: idx % n}
}

// InBounds reports whether (row, col) lies on an n×n grid.
func InBounds(n, row, col int) bool {
	return 0 <= row && row < n && 0 <= col && col < n
}

// IsValid checks if the position is within an n×n grid
func (p Position) IsValid(n int) bool {
	return InBounds(n, p.Row, p.Col)
}

// ToIndex converts the position to a row-major index on an n×n grid
func (p Position) ToIndex(n int) int {
	return p.Row*n + p.Col
}

// Add returns the sum of two positions
func (p Position) Add(other Position) Position {
	return Position{Row: p.Row + other.Row, Col: p.Col + other.Col}
}

// MooreOffsets lists the eight neighbor offsets in row-major order.
var MooreOffsets = [8]Position{
	{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
	{Row: 0, Col: -1}, {Row: 0, Col: 1},
	{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
}

// Neighbors returns the Moore neighbors of p that lie on an n×n grid.
// Edge cells have five neighbors and corners three.
func (p Position) Neighbors(n int) []Position {
	valid := make([]Position, 0, len(MooreOffsets))
	for _, off := range MooreOffsets {
		q := p.Add(off)
		if q.IsValid(n) {
			valid = append(valid, q)
		}
	}
	return valid
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
