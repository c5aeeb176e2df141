package core

// Cell is the content of a single grid location.
// The zero value is Empty so a freshly allocated grid has no actors.
type Cell uint8

const (
	Empty Cell = iota
	TypeA
	TypeB
)

// IsOccupied reports whether the cell holds an actor of either type.
func (c Cell) IsOccupied() bool { return c == TypeA || c == TypeB }

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	default:
		return "unknown"
	}
}

// Counts tallies how many cells hold each value.
type Counts struct {
	A     int `json:"a"`
	B     int `json:"b"`
	Empty int `json:"empty"`
}

// Total is the number of cells counted.
func (c Counts) Total() int { return c.A + c.B + c.Empty }

// Occupied is the number of actors counted.
func (c Counts) Occupied() int { return c.A + c.B }
