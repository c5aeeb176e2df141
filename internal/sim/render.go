package sim

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

const (
	symbolActor = "●"
	symbolEmpty = "·"
)

// RenderGrid draws g as text, one character per cell. Type A is red, type B
// blue and empty cells a gray dot. With color disabled A and B are printed as
// letters instead.
func RenderGrid(g *core.Grid, color bool) string {
	var sb strings.Builder
	n := g.Size()
	sb.Grow(n * (n*len(ColorReset+ColorRed+symbolActor) + 1))

	for _, row := range g.Rows() {
		for _, c := range row {
			if !color {
				sb.WriteString(plainSymbol(c))
				continue
			}
			switch c {
			case core.TypeA:
				sb.WriteString(ColorRed + symbolActor + ColorReset)
			case core.TypeB:
				sb.WriteString(ColorBlue + symbolActor + ColorReset)
			default:
				sb.WriteString(ColorGray + symbolEmpty + ColorReset)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func plainSymbol(c core.Cell) string {
	switch c {
	case core.TypeA:
		return "A"
	case core.TypeB:
		return "B"
	default:
		return symbolEmpty
	}
}

// Board renders the current grid with a one-line summary underneath.
func (e *Engine) Board() string {
	var sb strings.Builder
	sb.WriteString(RenderGrid(e.grid, true))
	sb.WriteString(fmt.Sprintf("\nstep %d  unsatisfied %d  similarity %.3f\n",
		e.turn, e.stats.Unsatisfied, e.stats.MeanSimilarity))
	return sb.String()
}
