package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CodeRow lays the cells out side by side inside the container style.
type CodeRow struct {
	Cells          []CellBox
	ContainerClass string
	InputClass     string
}

func (r CodeRow) Render(width, height int) string {
	if width <= 0 || height <= 0 || len(r.Cells) == 0 {
		return ""
	}
	gap := strings.Repeat(" ", cellGap(r.InputClass))
	parts := make([]string, 0, len(r.Cells)*2)
	for i, c := range r.Cells {
		if i > 0 && gap != "" {
			parts = append(parts, gap)
		}
		c.Class = r.InputClass
		parts = append(parts, c.Render())
	}
	row := ContainerStyle(r.ContainerClass).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	return lipgloss.Place(width, max(height, lipgloss.Height(row)), lipgloss.Center, lipgloss.Center, row)
}

// CellAt maps a column inside the rendered row (relative to its left edge,
// container chrome included) to a cell index.
func (r CodeRow) CellAt(x int) (int, bool) {
	offset := ContainerStyle(r.ContainerClass).GetHorizontalFrameSize() / 2
	x -= offset
	if x < 0 {
		return 0, false
	}
	w := CellWidth(r.InputClass)
	stride := w + cellGap(r.InputClass)
	idx := x / stride
	if idx >= len(r.Cells) || x%stride >= w {
		return 0, false
	}
	return idx, true
}

// Width is the rendered width of the row without centering.
func (r CodeRow) Width() int {
	n := len(r.Cells)
	if n == 0 {
		return 0
	}
	inner := n*CellWidth(r.InputClass) + (n-1)*cellGap(r.InputClass)
	return inner + ContainerStyle(r.ContainerClass).GetHorizontalFrameSize()
}

// Height is the rendered height of the row without centering.
func (r CodeRow) Height() int {
	return 3 + ContainerStyle(r.ContainerClass).GetVerticalFrameSize()
}
