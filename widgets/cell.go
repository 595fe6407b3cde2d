package widgets

import "strings"

type CellState int

const (
	CellDisabled CellState = iota
	CellSelected
	CellFocused
)

// CellBox draws one cell. Text is what the cell displays (already masked).
type CellBox struct {
	Text  string
	State CellState
	Class string
}

const cursorGlyph = "_"

func (c CellBox) Render() string {
	text := c.Text
	if text == "" {
		text = " "
		if c.State == CellFocused {
			text = cursorGlyph
		}
	}
	pad := strings.Repeat(" ", cellPadding(c.Class))
	return CellStyle(c.Class, c.State).Render(pad + text + pad)
}
