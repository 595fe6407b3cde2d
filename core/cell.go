package core

import (
	"errors"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoCellSettings is the panic value of NewCell when it is called without
// the settings of an owning Controller.
var ErrNoCellSettings = errors.New("core: cell constructed without controller settings")

const MaskRune = '•'

// CellSettings is shared by every cell of one Controller render. Cells never
// modify it.
type CellSettings struct {
	Password   bool
	InputClass string
}

// Cell is one single-character slot. It holds no part of the composite value
// beyond its own character and reports user actions as intents.
type Cell struct {
	Index    int
	Char     string
	Selected bool
	CanFocus bool
	Focused  bool
	settings *CellSettings
}

func NewCell(settings *CellSettings, index int, char string, selected, canFocus, focused bool) Cell {
	if settings == nil {
		panic(ErrNoCellSettings)
	}
	return Cell{
		Index:    index,
		Char:     char,
		Selected: selected,
		CanFocus: canFocus,
		Focused:  focused,
		settings: settings,
	}
}

func (c Cell) Settings() *CellSettings { return c.settings }

// Disabled cells accept no input at all.
func (c Cell) Disabled() bool { return !c.Selected }

func (c Cell) Empty() bool { return c.Char == "" }

// WantsFocus reports whether the cell takes device focus.
func (c Cell) WantsFocus() bool { return c.Selected && c.CanFocus }

func (c Cell) Display() string {
	if c.Char != "" && c.settings.Password {
		return string(MaskRune)
	}
	return c.Char
}

func (c Cell) Focus() Intent {
	return Intent{Kind: IntentFocus, Index: c.Index}
}

func (c Cell) Blur() Intent {
	return Intent{Kind: IntentBlur, Index: c.Index}
}

// HandleKey translates a key press on this cell into an intent. Pastes are
// passed through untruncated.
func (c Cell) HandleKey(msg tea.KeyMsg) (Intent, bool) {
	if c.Disabled() {
		return Intent{}, false
	}
	if msg.Paste {
		return Intent{Kind: IntentPaste, Index: c.Index, Text: string(msg.Runes)}, true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if c.Empty() {
			return Intent{Kind: IntentBackspace, Index: c.Index}, true
		}
		return Intent{Kind: IntentChange, Index: c.Index, Text: ""}, true
	case tea.KeySpace:
		return Intent{Kind: IntentChange, Index: c.Index, Text: " "}, true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 || !unicode.IsPrint(msg.Runes[0]) {
			return Intent{}, false
		}
		return Intent{Kind: IntentChange, Index: c.Index, Text: string(msg.Runes)}, true
	default:
		return Intent{}, false
	}
}
