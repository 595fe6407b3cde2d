package core

import tea "github.com/charmbracelet/bubbletea"

// Screen is a view hosted by the program model. Update reports done when the
// screen has finished and should be dismissed.
type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}
