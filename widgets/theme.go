package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorBlue
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorMuted   = colorSubtext0
	colorBorder  = colorSurface2
)

// Class names accepted for the container and input class hooks. Unknown
// names fall back to ClassDefault.
const (
	ClassDefault = "default"
	ClassCompact = "compact"
	ClassAccent  = "accent"
)

func Classes() []string {
	return []string{ClassDefault, ClassCompact, ClassAccent}
}

func normalizeClass(class string) string {
	switch c := strings.ToLower(strings.TrimSpace(class)); c {
	case ClassCompact, ClassAccent:
		return c
	default:
		return ClassDefault
	}
}

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// ContainerStyle styles the row holding every cell.
func ContainerStyle(class string) lipgloss.Style {
	switch normalizeClass(class) {
	case ClassCompact:
		return lipgloss.NewStyle()
	case ClassAccent:
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMauve).
			Padding(0, 1)
	default:
		return lipgloss.NewStyle().Padding(0, 1)
	}
}

// CellStyle styles one cell box for its state.
func CellStyle(class string, state CellState) lipgloss.Style {
	base := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	active := colorAccent
	if normalizeClass(class) == ClassAccent {
		active = colorPink
	}
	switch state {
	case CellFocused:
		return base.BorderForeground(colorFocus).Foreground(colorText).Bold(true)
	case CellSelected:
		return base.BorderForeground(active).Foreground(colorText)
	default:
		return base.BorderForeground(colorBorder).Foreground(colorMuted)
	}
}

func cellPadding(class string) int {
	if normalizeClass(class) == ClassCompact {
		return 0
	}
	return 1
}

// CellWidth is the rendered column width of one cell box.
func CellWidth(class string) int {
	return 1 + 2*cellPadding(class) + 2
}

func cellGap(class string) int {
	if normalizeClass(class) == ClassCompact {
		return 0
	}
	return 1
}
