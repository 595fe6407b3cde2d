package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func sampleRow(container, input string) CodeRow {
	return CodeRow{
		Cells: []CellBox{
			{Text: "1", State: CellDisabled},
			{Text: "", State: CellFocused},
			{Text: "", State: CellDisabled},
			{Text: "", State: CellDisabled},
		},
		ContainerClass: container,
		InputClass:     input,
	}
}

func TestCodeRowDimensions(t *testing.T) {
	for _, container := range Classes() {
		for _, input := range Classes() {
			row := sampleRow(container, input)
			out := row.Render(row.Width(), row.Height())
			if got := lipgloss.Width(out); got != row.Width() {
				t.Fatalf("%s/%s: rendered width %d, want %d", container, input, got, row.Width())
			}
			if got := lipgloss.Height(out); got != row.Height() {
				t.Fatalf("%s/%s: rendered height %d, want %d", container, input, got, row.Height())
			}
		}
	}
}

func TestCodeRowCellAt(t *testing.T) {
	row := sampleRow("", "")
	tests := []struct {
		x    int
		want int
		ok   bool
	}{
		{x: 0, ok: false},
		{x: 1, want: 0, ok: true},
		{x: 5, want: 0, ok: true},
		{x: 6, ok: false},
		{x: 7, want: 1, ok: true},
		{x: 19, want: 3, ok: true},
		{x: 24, ok: false},
	}
	for _, tt := range tests {
		got, ok := row.CellAt(tt.x)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("CellAt(%d) = %d, %v; want %d, %v", tt.x, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCodeRowCompactHasNoGaps(t *testing.T) {
	row := sampleRow(ClassCompact, ClassCompact)
	if row.Width() != 4*CellWidth(ClassCompact) {
		t.Fatalf("compact row width %d", row.Width())
	}
	if idx, ok := row.CellAt(CellWidth(ClassCompact)); !ok || idx != 1 {
		t.Fatalf("expected second cell right after the first, got %d %v", idx, ok)
	}
}

func TestCodeRowRendersCells(t *testing.T) {
	row := sampleRow("", "")
	out := ansi.Strip(row.Render(row.Width(), row.Height()))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "1") || !strings.Contains(lines[1], cursorGlyph) {
		t.Fatalf("expected value and cursor on the middle line: %q", lines[1])
	}
	if row.Render(0, 3) != "" || (CodeRow{}).Render(10, 3) != "" {
		t.Fatalf("expected empty render for empty inputs")
	}
}

func TestNormalizeClass(t *testing.T) {
	for in, want := range map[string]string{"": ClassDefault, " Compact ": ClassCompact, "accent": ClassAccent, "nope": ClassDefault} {
		if got := normalizeClass(in); got != want {
			t.Fatalf("normalizeClass(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusBarAndFooterFitWidth(t *testing.T) {
	for _, w := range []int{1, 10, 60} {
		if got := lipgloss.Width(RenderStatusBar("", false, w)); got != w {
			t.Fatalf("status width %d, want %d", got, w)
		}
		if got := lipgloss.Width(RenderStatusBar("a long message that will not fit", true, w)); got != w {
			t.Fatalf("error status width %d, want %d", got, w)
		}
		b := []key.Binding{key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear"))}
		if got := lipgloss.Width(RenderFooter(b, w)); got != w {
			t.Fatalf("footer width %d, want %d", got, w)
		}
	}
	if !strings.Contains(ansi.Strip(RenderStatusBar("", false, 20)), "Ready") {
		t.Fatalf("expected Ready placeholder")
	}
	if !strings.Contains(ansi.Strip(RenderFooter(nil, 40)), "No shortcuts") {
		t.Fatalf("expected placeholder footer")
	}
}

func TestClipHeight(t *testing.T) {
	if got := ClipHeight("a\nb\nc", 2); got != "a\nb" {
		t.Fatalf("got %q", got)
	}
	if ClipHeight("a", 0) != "" || TrimToWidth("abc", 0) != "" {
		t.Fatalf("expected empty output for non-positive sizes")
	}
	if got := TrimToWidth("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
