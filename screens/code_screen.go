package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/vcode/core"
	"github.com/jask/vcode/widgets"
)

// rowTop is the line the code row starts on inside the screen view.
const rowTop = 2

var _ core.Screen = (*CodeScreen)(nil)

// CodeScreen hosts one code widget. Keys reach the focused cell; a key that
// arrives while no cell is focused focuses the active cell first.
type CodeScreen struct {
	title string
	ctrl  *core.Controller
	keys  *core.KeyRegistry
	width int
}

func NewCodeScreen(title string, opts core.Options, keys *core.KeyRegistry) *CodeScreen {
	if keys == nil {
		keys = core.NewKeyRegistry(core.DefaultKeyBindings())
	}
	return &CodeScreen{
		title: strings.TrimSpace(title),
		ctrl:  core.NewController(opts),
		keys:  keys,
	}
}

func (s *CodeScreen) Title() string { return s.title }

func (s *CodeScreen) Scope() string {
	if s.ctrl.Complete() {
		return core.ScopeComplete
	}
	return core.ScopeEntry
}

func (s *CodeScreen) Controller() *core.Controller { return s.ctrl }
func (s *CodeScreen) Value() string                { return s.ctrl.Value() }

// Init runs the mount effects of the widget.
func (s *CodeScreen) Init() tea.Cmd {
	return core.EffectCmds(s.ctrl.Mount())
}

// SetOptions resynchronizes the widget with externally supplied options. Nil
// callbacks keep the current ones.
func (s *CodeScreen) SetOptions(opts core.Options) tea.Cmd {
	cur := s.ctrl.Options()
	if opts.OnChange == nil {
		opts.OnChange = cur.OnChange
	}
	if opts.OnComplete == nil {
		opts.OnComplete = cur.OnComplete
	}
	return core.EffectCmds(s.ctrl.SetOptions(opts))
}

func (s *CodeScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil, false
	case core.OptionsMsg:
		return s, s.SetOptions(msg.Options), false
	case tea.FocusMsg:
		return s, core.EffectCmds(s.ensureFocus()), false
	case tea.BlurMsg:
		if f := s.ctrl.Focused(); f != core.NoFocus {
			s.ctrl.Dispatch(core.Intent{Kind: core.IntentBlur, Index: f})
			return s, core.EffectCmds([]core.Effect{{Kind: core.EffectBlur, Index: f}}), false
		}
		return s, nil, false
	case tea.MouseMsg:
		return s, s.handleMouse(msg), false
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil, false
}

func (s *CodeScreen) handleKey(msg tea.KeyMsg) (core.Screen, tea.Cmd, bool) {
	if action, ok := s.keys.ActionFor(msg, s.Scope()); ok {
		switch action {
		case core.ActionSubmit:
			value := s.ctrl.Value()
			return s, func() tea.Msg { return core.SubmittedMsg{Value: value} }, true
		case core.ActionReset:
			return s, core.EffectCmds(s.ctrl.Reset()), false
		case core.ActionFocus:
			return s, core.EffectCmds(s.ensureFocus()), false
		}
		return s, nil, false
	}

	// Fast typing can arrive as one message holding several runes.
	if !msg.Paste && msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		var effects []core.Effect
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			eff, rejected := s.typeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: msg.Alt})
			effects = append(effects, eff...)
			if rejected != nil {
				cmds = append(cmds, rejected)
			}
		}
		return s, tea.Batch(append(cmds, core.EffectCmds(effects))...), false
	}
	effects, rejected := s.typeKey(msg)
	return s, tea.Batch(rejected, core.EffectCmds(effects)), false
}

// typeKey delivers msg to the focused cell and returns the resulting effects
// plus a RejectedMsg command when the gate discarded the intent.
func (s *CodeScreen) typeKey(msg tea.KeyMsg) ([]core.Effect, tea.Cmd) {
	effects := s.ensureFocus()
	focus := s.ctrl.Focused()
	if focus == core.NoFocus {
		return effects, nil
	}
	in, ok := s.ctrl.Cells()[focus].HandleKey(msg)
	if !ok {
		return effects, nil
	}
	out := s.ctrl.Dispatch(in)
	effects = append(effects, out...)
	if !hasChange(out) {
		return effects, func() tea.Msg { return core.RejectedMsg{Intent: in.Kind, Index: in.Index} }
	}
	return effects, nil
}

// ensureFocus focuses the active cell when no cell holds focus.
func (s *CodeScreen) ensureFocus() []core.Effect {
	if s.ctrl.Focused() != core.NoFocus {
		return nil
	}
	active := s.ctrl.ActiveIndex()
	cell := s.ctrl.Cells()[active]
	if cell.Disabled() {
		return nil
	}
	effects := s.ctrl.Dispatch(cell.Focus())
	if s.ctrl.Focused() == active && !hasFocusOn(effects, active) {
		effects = append(effects, core.Effect{Kind: core.EffectFocus, Index: active})
	}
	return effects
}

func (s *CodeScreen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	row := s.row()
	if msg.Y < rowTop || msg.Y >= rowTop+row.Height() {
		return nil
	}
	left := max(0, (s.width-row.Width())/2)
	idx, ok := row.CellAt(msg.X - left)
	if !ok {
		return nil
	}
	cell := s.ctrl.Cells()[idx]
	if cell.Disabled() || cell.Focused {
		return nil
	}
	effects := s.ctrl.Dispatch(cell.Focus())
	if s.ctrl.Focused() == idx && !hasFocusOn(effects, idx) {
		effects = append(effects, core.Effect{Kind: core.EffectFocus, Index: idx})
	}
	return core.EffectCmds(effects)
}

func (s *CodeScreen) row() widgets.CodeRow {
	cells := s.ctrl.Cells()
	opts := s.ctrl.Options()
	boxes := make([]widgets.CellBox, len(cells))
	for i, c := range cells {
		state := widgets.CellDisabled
		switch {
		case c.Focused:
			state = widgets.CellFocused
		case c.Selected:
			state = widgets.CellSelected
		}
		boxes[i] = widgets.CellBox{Text: c.Display(), State: state}
	}
	return widgets.CodeRow{
		Cells:          boxes,
		ContainerClass: opts.ContainerClass,
		InputClass:     s.ctrl.Settings().InputClass,
	}
}

func (s *CodeScreen) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := s.row()
	lines := []string{
		widgets.RenderTitle(s.title, width),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Left, indent(row.Render(row.Width(), row.Height()), max(0, (width-row.Width())/2))),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, s.hint()),
	}
	return widgets.ClipHeight(strings.Join(lines, "\n"), height)
}

func (s *CodeScreen) hint() string {
	switch {
	case s.ctrl.Options().Disabled:
		return "Input disabled"
	case s.ctrl.Complete():
		return "Code complete"
	default:
		return "Enter the code"
	}
}

func indent(block string, n int) string {
	if n <= 0 {
		return block
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func hasChange(effects []core.Effect) bool {
	for _, e := range effects {
		if e.Kind == core.EffectChange {
			return true
		}
	}
	return false
}

func hasFocusOn(effects []core.Effect, idx int) bool {
	for _, e := range effects {
		if e.Kind == core.EffectFocus && e.Index == idx {
			return true
		}
	}
	return false
}
