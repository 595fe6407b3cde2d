package core

import tea "github.com/charmbracelet/bubbletea"

type StatusMsg struct {
	Text  string
	IsErr bool
}

// ChangedMsg reports an accepted mutation of the composite value.
type ChangedMsg struct {
	Value string
}

// CompletedMsg reports that every cell holds a character.
type CompletedMsg struct {
	Value string
}

// SubmittedMsg is sent when the user confirms a complete code.
type SubmittedMsg struct {
	Value string
}

// FocusMovedMsg reports that device focus moved to (or left) a cell.
type FocusMovedMsg struct {
	Index   int
	Focused bool
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{Text: "", IsErr: false}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

// EffectCmds turns controller effects into messages for the program loop,
// keeping their order.
func EffectCmds(effects []Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		var msg tea.Msg
		switch e.Kind {
		case EffectChange:
			msg = ChangedMsg{Value: e.Value}
		case EffectComplete:
			msg = CompletedMsg{Value: e.Value}
		case EffectFocus:
			msg = FocusMovedMsg{Index: e.Index, Focused: true}
		case EffectBlur:
			msg = FocusMovedMsg{Index: e.Index, Focused: false}
		default:
			continue
		}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Sequence(cmds...)
}

// RejectedMsg reports an intent the validation gate discarded.
type RejectedMsg struct {
	Intent IntentKind
	Index  int
}

// OptionsMsg carries new externally supplied options for a hosted widget.
type OptionsMsg struct {
	Options Options
}
