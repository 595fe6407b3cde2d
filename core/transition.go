package core

import "unicode/utf8"

// NoFocus marks a state in which no cell holds device focus.
const NoFocus = -1

type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentChange
	IntentBackspace
	IntentPaste
	IntentFocus
	IntentBlur
)

func (k IntentKind) String() string {
	switch k {
	case IntentChange:
		return "change"
	case IntentBackspace:
		return "backspace"
	case IntentPaste:
		return "paste"
	case IntentFocus:
		return "focus"
	case IntentBlur:
		return "blur"
	default:
		return "none"
	}
}

// Intent is a raw user action reported by the cell at Index. Text carries the
// typed character for IntentChange and the clipboard text for IntentPaste.
type Intent struct {
	Kind  IntentKind
	Index int
	Text  string
}

type EffectKind int

const (
	EffectChange EffectKind = iota + 1
	EffectComplete
	EffectFocus
	EffectBlur
)

func (k EffectKind) String() string {
	switch k {
	case EffectChange:
		return "change"
	case EffectComplete:
		return "complete"
	case EffectFocus:
		return "focus"
	case EffectBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// Effect is a side effect that must run after a transition has been applied.
type Effect struct {
	Kind  EffectKind
	Value string
	Index int
}

// Rules is the read-only configuration a transition runs against.
type Rules struct {
	Length     int
	Disabled   bool
	AllowPaste bool
	AutoFocus  bool
	Gate       *Validator
}

// State is everything a widget instance mutates. Touched latches once any
// cell has received focus.
type State struct {
	Value   string
	Touched bool
	Focus   int
}

// ActiveIndex returns the first empty slot of value, or the last slot when
// every slot is filled.
func ActiveIndex(value string, length int) int {
	if length <= 0 {
		return 0
	}
	n := utf8.RuneCountInString(value)
	if n < length {
		return n
	}
	return length - 1
}

func (r Rules) selected(s State, index int) bool {
	return !r.Disabled && ActiveIndex(s.Value, r.Length) == index
}

func (r Rules) canFocus(s State) bool {
	return r.AutoFocus || s.Touched
}

// focusTarget is the cell that should hold focus, or NoFocus.
func (r Rules) focusTarget(s State) int {
	if r.Disabled || !r.canFocus(s) {
		return NoFocus
	}
	return ActiveIndex(s.Value, r.Length)
}

// accepts reports whether candidate may become the committed value.
func (r Rules) accepts(candidate string) bool {
	if utf8.RuneCountInString(candidate) > r.Length {
		return false
	}
	return r.Gate.Valid(candidate)
}

// Transition applies in to s. Rejected intents return s unchanged and no
// effects.
func Transition(r Rules, s State, in Intent) (State, []Effect) {
	switch in.Kind {
	case IntentChange:
		return r.change(s, in)
	case IntentBackspace:
		return r.backspace(s, in)
	case IntentPaste:
		return r.paste(s, in)
	case IntentFocus:
		return r.focus(s, in)
	case IntentBlur:
		if s.Focus != in.Index || s.Focus == NoFocus {
			return s, nil
		}
		s.Focus = NoFocus
		return s, nil
	default:
		return s, nil
	}
}

func (r Rules) change(s State, in Intent) (State, []Effect) {
	if !r.selected(s, in.Index) || utf8.RuneCountInString(in.Text) > 1 {
		return s, nil
	}
	slots := splitSlots(s.Value, r.Length)
	slots[ActiveIndex(s.Value, r.Length)] = in.Text
	return r.commit(s, joinSlots(slots))
}

func (r Rules) backspace(s State, in Intent) (State, []Effect) {
	if !r.selected(s, in.Index) {
		return s, nil
	}
	active := ActiveIndex(s.Value, r.Length)
	if active == 0 {
		return s, nil
	}
	slots := splitSlots(s.Value, r.Length)
	slots[active-1] = ""
	return r.commit(s, joinSlots(slots))
}

func (r Rules) paste(s State, in Intent) (State, []Effect) {
	if !r.AllowPaste || !r.selected(s, in.Index) {
		return s, nil
	}
	room := r.Length - utf8.RuneCountInString(s.Value)
	if room <= 0 {
		return s, nil
	}
	text := []rune(in.Text)
	if len(text) > room {
		text = text[:room]
	}
	if !r.Gate.ValidFor(string(text), room) {
		return s, nil
	}
	return r.commit(s, s.Value+string(text))
}

func (r Rules) focus(s State, in Intent) (State, []Effect) {
	if !r.selected(s, in.Index) {
		return s, nil
	}
	before := r.focusTarget(s)
	s.Touched = true
	s.Focus = in.Index
	return s, r.reconcileFocus(before, &s)
}

// commit runs the validation gate and, on success, replaces the value and
// derives the effects: change first, then focus movement, then completion.
func (r Rules) commit(s State, candidate string) (State, []Effect) {
	if !r.accepts(candidate) {
		return s, nil
	}
	before := r.focusTarget(s)
	prev := s.Value
	s.Value = candidate
	effects := []Effect{{Kind: EffectChange, Value: candidate}}
	effects = append(effects, r.reconcileFocus(before, &s)...)
	if candidate != prev && utf8.RuneCountInString(candidate) == r.Length {
		effects = append(effects, Effect{Kind: EffectComplete, Value: candidate})
	}
	return s, effects
}

// reconcileFocus moves focus to the cell that newly became selected and
// focusable, and drops focus held by a cell that is no longer selected.
func (r Rules) reconcileFocus(before int, s *State) []Effect {
	after := r.focusTarget(*s)
	if after != NoFocus && after != before && s.Focus != after {
		s.Focus = after
		return []Effect{{Kind: EffectFocus, Index: after}}
	}
	if s.Focus != NoFocus && !r.selected(*s, s.Focus) {
		lost := s.Focus
		s.Focus = NoFocus
		return []Effect{{Kind: EffectBlur, Index: lost}}
	}
	return nil
}

func splitSlots(value string, length int) []string {
	runes := []rune(value)
	slots := make([]string, max(length, len(runes)))
	for i, r := range runes {
		slots[i] = string(r)
	}
	return slots
}

func joinSlots(slots []string) string {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	buf := make([]byte, 0, n)
	for _, s := range slots {
		buf = append(buf, s...)
	}
	return string(buf)
}
