package core

import "unicode/utf8"

const DefaultLength = 4

// Options configures a Controller. Start from DefaultOptions; the zero value
// disables paste.
type Options struct {
	Value          string
	Length         int
	Password       bool
	Disabled       bool
	AllowPaste     bool
	Pattern        Pattern
	AutoFocus      bool
	ContainerClass string
	InputClass     string
	OnChange       func(value string)
	OnComplete     func(value string)
}

func DefaultOptions() Options {
	return Options{Length: DefaultLength, AllowPaste: true}
}

func (o Options) normalized() Options {
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	return o
}

// Controller owns the composite value of one code widget and interprets cell
// intents against it.
type Controller struct {
	opts     Options
	rules    Rules
	state    State
	settings *CellSettings
}

func NewController(opts Options) *Controller {
	opts = opts.normalized()
	c := &Controller{opts: opts, state: State{Focus: NoFocus}}
	c.rules = rulesFor(opts, NewValidator(opts.Pattern, opts.Length))
	c.settings = &CellSettings{Password: opts.Password, InputClass: opts.InputClass}
	if c.rules.accepts(opts.Value) {
		c.state.Value = opts.Value
	}
	return c
}

func rulesFor(opts Options, gate *Validator) Rules {
	return Rules{
		Length:     opts.Length,
		Disabled:   opts.Disabled,
		AllowPaste: opts.AllowPaste,
		AutoFocus:  opts.AutoFocus,
		Gate:       gate,
	}
}

// Mount runs the effects of the first render: auto focus and completion of an
// initially full value.
func (c *Controller) Mount() []Effect {
	var effects []Effect
	if target := c.rules.focusTarget(c.state); target != NoFocus {
		c.state.Focus = target
		effects = append(effects, Effect{Kind: EffectFocus, Index: target})
	}
	if c.Complete() {
		effects = append(effects, Effect{Kind: EffectComplete, Value: c.state.Value})
	}
	c.notify(effects)
	return effects
}

// Dispatch applies one intent and fires the change and completion callbacks.
func (c *Controller) Dispatch(in Intent) []Effect {
	next, effects := Transition(c.rules, c.state, in)
	c.state = next
	c.notify(effects)
	return effects
}

// SetOptions replaces the configuration. A changed Value, Length or Pattern
// resynchronizes the composite value, but only when the new value passes the
// gate. OnChange does not fire for resynchronization.
func (c *Controller) SetOptions(opts Options) []Effect {
	opts = opts.normalized()
	prev := c.opts
	before := c.rules.focusTarget(c.state)
	prevValue := c.state.Value

	gate := c.rules.Gate
	if opts.Pattern != prev.Pattern || opts.Length != prev.Length {
		gate = NewValidator(opts.Pattern, opts.Length)
	}
	c.opts = opts
	c.rules = rulesFor(opts, gate)
	if opts.Password != prev.Password || opts.InputClass != prev.InputClass {
		c.settings = &CellSettings{Password: opts.Password, InputClass: opts.InputClass}
	}

	if opts.Value != prev.Value || opts.Length != prev.Length || opts.Pattern != prev.Pattern {
		if c.rules.accepts(opts.Value) {
			c.state.Value = opts.Value
		}
	}

	effects := c.rules.reconcileFocus(before, &c.state)
	if (c.state.Value != prevValue || opts.Length != prev.Length) && c.Complete() {
		effects = append(effects, Effect{Kind: EffectComplete, Value: c.state.Value})
	}
	c.notify(effects)
	return effects
}

// Reset empties every cell. It bypasses the gate, since patterns such as
// ^\d+$ reject the empty value.
func (c *Controller) Reset() []Effect {
	if c.state.Value == "" {
		return nil
	}
	before := c.rules.focusTarget(c.state)
	c.state.Value = ""
	effects := []Effect{{Kind: EffectChange, Value: ""}}
	effects = append(effects, c.rules.reconcileFocus(before, &c.state)...)
	c.notify(effects)
	return effects
}

func (c *Controller) notify(effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectChange:
			if c.opts.OnChange != nil {
				c.opts.OnChange(e.Value)
			}
		case EffectComplete:
			if c.opts.OnComplete != nil {
				c.opts.OnComplete(e.Value)
			}
		}
	}
}

func (c *Controller) Options() Options { return c.opts }
func (c *Controller) State() State     { return c.state }
func (c *Controller) Value() string    { return c.state.Value }
func (c *Controller) Length() int      { return c.opts.Length }

func (c *Controller) ActiveIndex() int {
	return ActiveIndex(c.state.Value, c.opts.Length)
}

func (c *Controller) Focused() int { return c.state.Focus }

func (c *Controller) Complete() bool {
	return utf8.RuneCountInString(c.state.Value) == c.opts.Length
}

// Settings is the configuration shared read-only by every cell of this render.
func (c *Controller) Settings() *CellSettings { return c.settings }

// Cells renders the widget's cells for the current state.
func (c *Controller) Cells() []Cell {
	runes := []rune(c.state.Value)
	canFocus := c.rules.canFocus(c.state)
	out := make([]Cell, c.opts.Length)
	for i := range out {
		char := ""
		if i < len(runes) {
			char = string(runes[i])
		}
		out[i] = NewCell(c.settings, i, char, c.rules.selected(c.state, i), canFocus, c.state.Focus == i)
	}
	return out
}
