package core

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	ActionSubmit = "submit"
	ActionReset  = "reset"
	ActionQuit   = "quit"
	ActionFocus  = "focus"
)

// Scopes a key binding can be limited to.
const (
	ScopeEntry    = "code:entry"
	ScopeComplete = "code:complete"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// Binding returns the bubbles form used for help rendering.
func (b KeyBinding) Binding() key.Binding {
	if len(b.Keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// ActionFor returns the action bound to msg in scope. Printable runes are
// never bound: they always belong to the focused cell.
func (r *KeyRegistry) ActionFor(msg tea.KeyMsg, scope string) (string, bool) {
	if msg.Paste || (msg.Type == tea.KeyRunes && !msg.Alt) || msg.Type == tea.KeySpace {
		return "", false
	}
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action, true
			}
		}
	}
	return "", false
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	got, ok := r.ActionFor(msg, scope)
	return ok && got == action
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"enter"}, Action: ActionSubmit, Description: "submit", Scopes: []string{ScopeComplete}},
		{Keys: []string{"ctrl+u"}, Action: ActionReset, Description: "clear", Scopes: []string{"*"}},
		{Keys: []string{"tab"}, Action: ActionFocus, Description: "focus", Scopes: []string{ScopeEntry}},
		{Keys: []string{"ctrl+c", "esc"}, Action: ActionQuit, Description: "quit", Scopes: []string{"*"}},
	}
}

// ApplyActionKeybindings overrides the keys of bindings whose action appears
// in actionKeys.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        slices.Clone(b.Keys),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      slices.Clone(b.Scopes),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = slices.Clone(keys)
		}
		out = append(out, next)
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
