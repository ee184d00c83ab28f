package behavior

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/dshills/graphview/internal/shortcut"
)

// KeyBindings describes the active mode for help displays. Directions that
// the axis lock suppresses, or a behavior disabled outright, are reported
// as disabled bindings.
func (s *ScrollCanvas) KeyBindings() []key.Binding {
	opts := s.Options()
	disabled := s.Destroyed() || isDisabled(opts.Enable)

	if opts.Trigger == nil {
		return []key.Binding{
			newBinding([]string{"wheel"}, "pan", disabled),
		}
	}

	t := opts.Trigger
	return []key.Binding{
		newBinding(comboKeys(t.Up), "pan up", disabled || opts.Direction == DirectionX),
		newBinding(comboKeys(t.Down), "pan down", disabled || opts.Direction == DirectionX),
		newBinding(comboKeys(t.Left), "pan left", disabled || opts.Direction == DirectionY),
		newBinding(comboKeys(t.Right), "pan right", disabled || opts.Direction == DirectionY),
	}
}

func newBinding(keys []string, desc string, disabled bool) key.Binding {
	b := key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
	if disabled || len(keys) == 0 {
		b.SetEnabled(false)
	}
	return b
}

// comboKeys renders a combination as a single "ctrl+up" style key.
func comboKeys(combo []shortcut.Key) []string {
	if len(combo) == 0 {
		return nil
	}
	parts := make([]string, len(combo))
	for i, k := range combo {
		parts[i] = strings.ToLower(string(k))
	}
	return []string{strings.Join(parts, "+")}
}
