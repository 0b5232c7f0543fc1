package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings an open modal responds to.
type KeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Press   key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the standard modal bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/→", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("←/→", "select"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// shortHelp lists the bindings shown under a modal.
func (k KeyMap) shortHelp(dismissable bool) []key.Binding {
	bindings := []key.Binding{k.Next, k.Press}
	if dismissable {
		bindings = append(bindings, k.Dismiss)
	}
	return bindings
}
