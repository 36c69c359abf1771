package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courseway/internal/ui/theme"
)

// Button is a styled button bound to a key.
type Button struct {
	Label   string
	Binding key.Binding
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button triggered by binding.
func NewButton(label string, binding key.Binding, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Binding: binding,
		Active:  active,
		OnPress: onPress,
	}
}

// Update fires OnPress when the bound key is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, b.Binding) {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button with its key hint.
func (b Button) View() string {
	label := b.Label
	if keys := b.Binding.Help().Key; keys != "" {
		label = "[" + keys + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
