package message

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/ui/components"
	"github.com/abhisek/courseway/internal/ui/layout"
	"github.com/abhisek/courseway/internal/ui/theme"
)

// MessageScreen shows a short notice, such as a lesson that does not
// exist, with a single way out.
type MessageScreen struct {
	title   string
	heading string
	body    string
	action  string
	next    func() screen.Screen // nil pops back
}

var _ screen.Screen = (*MessageScreen)(nil)
var _ screen.KeyHintProvider = (*MessageScreen)(nil)

// New creates a message screen. Enter resets the stack to next(), or pops
// when next is nil.
func New(title, heading, body, action string, next func() screen.Screen) *MessageScreen {
	return &MessageScreen{
		title:   title,
		heading: heading,
		body:    body,
		action:  action,
		next:    next,
	}
}

func (m *MessageScreen) Init() tea.Cmd {
	return nil
}

func (m *MessageScreen) Title() string {
	return m.title
}

func (m *MessageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: m.action},
		{Key: "Esc", Description: "Back"},
	}
}

func (m *MessageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, components.Keys.Enter):
		if m.next == nil {
			return m, router.Pop()
		}
		return m, router.Reset(m.next())
	case key.Matches(kmsg, components.Keys.Back):
		return m, router.Pop()
	}
	return m, nil
}

func (m *MessageScreen) View(width, height int) string {
	content := theme.Title.Render(m.heading) + "\n\n" +
		theme.Body.Render(m.body) + "\n\n" +
		theme.ButtonActive.Render(m.action)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(content))
}
