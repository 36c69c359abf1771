package history

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/store"
	"github.com/abhisek/courseway/internal/ui/components"
	"github.com/abhisek/courseway/internal/ui/layout"
	"github.com/abhisek/courseway/internal/ui/theme"
)

const historyLimit = 100

type historyLoadedMsg struct {
	Events []store.ProgressEvent
	Err    error
}

// HistoryScreen lists level changes and lesson completions, newest first.
type HistoryScreen struct {
	env      *screen.Env
	events   []store.ProgressEvent
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{env: env}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.env.Progress.History(s.env.Ctx, historyLimit)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, components.Keys.Back):
			return s, router.Pop()
		case key.Matches(msg, components.Keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, components.Keys.Down):
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Pick a level and finish a lesson!")
	}

	// Keep the selected row in view.
	rows := max(height-2, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.events))

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < end; i++ {
		ev := s.events[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + ev.Timestamp.Local().Format("Jan 02 15:04") + "  " + progress.DescribeEvent(s.env.Catalog, ev)

		style := lipgloss.NewStyle().Foreground(kindColor(ev.Kind))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString("  " + style.Render(layout.Truncate(line, width-4)) + "\n")
	}
	return b.String()
}

func kindColor(k store.EventKind) color.Color {
	switch k {
	case store.EventLessonCompleted:
		return theme.Success
	case store.EventLevelSelected:
		return theme.Secondary
	case store.EventProgressReset:
		return theme.Accent
	default:
		return theme.Text
	}
}
