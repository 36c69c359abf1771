// Package app wires the screens into the root Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/screens/dashboard"
	"github.com/abhisek/courseway/internal/screens/history"
	"github.com/abhisek/courseway/internal/screens/lesson"
	"github.com/abhisek/courseway/internal/screens/levelselect"
	"github.com/abhisek/courseway/internal/screens/welcome"
	"github.com/abhisek/courseway/internal/ui/layout"
)

// Options configures a TUI session.
type Options struct {
	Ctx      context.Context
	Progress *progress.Store
	Catalog  *catalog.Catalog
	Logger   *zap.Logger

	// LessonID opens a lesson directly instead of the home screen.
	LessonID string

	// SkipSplash starts on the home screen without the welcome animation.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screen.Env
	router *router.Router
	width  int
	height int
}

// NewEnv builds the screen environment with a factory for every screen.
func NewEnv(opts Options) *screen.Env {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Catalog == nil {
		opts.Catalog = opts.Progress.Catalog()
	}

	env := &screen.Env{
		Ctx:      opts.Ctx,
		Progress: opts.Progress,
		Catalog:  opts.Catalog,
		Log:      opts.Logger,
	}
	env.Screens = screen.Factory{
		Dashboard:   func() screen.Screen { return dashboard.New(env) },
		LevelSelect: func() screen.Screen { return levelselect.New(env) },
		History:     func() screen.Screen { return history.New(env) },
		Lesson:      func(id string) screen.Screen { return lesson.New(env, id) },
	}
	env.Screens.Home = func() screen.Screen {
		if env.Level() == "" {
			return env.Screens.LevelSelect()
		}
		return env.Screens.Dashboard()
	}
	return env
}

func newAppModel(opts Options) AppModel {
	env := NewEnv(opts)

	var initial screen.Screen
	switch {
	case opts.LessonID != "":
		initial = env.Screens.Lesson(opts.LessonID)
	case opts.SkipSplash:
		initial = env.Screens.Home()
	default:
		initial = welcome.New(env.Screens.Home)
	}

	return AppModel{
		env:    env,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status summarizes the learner's level for the header.
func (m AppModel) status() layout.HeaderStatus {
	level := m.env.Level()
	if level == "" {
		return layout.HeaderStatus{}
	}
	label := string(level)
	if cfg, ok := m.env.Catalog.Config(level); ok {
		label = cfg.Badge()
	}
	return layout.HeaderStatus{
		Level:   label,
		Percent: m.env.Progress.CompletionStats(m.env.Ctx, level).Percent,
	}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
