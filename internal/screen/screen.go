package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Factory builds the screens that screens navigate to. It lives here so
// that screens can reach each other without importing each other.
type Factory struct {
	// Home is the dashboard, or level selection when no level is chosen.
	Home        func() Screen
	Dashboard   func() Screen
	LevelSelect func() Screen
	Lesson      func(lessonID string) Screen
	History     func() Screen
}

// Env is shared by every screen of a session.
type Env struct {
	Ctx      context.Context
	Progress *progress.Store
	Catalog  *catalog.Catalog
	Log      *zap.Logger
	Screens  Factory
}

// Level returns the selected level, or "" when none is selected.
func (e *Env) Level() catalog.Level {
	return e.Progress.Record(e.Ctx).SelectedLevel
}
