// Package screentest provides a wired screen environment for screen tests.
package screentest

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/store"
)

// Stub is a placeholder screen the factory hands out. Tests assert on
// its Name to see where navigation went.
type Stub struct {
	Name string
}

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Name }
func (s *Stub) Title() string                           { return s.Name }

// NewEnv opens a fresh database in a temp dir and returns an Env whose
// factory produces Stubs named "home", "dashboard", "levels", "history"
// and "lesson:<id>".
func NewEnv(t testing.TB, opts progress.Options) *screen.Env {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := catalog.MustDefault()
	if opts.Events == nil {
		opts.Events = st.EventRepo()
	}
	ctx := context.Background()
	ps := progress.New(st.KVRepo(), cat, opts)
	ps.Load(ctx)

	return &screen.Env{
		Ctx:      ctx,
		Progress: ps,
		Catalog:  cat,
		Log:      zap.NewNop(),
		Screens: screen.Factory{
			Home:        func() screen.Screen { return &Stub{Name: "home"} },
			Dashboard:   func() screen.Screen { return &Stub{Name: "dashboard"} },
			LevelSelect: func() screen.Screen { return &Stub{Name: "levels"} },
			History:     func() screen.Screen { return &Stub{Name: "history"} },
			Lesson:      func(id string) screen.Screen { return &Stub{Name: "lesson:" + id} },
		},
	}
}

// Run executes cmd and returns the message it produced, or nil.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// Key builds a key press for a printable character.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}
