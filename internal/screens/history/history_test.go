package history

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen/screentest"
)

func TestLoadsEventsNewestFirst(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	_, err := env.Progress.SelectLevel(env.Ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = env.Progress.MarkLessonComplete(env.Ctx, "beginner-lesson1")
	require.NoError(t, err)

	s := New(env)
	assert.Contains(t, s.View(100, 30), "Loading")

	s.Update(s.Init()())
	require.True(t, s.loaded)
	require.Len(t, s.events, 2)

	view := s.View(120, 30)
	assert.Contains(t, view, "Completed L1")
	assert.Contains(t, view, "Started the")
}

func TestEmptyHistory(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	s := New(env)
	s.Update(s.Init()())

	assert.Contains(t, s.View(100, 30), "Nothing here yet")
}

func TestNavigation(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	_, err := env.Progress.SelectLevel(env.Ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = env.Progress.MarkLessonComplete(env.Ctx, "beginner-lesson1")
	require.NoError(t, err)

	s := New(env)
	s.Update(s.Init()())

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyDown))
	assert.Equal(t, 1, s.selected)

	_, cmd := s.Update(screentest.Special(tea.KeyEscape))
	assert.IsType(t, router.PopScreenMsg{}, screentest.Run(cmd))
}
