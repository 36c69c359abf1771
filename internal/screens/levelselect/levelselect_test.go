package levelselect

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

func enter(s *LevelSelectScreen) tea.Msg {
	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	return screentest.Run(cmd)
}

func TestDefaultsCursorToStandard(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	s := New(env)
	assert.Equal(t, catalog.LevelStandard, s.levels[s.cursor].ID)
}

func TestChooseLevel(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	s := New(env)

	s.Update(screentest.Special(tea.KeyUp))
	msg := enter(s)

	reset, ok := msg.(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "dashboard", reset.Screen.Title())
	assert.Equal(t, catalog.LevelBeginner, env.Level())
}

func TestChoosingCurrentLevelKeepsProgress(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	_, err := env.Progress.SelectLevel(env.Ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = env.Progress.MarkLessonComplete(env.Ctx, "beginner-lesson1")
	require.NoError(t, err)

	s := New(env)
	assert.Equal(t, catalog.LevelBeginner, s.levels[s.cursor].ID)

	_, ok := enter(s).(router.ResetScreenMsg)
	require.True(t, ok)
	assert.True(t, env.Progress.IsLessonCompleted(env.Ctx, "beginner-lesson1"))
}

func TestSwitchingWithProgressNeedsConfirmation(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	_, err := env.Progress.SelectLevel(env.Ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = env.Progress.MarkLessonComplete(env.Ctx, "beginner-lesson1")
	require.NoError(t, err)

	s := New(env)
	s.Update(screentest.Special(tea.KeyDown))

	assert.Nil(t, enter(s))
	assert.True(t, s.confirm)
	assert.Contains(t, s.View(100, 40), "Press enter again")
	assert.Equal(t, catalog.LevelBeginner, env.Level())

	_, ok := enter(s).(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, catalog.LevelStandard, env.Level())
	assert.False(t, env.Progress.IsLessonCompleted(env.Ctx, "beginner-lesson1"))
}

func TestMovingCancelsConfirmation(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	_, err := env.Progress.SelectLevel(env.Ctx, catalog.LevelBeginner)
	require.NoError(t, err)
	_, err = env.Progress.MarkLessonComplete(env.Ctx, "beginner-lesson1")
	require.NoError(t, err)

	s := New(env)
	s.Update(screentest.Special(tea.KeyDown))
	enter(s)
	require.True(t, s.confirm)

	s.Update(screentest.Special(tea.KeyDown))
	assert.False(t, s.confirm)
}

func TestSingleLevelModeReportsError(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{})
	s := New(env)
	s.Update(screentest.Special(tea.KeyUp))

	assert.Nil(t, enter(s))
	assert.Contains(t, s.View(100, 40), "Error:")
}

func TestViewListsLevels(t *testing.T) {
	env := screentest.NewEnv(t, progress.Options{MultiLevel: true})
	view := New(env).View(100, 60)

	for _, l := range catalog.AllLevels() {
		cfg, _ := env.Catalog.Config(l)
		assert.Contains(t, view, cfg.Name)
	}
}
