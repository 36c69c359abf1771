package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/screen/screentest"
)

func newTestWelcomeWithCounter() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &screentest.Stub{Name: "home"}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func containsBanner(s string) bool {
	return strings.Contains(s, "one lesson at a time")
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()

	assert.Equal(t, 0, w.stage())
	assert.False(t, containsBanner(w.View(80, 24)), "banner should not be visible at start")

	sendTicks(w, 4)
	assert.Equal(t, 400*time.Millisecond, w.elapsed)
	assert.Equal(t, 2, w.stage())

	sendTicks(w, 5)
	assert.Equal(t, 3, w.stage())
	assert.False(t, containsBanner(w.View(80, 24)))

	sendTicks(w, 6)
	assert.True(t, containsBanner(w.View(80, 24)), "banner should be visible once grown")
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd, "keypress during animation should trigger transition")

	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg, got %T", msg)
	assert.Equal(t, "home", replace.Screen.Title())
	assert.Equal(t, 1, *callCount)
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	sendTicks(w, 45)
	assert.Equal(t, 0, *callCount, "factory should not be called without keypress")
	assert.Equal(t, totalDur, w.elapsed, "elapsed should be capped")
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	sendTicks(w, 45)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd, "second keypress should not produce a command")
	assert.Equal(t, 1, *callCount)
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := sendTicks(w, 1)
	assert.Nil(t, cmd)
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	assert.Empty(t, w.Title())
}

func TestCompactBanner(t *testing.T) {
	assert.Contains(t, RenderBanner(20), "COURSEWAY")
	assert.Contains(t, RenderBanner(80), "┏━╸")
}
