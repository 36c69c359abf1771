package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	sproutAt     = 400 * time.Millisecond
	bloomAt      = 900 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// Growth stages of the plant, drawn bottom-aligned in a fixed-height box.
var plantStages = []string{
	"\n\n\n\n   ▁▂▁",
	"\n\n\n    ╻\n   ▁┻▁",
	"\n  ╲ ╱\n   ┃\n   ┃\n  ▁┻▁",
	"   ❀\n ╲ ┃ ╱\n  ╲┃╱\n   ┃\n  ▁┻▁",
}

var sparkleFrames = []string{"·", "✦"}

type tickMsg time.Time

// WelcomeScreen plays a short splash before handing over to the home
// screen. Any key skips ahead.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

func (w *WelcomeScreen) stage() int {
	switch {
	case w.elapsed >= bloomAt:
		return 3
	case w.elapsed >= sproutAt:
		return 2
	case w.elapsed > 0:
		return 1
	}
	return 0
}

func (w *WelcomeScreen) View(width, height int) string {
	stage := w.stage()
	plant := plantStages[stage]

	lines := strings.Split(plant, "\n")
	stem := lipgloss.NewStyle().Foreground(theme.Success)
	for i := range lines {
		lines[i] = stem.Render(lines[i])
	}
	if stage == len(plantStages)-1 {
		// The flower twinkles once it has bloomed.
		s := sparkleFrames[w.tickCount%len(sparkleFrames)]
		lines[0] = lipgloss.NewStyle().Foreground(theme.Accent).Render(s) + lines[0] +
			lipgloss.NewStyle().Foreground(theme.Secondary).Render("  "+s)
	}
	sections := []string{strings.Join(lines, "\n")}

	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Build your first web app, one lesson at a time")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
