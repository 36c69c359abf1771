package levelselect

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/ui/components"
	"github.com/abhisek/courseway/internal/ui/layout"
	"github.com/abhisek/courseway/internal/ui/theme"
)

// LevelSelectScreen lets the learner pick a difficulty level.
type LevelSelectScreen struct {
	env     *screen.Env
	levels  []catalog.LevelConfig
	current catalog.Level
	cursor  int
	confirm bool // waiting for a second enter before discarding progress
	errMsg  string
}

var _ screen.Screen = (*LevelSelectScreen)(nil)
var _ screen.KeyHintProvider = (*LevelSelectScreen)(nil)

// New creates the level selector with the current level highlighted.
func New(env *screen.Env) *LevelSelectScreen {
	s := &LevelSelectScreen{
		env:     env,
		current: env.Level(),
	}
	for _, l := range catalog.AllLevels() {
		if cfg, ok := env.Catalog.Config(l); ok {
			s.levels = append(s.levels, cfg)
		}
	}
	for i, cfg := range s.levels {
		if cfg.ID == s.current || (s.current == "" && cfg.ID == catalog.LevelStandard) {
			s.cursor = i
		}
	}
	return s
}

func (s *LevelSelectScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelSelectScreen) Title() string {
	return "Choose your level"
}

func (s *LevelSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start this level"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LevelSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, components.Keys.Up, components.Keys.Left):
		if s.cursor > 0 {
			s.cursor--
			s.confirm = false
		}
	case key.Matches(kmsg, components.Keys.Down, components.Keys.Right):
		if s.cursor < len(s.levels)-1 {
			s.cursor++
			s.confirm = false
		}
	case key.Matches(kmsg, components.Keys.Enter):
		return s, s.choose()
	}
	return s, nil
}

// choose selects the highlighted level. Picking the current level keeps
// its progress; switching away from a level with progress asks first.
func (s *LevelSelectScreen) choose() tea.Cmd {
	if len(s.levels) == 0 {
		return nil
	}
	level := s.levels[s.cursor].ID
	if level == s.current {
		return router.Reset(s.env.Screens.Dashboard())
	}

	if s.current != "" && !s.confirm {
		if s.env.Progress.CompletionStats(s.env.Ctx, s.current).CompletedCount > 0 {
			s.confirm = true
			return nil
		}
	}

	if _, err := s.env.Progress.SelectLevel(s.env.Ctx, level); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return router.Reset(s.env.Screens.Dashboard())
}

func (s *LevelSelectScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Build a web app with AI") + "\n")
	b.WriteString(theme.Subtitle.Render("Learn at your own pace. Pick the level that suits you.") + "\n\n")

	compact := layout.IsCompactHeight(height)
	cardWidth := min(width-4, 76)
	for i, cfg := range s.levels {
		b.WriteString(s.renderCard(cfg, i == s.cursor, compact, cardWidth) + "\n")
	}

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render("Error: "+s.errMsg) + "\n")
	case s.confirm:
		b.WriteString(theme.Notice.Render("Switching levels clears the lessons you completed. Press enter again to switch.") + "\n")
	default:
		b.WriteString(theme.Hint.Render("Not sure? Standard is a good start. You can change level any time.") + "\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *LevelSelectScreen) renderCard(cfg catalog.LevelConfig, active, compact bool, width int) string {
	name := cfg.Badge()
	if cfg.NameJa != "" {
		name += " (" + cfg.NameJa + ")"
	}
	if cfg.ID == s.current {
		name += "  " + theme.Badge.Render("current")
	}

	var lines []string
	lines = append(lines, theme.Selected.Render(name))
	lines = append(lines, theme.Subtitle.Render(fmt.Sprintf("%d lessons · %s", cfg.LessonCount, cfg.EstimatedTime)))
	if active || !compact {
		lines = append(lines, theme.Body.Width(width-6).Render(cfg.Description))
	}
	if active && !compact {
		for _, f := range cfg.Features {
			lines = append(lines, theme.Done.Render("  ✓ ")+theme.Body.Render(f))
		}
		if len(cfg.TargetAudience) > 0 {
			lines = append(lines, theme.Heading.Render("Good for:"))
			for _, a := range cfg.TargetAudience {
				lines = append(lines, theme.Subtitle.Render("  • "+a))
			}
		}
	}

	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}
