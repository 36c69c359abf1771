package dashboard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/ui/components"
	"github.com/abhisek/courseway/internal/ui/layout"
	"github.com/abhisek/courseway/internal/ui/theme"
)

// DashboardScreen shows overall and per-phase progress for the selected
// level and lets the learner open any lesson.
type DashboardScreen struct {
	env    *screen.Env
	cursor int // index into targets()
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard.
func New(env *screen.Env) *DashboardScreen {
	return &DashboardScreen{env: env}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open lesson"},
		{Key: "H", Description: "History"},
	}
	if d.env.Progress.MultiLevel() {
		hints = append(hints, layout.KeyHint{Key: "L", Description: "Change level"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// targets lists the lesson IDs the cursor moves over: the next-lesson
// call to action first, then every lesson in catalog order.
func (d *DashboardScreen) targets(level catalog.Level) []string {
	var ids []string
	if next, ok := d.env.Progress.NextIncompleteLesson(d.env.Ctx, level); ok {
		ids = append(ids, next.Lesson.ID)
	}
	for _, ref := range d.env.Catalog.Lessons(level) {
		ids = append(ids, ref.Lesson.ID)
	}
	return ids
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	level := d.env.Level()
	if level == "" {
		// Progress was reset underneath us.
		return d, router.Reset(d.env.Screens.LevelSelect())
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	targets := d.targets(level)
	switch {
	case key.Matches(kmsg, components.Keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(kmsg, components.Keys.Down):
		if d.cursor < len(targets)-1 {
			d.cursor++
		}
	case key.Matches(kmsg, components.Keys.Enter):
		if d.cursor < len(targets) {
			return d, router.Push(d.env.Screens.Lesson(targets[d.cursor]))
		}
	case key.Matches(kmsg, components.Keys.History):
		return d, router.Push(d.env.Screens.History())
	case key.Matches(kmsg, components.Keys.Levels):
		if d.env.Progress.MultiLevel() {
			return d, router.Push(d.env.Screens.LevelSelect())
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	level := d.env.Level()
	if level == "" {
		return ""
	}
	cfg, _ := d.env.Catalog.Config(level)
	stats := d.env.Progress.CompletionStats(d.env.Ctx, level)
	next, hasNext := d.env.Progress.NextIncompleteLesson(d.env.Ctx, level)

	inner := min(width-4, 96)
	var lines []string
	cursorLine := 0
	item := 0
	add := func(s string) { lines = append(lines, strings.Split(s, "\n")...) }
	mark := func() bool {
		sel := item == d.cursor
		if sel {
			cursorLine = len(lines)
		}
		item++
		return sel
	}

	add(theme.Badge.Render(cfg.Badge()+" course") + "  " + theme.Subtitle.Render(cfg.Description))
	add("")
	add(components.NewProgressBar("Overall", stats.Percent, true, inner).View())
	add(theme.Body.Render(fmt.Sprintf("Completed %d / %d lessons", stats.CompletedCount, stats.TotalCount)) +
		"   " + theme.Heading.Render(statusLine(stats)))
	add("")

	if hasNext {
		sel := mark()
		body := theme.Heading.Render("Next lesson") + "\n" +
			theme.Selected.Render(fmt.Sprintf("Lesson %d: %s", next.Lesson.Number, next.Lesson.Title)) + "\n" +
			theme.Body.Width(inner-6).Render(next.Lesson.Description) + "\n" +
			theme.Subtitle.Render("⏱ "+next.Lesson.Duration) + "   " +
			theme.ButtonActive.Render("▶ Start learning")
		style := theme.Card
		if sel {
			style = theme.ActiveCard
		}
		add(style.Width(inner).Render(body))
		add("")
	} else if stats.TotalCount > 0 {
		nextName := ""
		if nl, ok := level.Next(); ok && d.env.Progress.MultiLevel() {
			if nc, ok := d.env.Catalog.Config(nl); ok {
				nextName = nc.Name
			}
		}
		add(theme.ActiveCard.Width(inner).Render(completionMessage(cfg, stats, nextName)))
		add("")
	}

	unit := level.UnitLabel()
	add(theme.Title.Render("Progress by " + strings.ToLower(unit)))
	for _, phase := range d.env.Catalog.PhasesByLevel(level) {
		ps := d.env.Progress.PhaseStats(d.env.Ctx, phase.ID, level)
		head := fmt.Sprintf("%s %d  %s", unit, phase.ID, phase.Title)
		if ps.Total > 0 && ps.Completed == ps.Total {
			head = theme.Done.Render("✓ " + head)
		} else {
			head = theme.Selected.Render(head)
		}
		add("")
		add(head + "  " + theme.Subtitle.Render(fmt.Sprintf("%d/%d · %s", ps.Completed, ps.Total, phase.Duration)))
		add(components.NewProgressBar("", ps.Percent, true, inner/2).View())
		for _, lesson := range phase.Lessons {
			sel := mark()
			add(d.lessonLine(lesson, sel, inner))
		}
	}

	// Scroll so the cursor stays visible.
	start := 0
	if cursorLine >= height-1 {
		start = cursorLine - height/2
	}
	end := min(start+height, len(lines))
	start = max(0, min(start, end))

	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines[start:end], "\n"))
}

func (d *DashboardScreen) lessonLine(lesson catalog.Lesson, selected bool, width int) string {
	icon := theme.Subtitle.Render("○")
	if d.env.Progress.IsLessonCompleted(d.env.Ctx, lesson.ID) {
		icon = theme.Done.Render("✓")
	}
	prefix := "  "
	if selected {
		prefix = "▸ "
	}
	title := layout.Truncate(fmt.Sprintf("L%d: %s", lesson.Number, lesson.Title), width-20)
	style := theme.Unselected
	if selected {
		style = theme.Selected
	}
	line := prefix + icon + " " + style.Render(title) + "  " + theme.Subtitle.Render(lesson.Duration)
	if lesson.Skippable {
		line += "  " + theme.Hint.Render("(review)")
	}
	return line
}

// statusLine summarizes where the learner stands.
func statusLine(s progress.Stats) string {
	switch {
	case s.TotalCount > 0 && s.CompletedCount == s.TotalCount:
		return "Finished! Congratulations"
	case s.CompletedCount == 0:
		return "Let's get started"
	default:
		return "Keep it up"
	}
}

// completionMessage congratulates the learner. nextLevel names the level
// to suggest next; empty hides the suggestion.
func completionMessage(cfg catalog.LevelConfig, s progress.Stats, nextLevel string) string {
	msg := theme.Correct.Render(fmt.Sprintf("🎉 You finished the %s course!", cfg.Name)) + "\n" +
		theme.Body.Render(fmt.Sprintf("All %d lessons are complete.", s.TotalCount))
	if nextLevel != "" {
		msg += "\n" + theme.Hint.Render(fmt.Sprintf("Ready for more? Press L to move up to %s.", nextLevel))
	}
	return msg
}
