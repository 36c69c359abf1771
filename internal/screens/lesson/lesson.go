package lesson

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/router"
	"github.com/abhisek/courseway/internal/screen"
	"github.com/abhisek/courseway/internal/screens/message"
	"github.com/abhisek/courseway/internal/ui/components"
	"github.com/abhisek/courseway/internal/ui/layout"
	"github.com/abhisek/courseway/internal/ui/theme"
)

const sidebarWidth = 30

// LessonScreen plays one lesson section by section.
type LessonScreen struct {
	env      *screen.Env
	lessonID string
	ref      catalog.LessonRef
	err      error

	section int
	quizzes map[int]components.QuizView
	scroll  int
	status  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New resolves lessonID against the learner's level. When no level is
// selected yet, the lesson's own level is adopted.
func New(env *screen.Env, lessonID string) *LessonScreen {
	ref, err := env.Progress.ResolveLesson(env.Ctx, lessonID)
	if err != nil {
		env.Log.Info("lesson not available", zap.String("lesson", lessonID), zap.Error(err))
	}
	return &LessonScreen{
		env:      env,
		lessonID: lessonID,
		ref:      ref,
		err:      err,
		quizzes:  make(map[int]components.QuizView),
	}
}

// Init redirects when the lesson cannot be shown.
func (l *LessonScreen) Init() tea.Cmd {
	switch {
	case l.err == nil:
		return nil
	case errors.Is(l.err, progress.ErrLevelNotSelected):
		return router.Replace(l.env.Screens.LevelSelect())
	default:
		return router.Replace(l.notFound())
	}
}

func (l *LessonScreen) notFound() screen.Screen {
	course := "this"
	if cfg, ok := l.env.Catalog.Config(l.env.Level()); ok {
		course = "the " + cfg.Badge()
	}
	return message.New(
		"Lesson not found",
		"Lesson not found",
		fmt.Sprintf("%q is not part of %s course.", l.lessonID, course),
		"Back to dashboard",
		l.env.Screens.Dashboard,
	)
}

func (l *LessonScreen) Title() string {
	if !l.ref.Valid() {
		return "Lesson"
	}
	return fmt.Sprintf("Lesson %d", l.ref.Lesson.Number)
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Section"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
	}
	if l.ref.Valid() && !l.completed() {
		hints = append(hints, layout.KeyHint{Key: "c", Description: "Complete"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "p/n", Description: "Prev/next lesson"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func (l *LessonScreen) completed() bool {
	return l.env.Progress.IsLessonCompleted(l.env.Ctx, l.lessonID)
}

func (l *LessonScreen) sections() []catalog.Section {
	if !l.ref.Valid() {
		return nil
	}
	return l.ref.Lesson.Sections
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.ref.Valid() {
		return l, nil
	}

	// An open quiz takes navigation and enter keys first.
	if q, ok := l.quiz(); ok && !key.Matches(kmsg, components.Keys.Left, components.Keys.Right, components.Keys.Back) {
		if key.Matches(kmsg, components.Keys.Up, components.Keys.Down, components.Keys.Enter, components.Keys.Retry) || isDigit(kmsg.String()) {
			q, cmd := q.Update(msg)
			l.quizzes[l.section] = q
			return l, cmd
		}
	}

	sections := l.sections()
	switch {
	case key.Matches(kmsg, components.Keys.Back):
		return l, router.Pop()
	case key.Matches(kmsg, components.Keys.Right):
		if l.section < len(sections)-1 {
			l.section++
			l.scroll = 0
		}
	case key.Matches(kmsg, components.Keys.Left):
		if l.section > 0 {
			l.section--
			l.scroll = 0
		}
	case key.Matches(kmsg, components.Keys.Up):
		l.scroll = max(0, l.scroll-1)
	case key.Matches(kmsg, components.Keys.Down):
		l.scroll++
	case key.Matches(kmsg, components.Keys.PageUp):
		l.scroll = max(0, l.scroll-10)
	case key.Matches(kmsg, components.Keys.PageDown):
		l.scroll += 10
	case key.Matches(kmsg, components.Keys.Complete):
		l.markComplete()
	case key.Matches(kmsg, components.Keys.Next):
		_, next, _ := l.env.Catalog.Neighbors(l.lessonID, l.ref.Level)
		if next.Valid() {
			return l, router.Replace(l.env.Screens.Lesson(next.Lesson.ID))
		}
		return l, router.Reset(l.env.Screens.Dashboard())
	case key.Matches(kmsg, components.Keys.Prev):
		prev, _, _ := l.env.Catalog.Neighbors(l.lessonID, l.ref.Level)
		if prev.Valid() {
			return l, router.Replace(l.env.Screens.Lesson(prev.Lesson.ID))
		}
	}
	return l, nil
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '1' && s[0] <= '9'
}

// quiz returns the quiz view of the current section, creating it on first use.
func (l *LessonScreen) quiz() (components.QuizView, bool) {
	sections := l.sections()
	if l.section >= len(sections) || sections[l.section].Quiz == nil {
		return components.QuizView{}, false
	}
	q, ok := l.quizzes[l.section]
	if !ok {
		q = components.NewQuizView(*sections[l.section].Quiz)
		l.quizzes[l.section] = q
	}
	return q, true
}

func (l *LessonScreen) markComplete() {
	if l.completed() {
		l.status = "Already completed."
		return
	}
	if _, err := l.env.Progress.MarkLessonComplete(l.env.Ctx, l.lessonID); err != nil {
		l.env.Log.Error("mark lesson complete", zap.String("lesson", l.lessonID), zap.Error(err))
		l.status = "Could not save progress: " + err.Error()
		return
	}
	l.status = "Lesson complete! Press n for the next lesson."
}

func (l *LessonScreen) View(width, height int) string {
	if !l.ref.Valid() {
		return ""
	}

	side := l.renderSidebar(height)
	mainWidth := width - lipgloss.Width(side) - 3
	main := l.renderMain(mainWidth, height)

	return lipgloss.JoinHorizontal(lipgloss.Top, side, " ", main)
}

func (l *LessonScreen) renderSidebar(height int) string {
	lesson, phase := l.ref.Lesson, l.ref.Phase
	unit := l.ref.Level.UnitLabel()

	var b strings.Builder
	b.WriteString(theme.Badge.Render(fmt.Sprintf("%s %d", unit, phase.ID)))
	if cfg, ok := l.env.Catalog.Config(l.ref.Level); ok {
		b.WriteString(" " + theme.Subtitle.Render(cfg.Badge()))
	}
	b.WriteString("\n" + theme.Selected.Render(layout.Truncate(lesson.Title, sidebarWidth-4)) + "\n\n")

	for i, s := range lesson.Sections {
		label := layout.Truncate(fmt.Sprintf("%d. %s", i+1, s.Title), sidebarWidth-8)
		if s.VideoRequired {
			label += " ▶"
		}
		if i == l.section {
			b.WriteString(theme.Selected.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+label) + "\n")
		}
	}

	b.WriteString("\n" + theme.Subtitle.Render("⏱ "+lesson.Duration) + "\n")
	if l.completed() {
		b.WriteString(theme.Done.Render("✓ Completed"))
	} else {
		b.WriteString(components.NewButton("Mark complete", components.Keys.Complete, true, nil).View())
	}

	return theme.Card.Width(sidebarWidth).Height(max(height-2, 0)).Render(b.String())
}

func (l *LessonScreen) renderMain(width, height int) string {
	lesson, phase := l.ref.Lesson, l.ref.Phase
	sections := lesson.Sections
	section := sections[l.section]
	unit := l.ref.Level.UnitLabel()

	var lines []string
	add := func(s string) { lines = append(lines, strings.Split(s, "\n")...) }

	add(theme.Subtitle.Render(fmt.Sprintf("Dashboard › %s %d › %s", unit, phase.ID, layout.Truncate(lesson.Title, width/2))))
	add(components.NewProgressBar(fmt.Sprintf("Section %d / %d", l.section+1, len(sections)),
		float64(l.section+1)*100/float64(len(sections)), false, width).View())
	add("")

	if l.section == 0 {
		add(theme.Badge.Render(fmt.Sprintf("%s %d - Lesson %d", unit, phase.ID, lesson.Number)))
		add(theme.Title.Render(lesson.Title))
		add(theme.Body.Width(width).Render(lesson.Description))
		if l.ref.Level == catalog.LevelBeginner {
			add(theme.Notice.Width(width).Render("▶ You can follow this lesson by watching the videos. No need to read every word."))
		}
		if len(lesson.Objectives) > 0 {
			add("")
			add(theme.Heading.Render("◎ Learning goals"))
			for _, o := range lesson.Objectives {
				add(theme.Done.Render("  ✓ ") + theme.Body.Render(o))
			}
		}
		add("")
	}

	if section.VideoRequired || section.VideoURL != "" {
		notice := "▶ Video: " + section.VideoURL
		if section.VideoRequired {
			notice += "\nWatch the video and follow along."
		}
		add(theme.Notice.Width(width).Render(notice))
		add("")
	}

	add(theme.Heading.Render("■ " + section.Title))
	add("")
	add(components.RenderMarkdown(section.Content, width))

	if q, ok := l.quiz(); ok {
		add("")
		add(theme.Card.Width(width).Render(q.View(width - 6)))
	}

	add("")
	add(l.renderNav(width))
	if l.status != "" {
		add(theme.Correct.Render(l.status))
	}

	// Clamp scrolling to the content.
	l.scroll = min(l.scroll, max(len(lines)-height, 0))
	end := min(l.scroll+height, len(lines))
	return strings.Join(lines[l.scroll:end], "\n")
}

func (l *LessonScreen) renderNav(width int) string {
	prev, next, _ := l.env.Catalog.Neighbors(l.lessonID, l.ref.Level)
	last := l.section == len(l.ref.Lesson.Sections)-1

	var buttons []string
	buttons = append(buttons, components.NewButton("Previous section", components.Keys.Left, l.section > 0, nil).View())
	if !last {
		buttons = append(buttons, components.NewButton("Next section", components.Keys.Right, true, nil).View())
	} else {
		if !l.completed() {
			buttons = append(buttons, components.NewButton("Complete", components.Keys.Complete, true, nil).View())
		}
		if next.Valid() {
			buttons = append(buttons, components.NewButton("Next lesson", components.Keys.Next, true, nil).View())
		} else {
			buttons = append(buttons, components.NewButton("Dashboard", components.Keys.Next, true, nil).View())
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(buttons, "  "))

	var foot []string
	if prev.Valid() {
		foot = append(foot, "‹ p "+layout.Truncate(prev.Lesson.Title, width/2-6))
	}
	if next.Valid() {
		foot = append(foot, layout.Truncate(next.Lesson.Title, width/2-6)+" n ›")
	}
	return row + "\n\n" + theme.Subtitle.Render(strings.Join(foot, "    "))
}
