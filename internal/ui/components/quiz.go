package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/quiz"
	"github.com/abhisek/courseway/internal/ui/theme"
)

// QuizView is the interactive multiple-choice quiz shown under a section.
type QuizView struct {
	attempt *quiz.Attempt
	cursor  int
	result  quiz.Result
}

// NewQuizView starts a fresh attempt at q.
func NewQuizView(q catalog.Quiz) QuizView {
	return QuizView{attempt: quiz.NewAttempt(q)}
}

// Submitted reports whether the current attempt has been checked.
func (m QuizView) Submitted() bool {
	return m.attempt.Submitted()
}

// Result returns the outcome once submitted.
func (m QuizView) Result() (quiz.Result, bool) {
	return m.attempt.Result()
}

// Update handles option navigation, submission and retry.
func (m QuizView) Update(msg tea.Msg) (QuizView, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.attempt.Submitted() {
		if key.Matches(kmsg, Keys.Retry) {
			m.attempt.Reset()
			m.result = quiz.Result{}
		}
		return m, nil
	}

	n := len(m.attempt.Quiz().Options)
	switch {
	case key.Matches(kmsg, Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(kmsg, Keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(kmsg, Keys.Enter):
		if err := m.attempt.Select(m.cursor); err != nil {
			return m, nil
		}
		if res, err := m.attempt.Submit(); err == nil {
			m.result = res
		}
	default:
		// Digits pick an option directly.
		s := kmsg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < n {
				m.cursor = i
			}
		}
	}
	return m, nil
}

// View renders the question, options and, once submitted, the verdict.
func (m QuizView) View(width int) string {
	q := m.attempt.Quiz()
	var b strings.Builder

	b.WriteString(theme.Heading.Render("? Check your understanding") + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(q.Question) + "\n\n")

	submitted := m.attempt.Submitted()
	for i, opt := range q.Options {
		prefix := "  "
		if i == m.cursor && !submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, quiz.OptionLabel(i), opt)

		switch {
		case submitted && i == m.result.CorrectIndex:
			line = theme.Correct.Render(line + "  ✓")
		case submitted && i == m.result.ChosenIndex:
			line = theme.Incorrect.Render(line + "  ✗")
		case submitted:
			line = theme.Subtitle.Render(line)
		case i == m.cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if !submitted {
		b.WriteString("\n" + theme.Hint.Render("enter to check your answer"))
		return b.String()
	}

	b.WriteString("\n")
	if m.result.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}
	b.WriteString("\n" + theme.Body.Width(width).Render(m.result.Explanation) + "\n")
	b.WriteString("\n" + theme.Hint.Render("r to try again"))
	return b.String()
}
