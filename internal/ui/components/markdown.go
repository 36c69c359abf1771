package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/ui/theme"
)

var (
	codeStyle  = lipgloss.NewStyle().Foreground(theme.Secondary)
	quoteStyle = lipgloss.NewStyle().Foreground(theme.Accent).Italic(true)
)

// RenderMarkdown renders the small subset of Markdown used in lesson
// content: headings, bullet and numbered lists, block quotes, fenced code
// and bold markers. Everything else is wrapped as plain text.
func RenderMarkdown(src string, width int) string {
	width = max(width, 10)
	var out []string
	inCode := false

	for _, line := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, codeStyle.Render("  "+line))
			continue
		}

		switch {
		case trimmed == "":
			out = append(out, "")
		case strings.HasPrefix(trimmed, "### "):
			out = append(out, theme.Heading.Render(stripBold(trimmed[4:])))
		case strings.HasPrefix(trimmed, "## "):
			out = append(out, theme.Title.Render(stripBold(trimmed[3:])))
		case strings.HasPrefix(trimmed, "# "):
			out = append(out, theme.Title.Underline(true).Render(stripBold(trimmed[2:])))
		case strings.HasPrefix(trimmed, "> "):
			out = append(out, quoteStyle.Width(width).Render("│ "+stripBold(trimmed[2:])))
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			out = append(out, theme.Body.Width(width).Render("  • "+stripBold(trimmed[2:])))
		default:
			out = append(out, theme.Body.Width(width).Render(stripBold(line)))
		}
	}
	return strings.Join(out, "\n")
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
