package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courseway/internal/ui/theme"
)

const bannerArt = `┏━╸┏━┓╻ ╻┏━┓┏━┓┏━╸╻ ╻┏━┓╻ ╻
┃  ┃ ┃┃ ┃┣┳┛┗━┓┣╸ ┃╻┃┣━┫┗┳┛
┗━╸┗━┛┗━┛╹┗╸┗━┛┗━╸┗┻┛╹ ╹ ╹ `

const bannerCompact = "COURSEWAY"

// RenderBanner returns the Courseway wordmark in the primary color, or a
// plain fallback when the terminal is too narrow for it.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 32 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
