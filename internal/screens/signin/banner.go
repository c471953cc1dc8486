package signin

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnboard/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗ █████╗ ██████╗ ███╗   ██╗██████╗  ██████╗  █████╗ ██████╗ ██████╗
 ██║     ██╔════╝██╔══██╗██╔══██╗████╗  ██║██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
 ██║     █████╗  ███████║██████╔╝██╔██╗ ██║██████╔╝██║   ██║███████║██████╔╝██║  ██║
 ██║     ██╔══╝  ██╔══██║██╔══██╗██║╚██╗██║██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
 ███████╗███████╗██║  ██║██║  ██║██║ ╚████║██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
 ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "L E A R N B O A R D"

// bannerMinWidth is the narrowest terminal that fits the full banner.
const bannerMinWidth = 88

// RenderBanner returns the banner in the primary colour, falling back to a
// spaced word on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
