package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art and a tagline centred for the current
// terminal width. To change the art just replace banner.txt.
func RenderBanner(tagline string) string {
	width := termWidth()

	art := strings.TrimRight(bannerRaw, "\n")
	block := BannerStyle.Render(art)
	if tagline != "" {
		block = lipgloss.JoinVertical(lipgloss.Center, block, "", labelStyle.Render(tagline))
	}
	if lipgloss.Width(block) >= width {
		return block + "\n"
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
