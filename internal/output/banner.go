package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Greeting is the welcome message shown before inspection.
const Greeting = "Welcome to the JavaScript project assistant!"

var (
	bannerTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7DF1E"))
	bannerBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 2)
)

// Banner renders msg inside a rounded box.
func Banner(msg string) string {
	return bannerBox.Render(bannerTitle.Render(msg))
}
