package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan    = lipgloss.Color("#00D7FF")
	colorMagenta = lipgloss.Color("#FF2E88")
	colorYellow  = lipgloss.Color("#FFD700")
	colorGray    = lipgloss.Color("#888888")
	colorWhite   = lipgloss.Color("#FFFFFF")
	colorGreen   = lipgloss.Color("#00FF87")
)

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorMagenta).
			Bold(true).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

// Banner returns the CLI banner.
func Banner() string {
	art := "" +
		"▀█▀ █▀█ █▀▀ █▄ █ █▀▄ █▀ █▀▀ █▀█ █ █ ▀█▀\n" +
		" █  █▀▄ ██▄ █ ▀█ █▄▀ ▄█ █▄▄ █▄█ █▄█  █ "
	return logoStyle.Render(art) + "\n" + taglineStyle.Render("  short-form trends, creators and look-alike accounts") + "\n"
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Println(Banner())
}

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }
