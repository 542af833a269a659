package tui

import "github.com/charmbracelet/lipgloss"

// Palette helpers. AdaptiveColor keeps the menu readable on both light and
// dark terminal backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue
	colorMuted  lipgloss.TerminalColor = ac("240", "245")
	colorError  lipgloss.TerminalColor = ac("160", "203") // red
	colorOK     lipgloss.TerminalColor = ac("28", "78")   // green
)

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleOK() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorOK)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true)
}
