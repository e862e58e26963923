package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorInk     = lipgloss.Color("#f5f5f4")
	colorMuted   = lipgloss.Color("#78716c")
	colorAccent  = lipgloss.Color("#facc15")
	colorOK      = lipgloss.Color("#22c55e")
	colorWarn    = lipgloss.Color("#f59e0b")
	colorError   = lipgloss.Color("#ef4444")
	colorBorder  = lipgloss.Color("#44403c")
	colorFocused = lipgloss.Color("#facc15")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorInk)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorFocused).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(colorMuted).Underline(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	activePanelStyle = panelStyle.BorderForeground(colorFocused)
)

// swatch renders two cells in the given hex color
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

func clampWidth(w, max int) int {
	if w > max {
		return max
	}
	if w < 20 {
		return 20
	}
	return w
}
