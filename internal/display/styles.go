package display

import "github.com/charmbracelet/lipgloss"

// ── Styles ───────────────────────────────────────────────────────

var (
	brandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true).
			PaddingRight(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	// Help footer, dimmed zinc.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// BannerStyle is muted slate for the banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)
