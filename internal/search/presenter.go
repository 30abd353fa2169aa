package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hammamikhairi/plato/internal/domain"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))
)

// View is the snapshot the presenter renders.
type View struct {
	Enabled  bool
	Result   *domain.SearchResultSet
	Err      string
	Selected int
	Width    int
}

// Render draws the result dropdown. It returns "" when there is nothing to
// show: search disabled, or no result set and no error.
func Render(v View) string {
	if !v.Enabled {
		return ""
	}
	if v.Err != "" {
		return errorStyle.Render(v.Err)
	}
	if v.Result == nil {
		return ""
	}

	lines := make([]string, 0, len(v.Result.Results)+1)
	lines = append(lines, totalStyle.Render(fmt.Sprintf("Total Results: %d", v.Result.TotalResults)))
	for i, r := range v.Result.Results {
		title := fit(r.Title, v.Width-2)
		if i == v.Selected {
			lines = append(lines, selectedItemStyle.Render("> "+title))
		} else {
			lines = append(lines, itemStyle.Render("  "+title))
		}
	}
	return strings.Join(lines, "\n")
}

// fit truncates s to at most w terminal cells.
func fit(s string, w int) string {
	if w <= 0 {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}
