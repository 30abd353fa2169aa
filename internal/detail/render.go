package detail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/plato/internal/domain"
)

// NoInstructions is shown when a recipe has no analyzed steps.
const NoInstructions = "No instructions available."

var (
	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	backStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true).
			MarginTop(1)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))
)

// Render draws the page: a back link above the recipe body.
func Render(d *domain.RecipeDetail, imageBase string, width int) string {
	return backStyle.Render("← Back (esc)") + "\n\n" + RenderBody(d, imageBase, width)
}

// RenderBody draws the recipe header followed by its ingredients and steps.
// Long lines wrap at width.
func RenderBody(d *domain.RecipeDetail, imageBase string, width int) string {
	wrap := textStyle.Width(width - 4)

	var b strings.Builder
	if d.Image != "" {
		b.WriteString(dimStyle.Render("image: " + d.Image))
		b.WriteByte('\n')
	}
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteByte('\n')
	b.WriteString(textStyle.Render(fmt.Sprintf("Ready in minutes: %d", d.ReadyInMinutes)))
	if d.Servings > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ·  Servings: %d", d.Servings)))
	}
	b.WriteByte('\n')
	if d.Summary != "" {
		b.WriteByte('\n')
		b.WriteString(wrap.Render(d.Summary))
		b.WriteByte('\n')
	}

	b.WriteString(sectionStyle.Render("Ingredients"))
	b.WriteByte('\n')
	for _, ing := range d.Ingredients {
		b.WriteString(textStyle.Render("  • " + IngredientLine(ing)))
		b.WriteByte('\n')
		if ing.Image != "" {
			b.WriteString(dimStyle.Render("    " + imageBase + ing.Image))
			b.WriteByte('\n')
		}
	}

	b.WriteString(sectionStyle.Render("Instructions"))
	b.WriteByte('\n')
	if len(d.Instructions) == 0 {
		b.WriteString(dimStyle.Render("  " + NoInstructions))
		b.WriteByte('\n')
	}
	for i, st := range d.Instructions {
		b.WriteString(wrap.Render(fmt.Sprintf("  %d. %s", i+1, st.Text)))
		b.WriteByte('\n')
	}
	return b.String()
}

// IngredientLine formats "<amount> <unit> - <name>", omitting an empty unit.
func IngredientLine(ing domain.Ingredient) string {
	qty := strconv.FormatFloat(ing.Amount, 'f', -1, 64)
	if ing.Unit != "" {
		qty += " " + ing.Unit
	}
	return qty + " - " + ing.Name
}
