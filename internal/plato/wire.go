package plato

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hammamikhairi/plato/internal/domain"
)

// ── Wire types ───────────────────────────────────────────────────
// Field names follow the recipe-information payloads served under
// /plato/recipes. Unknown fields are ignored.

type recipeJSON struct {
	ID                   int                  `json:"id"`
	Title                string               `json:"title"`
	Image                string               `json:"image"`
	Ingredients          string               `json:"ingredients"`
	ReadyInMinutes       int                  `json:"readyInMinutes"`
	Servings             float64              `json:"servings"`
	Summary              string               `json:"summary"`
	ExtendedIngredients  []ingredientJSON     `json:"extendedIngredients"`
	AnalyzedInstructions []instructionSetJSON `json:"analyzedInstructions"`
}

type ingredientJSON struct {
	ID     int     `json:"id"`
	Image  string  `json:"image"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type instructionSetJSON struct {
	Name  string     `json:"name"`
	Steps []stepJSON `json:"steps"`
}

type stepJSON struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type randomResponse struct {
	Recipes []recipeJSON `json:"recipes"`
}

type searchResponse struct {
	Results      []recipeJSON `json:"results"`
	TotalResults int          `json:"totalResults"`
}

// ── Conversion ───────────────────────────────────────────────────

// textPolicy strips every tag; recipe summaries and steps arrive as HTML
// fragments.
var textPolicy = bluemonday.StrictPolicy()

// plainText strips tags, then undoes the entity escaping the policy applies
// to the remaining text so "Don't" survives as typed.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func (r recipeJSON) summary() domain.RecipeSummary {
	ingredients := r.Ingredients
	if ingredients == "" && len(r.ExtendedIngredients) > 0 {
		names := make([]string, 0, len(r.ExtendedIngredients))
		for _, ing := range r.ExtendedIngredients {
			if ing.Name != "" {
				names = append(names, ing.Name)
			}
		}
		ingredients = strings.Join(names, ", ")
	}
	return domain.RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		Image:       r.Image,
		Ingredients: ingredients,
	}
}

func (r recipeJSON) detail() *domain.RecipeDetail {
	d := &domain.RecipeDetail{
		ID:             r.ID,
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       int(r.Servings),
		Summary:        plainText(r.Summary),
		Ingredients:    make([]domain.Ingredient, 0, len(r.ExtendedIngredients)),
	}
	for _, ing := range r.ExtendedIngredients {
		d.Ingredients = append(d.Ingredients, domain.Ingredient{
			ID:     ing.ID,
			Image:  ing.Image,
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	// Flatten every instruction set, keeping the server's step numbers.
	for _, set := range r.AnalyzedInstructions {
		for _, st := range set.Steps {
			d.Instructions = append(d.Instructions, domain.Step{
				Number: st.Number,
				Text:   plainText(st.Step),
			})
		}
	}
	return d
}

func summaries(in []recipeJSON) []domain.RecipeSummary {
	out := make([]domain.RecipeSummary, 0, len(in))
	for _, r := range in {
		out = append(out, r.summary())
	}
	return out
}
