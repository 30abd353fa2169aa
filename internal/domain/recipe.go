// Package domain defines the core types and interfaces for the Plato client.
// All other packages depend on domain; domain depends on nothing.
package domain

// RecipeSummary is a lightweight view of a recipe, as returned by the
// random and search endpoints.
type RecipeSummary struct {
	ID    int
	Title string
	Image string // empty when the source has none

	// Ingredients is a free-text ingredient description used by the
	// landing cards. Empty when unavailable.
	Ingredients string
}

// SearchResultSet is one page of search results. It is replaced wholesale
// on every successful search.
type SearchResultSet struct {
	TotalResults int
	Results      []RecipeSummary
}

// RecipeDetail is the full representation of a single recipe.
type RecipeDetail struct {
	ID             int
	Title          string
	Image          string
	ReadyInMinutes int
	Servings       int
	Summary        string // plain text, HTML stripped
	Ingredients    []Ingredient
	Instructions   []Step
}

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	ID     int
	Image  string // file name relative to the ingredient image CDN
	Name   string
	Amount float64
	Unit   string
}

// Step is a single instruction. Number is the display order.
type Step struct {
	Number int
	Text   string
}
