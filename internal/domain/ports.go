package domain

import "context"

// RecipeAPI provides recipes. The production implementation talks to the
// Plato HTTP API; an in-memory implementation backs tests and demo mode.
//
// Every method is a single idempotent read with no retry. Implementations
// must be safe to call from multiple goroutines.
type RecipeAPI interface {
	Random(ctx context.Context, number int) ([]RecipeSummary, error)
	Search(ctx context.Context, query string, number int) (*SearchResultSet, error)
	Information(ctx context.Context, id int) (*RecipeDetail, error)
}
