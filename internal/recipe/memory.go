// Package recipe provides an in-memory recipe source. It backs the demo
// mode of the client and the tests of the views that consume recipes.
package recipe

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeAPI = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[int]*domain.RecipeDetail
	log     *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with built-in recipes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes: make(map[int]*domain.RecipeDetail),
		log:     log,
	}
	src.seed()
	return src
}

// Add inserts or replaces a recipe.
func (s *MemorySource) Add(r *domain.RecipeDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[r.ID] = r
}

// Random returns up to number recipes in random order.
func (s *MemorySource) Random(ctx context.Context, number int) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedLocked()
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if number < 0 {
		number = 0
	}
	if number < len(all) {
		all = all[:number]
	}
	s.log.Debug("random: returning %d of %d recipes", len(all), len(s.recipes))
	return all, nil
}

// Search returns recipes whose title or ingredients contain query,
// case-insensitively. TotalResults counts every match; Results holds at
// most number of them, ordered by title.
func (s *MemorySource) Search(ctx context.Context, query string, number int) (*domain.SearchResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)

	var matches []domain.RecipeSummary
	for _, r := range s.sortedLocked() {
		if s.matches(r, q) {
			matches = append(matches, r)
		}
	}

	out := &domain.SearchResultSet{TotalResults: len(matches), Results: matches}
	if number >= 0 && number < len(matches) {
		out.Results = matches[:number]
	}
	return out, nil
}

// Information returns a recipe by ID.
func (s *MemorySource) Information(ctx context.Context, id int) (*domain.RecipeDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %d", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (s *MemorySource) matches(r domain.RecipeSummary, query string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Ingredients), query)
}

// sortedLocked returns summaries of every recipe ordered by title.
func (s *MemorySource) sortedLocked() []domain.RecipeSummary {
	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, summarize(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func summarize(r *domain.RecipeDetail) domain.RecipeSummary {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return domain.RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		Image:       r.Image,
		Ingredients: strings.Join(names, ", "),
	}
}

// seed populates the source with built-in recipes.
func (s *MemorySource) seed() {
	recipes := []*domain.RecipeDetail{
		chickenAlfredo(),
		vegetableStirFry(),
		pastaCarbonara(),
	}
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d recipes", len(recipes))
}

func steps(texts ...string) []domain.Step {
	out := make([]domain.Step, len(texts))
	for i, t := range texts {
		out[i] = domain.Step{Number: i + 1, Text: t}
	}
	return out
}

func chickenAlfredo() *domain.RecipeDetail {
	return &domain.RecipeDetail{
		ID:             1001,
		Title:          "Chicken Alfredo",
		Image:          "chicken-alfredo.jpg",
		ReadyInMinutes: 40,
		Servings:       2,
		Summary:        "Creamy spaghetti alfredo with pan-seared chicken. Rich, indulgent, and not from a jar.",
		Ingredients: []domain.Ingredient{
			{ID: 11420420, Name: "spaghetti", Amount: 250, Unit: "g", Image: "spaghetti.jpg"},
			{ID: 5062, Name: "chicken breast", Amount: 2, Image: "chicken-breasts.png"},
			{ID: 1001056, Name: "creme fraiche", Amount: 1, Unit: "cup", Image: "sour-cream.jpg"},
			{ID: 1023, Name: "gruyere cheese", Amount: 1, Unit: "cup", Image: "gruyere.jpg"},
			{ID: 11215, Name: "garlic", Amount: 4, Unit: "cloves", Image: "garlic.png"},
			{ID: 4053, Name: "olive oil", Amount: 1, Unit: "tbsp", Image: "olive-oil.jpg"},
		},
		Instructions: steps(
			"Bring a large pot of salted water to a boil for the pasta.",
			"Season the chicken breasts with salt and pepper and pound them to even thickness.",
			"Sear the chicken in olive oil for about 6 minutes per side until golden and cooked through. Set aside to rest.",
			"Cook the spaghetti until al dente. Reserve a cup of pasta water before draining.",
			"In the same skillet, cook the garlic for about a minute, then stir in the creme fraiche and reduce for 3 minutes.",
			"Off the heat, stir in the gruyere until smooth, loosening with pasta water if needed.",
			"Toss the pasta in the sauce, top with sliced chicken and serve immediately.",
		),
	}
}

func vegetableStirFry() *domain.RecipeDetail {
	return &domain.RecipeDetail{
		ID:             1002,
		Title:          "Vegetable Stir Fry",
		Image:          "vegetable-stir-fry.jpg",
		ReadyInMinutes: 20,
		Servings:       2,
		Summary:        "Fast, crunchy, and customizable. The key is a screaming hot pan and not overcrowding it.",
		Ingredients: []domain.Ingredient{
			{ID: 10211821, Name: "bell pepper", Amount: 1, Image: "bell-pepper-orange.png"},
			{ID: 10011090, Name: "broccoli florets", Amount: 2, Unit: "cups", Image: "broccoli.jpg"},
			{ID: 11124, Name: "carrot", Amount: 1, Image: "sliced-carrot.png"},
			{ID: 11300, Name: "snap peas", Amount: 1, Unit: "cup", Image: "snow-peas.jpg"},
			{ID: 16124, Name: "soy sauce", Amount: 2, Unit: "tbsp", Image: "soy-sauce.jpg"},
			{ID: 4058, Name: "sesame oil", Amount: 1, Unit: "tbsp", Image: "sesame-oil.png"},
		},
		Instructions: steps(
			"Prep all vegetables before the pan goes on: slice the pepper, cut the broccoli small, julienne the carrot.",
			"Mix soy sauce and sesame oil with 2 tablespoons of water. Set aside.",
			"Heat a wok on high until it just starts to smoke, then add oil.",
			"Stir-fry broccoli and carrot for 2 minutes, then pepper and snap peas for 2 more. Let things char.",
			"Pour the sauce over everything, toss to coat and serve immediately.",
		),
	}
}

func pastaCarbonara() *domain.RecipeDetail {
	return &domain.RecipeDetail{
		ID:             1003,
		Title:          "Pasta Carbonara",
		Image:          "pasta-carbonara.jpg",
		ReadyInMinutes: 25,
		Servings:       2,
		Summary:        "Eggs, pecorino, guanciale and pepper. No cream.",
		Ingredients: []domain.Ingredient{
			{ID: 11420420, Name: "spaghetti", Amount: 200, Unit: "g", Image: "spaghetti.jpg"},
			{ID: 10410123, Name: "guanciale", Amount: 100, Unit: "g", Image: "raw-bacon.png"},
			{ID: 1123, Name: "eggs", Amount: 3, Image: "egg.png"},
			{ID: 1033, Name: "pecorino romano", Amount: 50, Unit: "g", Image: "parmesan.jpg"},
		},
		Instructions: steps(
			"Cook the spaghetti in well salted water.",
			"Render the guanciale in a dry pan until crisp.",
			"Whisk eggs with the grated pecorino and plenty of black pepper.",
			"Off the heat, toss pasta with guanciale, then the egg mixture, adding pasta water until glossy.",
		),
	}
}
