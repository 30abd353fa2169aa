package landing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/nav"
)

type fakeAPI struct {
	mu      sync.Mutex
	batches [][]domain.RecipeSummary
	err     error
	numbers []int
}

func (f *fakeAPI) Random(_ context.Context, number int) ([]domain.RecipeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.numbers = append(f.numbers, number)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeAPI) Search(context.Context, string, int) (*domain.SearchResultSet, error) {
	return nil, nil
}

func (f *fakeAPI) Information(context.Context, int) (*domain.RecipeDetail, error) {
	return nil, domain.ErrNotFound
}

func newModel(api *fakeAPI) *Model {
	return New(api, logger.New(logger.LevelOff, nil))
}

func TestInitFetchesOneBatchOfTen(t *testing.T) {
	api := &fakeAPI{batches: [][]domain.RecipeSummary{{
		{ID: 1, Title: "Ramen", Image: "ramen.jpg", Ingredients: "noodles, broth"},
		{ID: 2, Title: "Bibimbap"},
	}}}
	m := newModel(api)

	cmd := m.Init()
	if !m.Loading() {
		t.Fatal("expected loading after Init")
	}
	m.Update(cmd())

	if len(api.numbers) != 1 || api.numbers[0] != 10 {
		t.Fatalf("expected a single fetch of 10, got %v", api.numbers)
	}
	if m.Loading() || len(m.Recipes()) != 2 {
		t.Fatalf("expected 2 recipes loaded, got %d (loading=%v)", len(m.Recipes()), m.Loading())
	}

	out := m.View()
	for _, want := range []string{"Ramen", "ramen.jpg", "noodles, broth", "Bibimbap", "default-image.jpg", NoIngredients} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in view:\n%s", want, out)
		}
	}
}

func TestFailureLeavesCollectionEmpty(t *testing.T) {
	api := &fakeAPI{err: &domain.StatusError{Code: 502, Status: "502 Bad Gateway"}}
	m := newModel(api)
	m.Update(m.Init()())

	if len(m.Recipes()) != 0 {
		t.Fatalf("expected empty collection, got %d", len(m.Recipes()))
	}
	if m.Loading() {
		t.Fatal("expected loading to end on failure")
	}
	if out := m.View(); strings.Contains(strings.ToLower(out), "fail") || strings.Contains(out, "502") {
		t.Fatalf("landing must not surface the error, got %q", out)
	}
}

func TestReloadDiscardsStaleBatch(t *testing.T) {
	api := &fakeAPI{batches: [][]domain.RecipeSummary{
		{{ID: 1, Title: "Old"}},
		{{ID: 2, Title: "New"}},
	}}
	m := newModel(api)

	first := m.Init()
	second := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if second == nil {
		t.Fatal("expected reload command")
	}

	oldMsg := first()
	newMsg := second()
	m.Update(newMsg)
	m.Update(oldMsg)

	if got := m.Recipes(); len(got) != 1 || got[0].Title != "New" {
		t.Fatalf("expected only the latest batch, got %+v", got)
	}
}

func TestOpenAndIndexAt(t *testing.T) {
	api := &fakeAPI{batches: [][]domain.RecipeSummary{{{ID: 5, Title: "A"}, {ID: 6, Title: "B"}}}}
	m := newModel(api)
	m.Update(m.Init()())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := cmd().(nav.OpenRecipeMsg); !ok || msg.ID != 6 {
		t.Fatalf("expected OpenRecipeMsg{6}, got %#v", msg)
	}

	if i, ok := m.IndexAt(cardHeight + 1); !ok || i != 1 {
		t.Fatalf("IndexAt = %d,%v; want 1,true", i, ok)
	}
	if _, ok := m.IndexAt(cardHeight * 2); ok {
		t.Fatal("expected no card below the list")
	}
	if m.Open(9) != nil {
		t.Fatal("expected nil command for out-of-range card")
	}
}

func TestPreview(t *testing.T) {
	exactly50 := strings.Repeat("a", 50)
	long := strings.Repeat("b", 80)
	runes := strings.Repeat("é", 60)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", NoIngredients},
		{"short", "salt, pepper", "salt, pepper"},
		{"49 chars", strings.Repeat("c", 49), strings.Repeat("c", 49)},
		{"exactly 50", exactly50, exactly50 + "..."},
		{"long", long, strings.Repeat("b", 50) + "..."},
		{"multibyte", runes, strings.Repeat("é", 50) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in, 50); got != tt.want {
				t.Fatalf("Preview = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImagePath(t *testing.T) {
	if got := ImagePath("", "default-image.jpg"); got != "default-image.jpg" {
		t.Fatalf("got %q", got)
	}
	if got := ImagePath("x.png", "default-image.jpg"); got != "x.png" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadErrorIsLoggedNotReturned(t *testing.T) {
	api := &fakeAPI{err: errors.New("dial tcp: refused")}
	m := newModel(api)
	if cmd := m.Update(m.Init()()); cmd != nil {
		t.Fatal("failure must not schedule follow-up work")
	}
}

func TestSetHeightKeepsSelectionVisible(t *testing.T) {
	api := &fakeAPI{batches: [][]domain.RecipeSummary{{
		{ID: 1, Title: "First"}, {ID: 2, Title: "Second"}, {ID: 3, Title: "Third"},
	}}}
	m := newModel(api)
	m.Update(m.Init()())
	m.SetHeight(cardHeight)

	if out := m.View(); !strings.Contains(out, "First") || strings.Contains(out, "Second") {
		t.Fatalf("expected only the first card, got:\n%s", out)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	out := m.View()
	if !strings.Contains(out, "Third") || strings.Contains(out, "First") {
		t.Fatalf("expected the third card in view, got:\n%s", out)
	}
	if i, ok := m.IndexAt(0); !ok || i != 2 {
		t.Fatalf("IndexAt(0) = %d,%v; want 2,true", i, ok)
	}
	if _, ok := m.IndexAt(cardHeight); ok {
		t.Fatal("expected no card below the window")
	}
}
