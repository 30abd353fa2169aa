// Package landing implements the landing page: one batch of random
// recipes fetched on entry and rendered as cards.
package landing

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/nav"
)

// NoIngredients is shown when a recipe has no ingredient description.
const NoIngredients = "Ingredients not available"

// cardHeight is the number of lines one card occupies, spacing included.
const cardHeight = 4

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Bold(true)

	selectedTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0")).
				Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	ingredientsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

var lastID int64

type loadedMsg struct {
	id      int
	seq     uint64
	recipes []domain.RecipeSummary
	err     error
}

// Option configures the Model.
type Option func(*Model)

// WithCount sets the batch size requested on load.
func WithCount(n int) Option {
	return func(m *Model) { m.count = n }
}

// WithPreviewLength sets the ingredient description cut-off.
func WithPreviewLength(n int) Option {
	return func(m *Model) { m.previewLen = n }
}

// WithFallbackImage sets the image path shown when a recipe has none.
func WithFallbackImage(path string) Option {
	return func(m *Model) { m.fallback = path }
}

// WithContext sets the context fetches run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// Model is the landing page.
type Model struct {
	id         int
	api        domain.RecipeAPI
	log        *logger.Logger
	ctx        context.Context
	count      int
	previewLen int
	fallback   string
	keys       keyMap

	seq      uint64
	loading  bool
	recipes  []domain.RecipeSummary
	selected int

	height int // 0 means unbounded
	offset int // first visible line
}

// New creates an empty landing page. Call Init to load it.
func New(api domain.RecipeAPI, log *logger.Logger, opts ...Option) *Model {
	m := &Model{
		id:         int(atomic.AddInt64(&lastID, 1)),
		api:        api,
		log:        log,
		ctx:        context.Background(),
		count:      10,
		previewLen: 50,
		fallback:   "default-image.jpg",
		keys:       defaultKeys(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Init issues the initial fetch.
func (m *Model) Init() tea.Cmd { return m.Load() }

// Load fetches a fresh batch. Replies to earlier loads are discarded.
func (m *Model) Load() tea.Cmd {
	m.seq++
	m.loading = true
	id, seq, api, ctx, n := m.id, m.seq, m.api, m.ctx, m.count
	m.log.Debug("landing: fetching %d random recipes (seq=%d)", n, seq)

	return func() tea.Msg {
		recipes, err := api.Random(ctx, n)
		return loadedMsg{id: id, seq: seq, recipes: recipes, err: err}
	}
}

// Loading reports whether a fetch is outstanding.
func (m *Model) Loading() bool { return m.loading }

// Recipes returns the current collection.
func (m *Model) Recipes() []domain.RecipeSummary { return m.recipes }

// Selected returns the highlighted card index.
func (m *Model) Selected() int { return m.selected }

// SetHeight bounds the number of lines View renders. Zero disables
// clipping.
func (m *Model) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	m.height = h
	m.scroll()
}

// scroll keeps the selected card inside the visible window.
func (m *Model) scroll() {
	if m.height == 0 {
		m.offset = 0
		return
	}
	top := m.selected * cardHeight
	bottom := top + cardHeight - 1
	if top < m.offset {
		m.offset = top
	}
	if bottom >= m.offset+m.height {
		m.offset = bottom - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Update handles fetch replies and navigation keys.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.id != m.id || msg.seq != m.seq {
			return nil
		}
		m.loading = false
		m.selected = 0
		m.offset = 0
		if msg.err != nil {
			// No user-visible error on this page.
			m.log.Error("landing: loading random recipes: %v", msg.err)
			m.recipes = nil
			return nil
		}
		m.recipes = msg.recipes
		m.log.Info("landing: loaded %d recipes", len(m.recipes))
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
				m.scroll()
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.recipes)-1 {
				m.selected++
				m.scroll()
			}
		case key.Matches(msg, m.keys.Open):
			return m.Open(m.selected)
		case key.Matches(msg, m.keys.Reload):
			return m.Load()
		}
	}
	return nil
}

// Open emits a navigation message for card i, if it exists.
func (m *Model) Open(i int) tea.Cmd {
	if i < 0 || i >= len(m.recipes) {
		return nil
	}
	m.selected = i
	m.scroll()
	id := m.recipes[i].ID
	return func() tea.Msg { return nav.OpenRecipeMsg{ID: id} }
}

// IndexAt maps a line of the rendered view to a card index.
func (m *Model) IndexAt(line int) (int, bool) {
	if line < 0 || len(m.recipes) == 0 {
		return 0, false
	}
	if m.height > 0 && line >= m.height {
		return 0, false
	}
	i := (line + m.offset) / cardHeight
	if i >= len(m.recipes) {
		return 0, false
	}
	return i, true
}

// View renders the cards.
func (m *Model) View() string {
	if len(m.recipes) == 0 {
		if m.loading {
			return metaStyle.Render("Fetching recipes...")
		}
		return ""
	}

	var b strings.Builder
	for i, r := range m.recipes {
		ts := titleStyle
		marker := "  "
		if i == m.selected {
			ts = selectedTitleStyle
			marker = "> "
		}
		b.WriteString(ts.Render(marker + r.Title))
		b.WriteByte('\n')
		b.WriteString(metaStyle.Render(fmt.Sprintf("  image: %s", ImagePath(r.Image, m.fallback))))
		b.WriteByte('\n')
		b.WriteString(ingredientsStyle.Render("  " + Preview(r.Ingredients, m.previewLen)))
		b.WriteByte('\n')
		if i < len(m.recipes)-1 {
			b.WriteByte('\n')
		}
	}
	out := strings.TrimSuffix(b.String(), "\n")
	if m.height == 0 {
		return out
	}
	lines := strings.Split(out, "\n")
	end := m.offset + m.height
	if end > len(lines) {
		end = len(lines)
	}
	if m.offset >= end {
		return ""
	}
	return strings.Join(lines[m.offset:end], "\n")
}

// ── Helpers ──────────────────────────────────────────────────────

// Preview shortens an ingredient description: strings of n or more
// characters become their first n characters followed by "...".
// Shorter strings are unchanged; an empty string yields NoIngredients.
func Preview(s string, n int) string {
	if s == "" {
		return NoIngredients
	}
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[:n]) + "..."
}

// ImagePath returns src, or fallback when src is empty.
func ImagePath(src, fallback string) string {
	if src == "" {
		return fallback
	}
	return src
}
