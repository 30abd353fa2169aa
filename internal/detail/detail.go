// Package detail implements the recipe detail page. It fetches the full
// recipe for the identifier it is given and re-fetches whenever that
// identifier changes.
package detail

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/nav"
)

// LoadingText is shown until the recipe arrives.
const LoadingText = "Loading..."

var lastID int64

type loadedMsg struct {
	id     int
	seq    uint64
	recipe int
	detail *domain.RecipeDetail
	err    error
}

// Option configures the Model.
type Option func(*Model)

// WithIngredientImageBase sets the URL prefix for ingredient images.
func WithIngredientImageBase(base string) Option {
	return func(m *Model) { m.imageBase = base }
}

// WithContext sets the context fetches run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// Model is the detail page.
type Model struct {
	id        int
	api       domain.RecipeAPI
	log       *logger.Logger
	ctx       context.Context
	imageBase string
	keys      keyMap

	recipeID int
	seq      uint64
	detail   *domain.RecipeDetail
	spinner  spinner.Model
	viewport viewport.Model
	width    int
}

// New creates a detail page with no recipe. Call SetID to load one.
func New(api domain.RecipeAPI, log *logger.Logger, opts ...Option) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	m := &Model{
		id:        int(atomic.AddInt64(&lastID, 1)),
		api:       api,
		log:       log,
		ctx:       context.Background(),
		imageBase: "https://spoonacular.com/cdn/ingredients_100x100/",
		keys:      defaultKeys(),
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		width:     80,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// RecipeID returns the identifier currently shown or being loaded.
func (m *Model) RecipeID() int { return m.recipeID }

// Detail returns the loaded recipe, or nil while loading.
func (m *Model) Detail() *domain.RecipeDetail { return m.detail }

// Loading reports whether the page shows the loading indicator.
func (m *Model) Loading() bool { return m.detail == nil }

// SetSize sets the area available to the page.
func (m *Model) SetSize(w, h int) {
	if w < 20 {
		w = 20
	}
	if h < 3 {
		h = 3
	}
	m.width = w
	m.viewport.Width = w
	m.viewport.Height = h
	if m.detail != nil {
		m.viewport.SetContent(Render(m.detail, m.imageBase, w))
	}
}

// SetID points the page at a recipe. The previous detail is dropped and a
// fetch is issued; replies for earlier identifiers are discarded.
func (m *Model) SetID(recipeID int) tea.Cmd {
	m.recipeID = recipeID
	m.seq++
	m.detail = nil
	m.viewport.SetContent("")
	m.viewport.GotoTop()

	id, seq, api, ctx := m.id, m.seq, m.api, m.ctx
	m.log.Debug("detail: fetching recipe %d (seq=%d)", recipeID, seq)

	fetch := func() tea.Msg {
		d, err := api.Information(ctx, recipeID)
		return loadedMsg{id: id, seq: seq, recipe: recipeID, detail: d, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// Update handles fetch replies, the spinner and scrolling keys.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.id != m.id || msg.seq != m.seq {
			m.log.Debug("detail: discarding reply for recipe %d", msg.recipe)
			return nil
		}
		if msg.err == nil && msg.detail == nil {
			msg.err = errors.New("empty reply")
		}
		if msg.err != nil {
			// The page stays on its loading indicator.
			m.log.Error("detail: loading recipe %d: %v", msg.recipe, msg.err)
			return nil
		}
		m.detail = msg.detail
		m.viewport.SetContent(Render(m.detail, m.imageBase, m.width))
		m.log.Info("detail: loaded %q", m.detail.Title)
		return nil

	case spinner.TickMsg:
		if m.detail != nil {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return func() tea.Msg { return nav.BackMsg{} }
		}
	}

	if m.detail == nil {
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// Click handles a press on line of the rendered page. Pressing the back
// link while it is scrolled into view emits a BackMsg.
func (m *Model) Click(line int) tea.Cmd {
	if m.detail == nil || line != 0 || m.viewport.YOffset != 0 {
		return nil
	}
	return func() tea.Msg { return nav.BackMsg{} }
}

// View renders the loading indicator or the recipe.
func (m *Model) View() string {
	if m.detail == nil {
		return m.spinner.View() + " " + loadingStyle.Render(LoadingText)
	}
	return m.viewport.View()
}
