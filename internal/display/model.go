// Package display provides the terminal UI using Bubble Tea.
//
// [Model] is the root of the view tree: a navbar holding the brand and
// the search bar, the current page below it, and a help footer. [UI]
// runs it full-screen with mouse support.
package display

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/plato/internal/clickaway"
	"github.com/hammamikhairi/plato/internal/config"
	"github.com/hammamikhairi/plato/internal/detail"
	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/landing"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/nav"
	"github.com/hammamikhairi/plato/internal/search"
	"github.com/hammamikhairi/plato/internal/timer"
)

// Brand is the navbar title.
const Brand = "Plato"

// Compile-time interface check.
var _ tea.Model = (*Model)(nil)

// Option configures the Model.
type Option func(*options)

type options struct {
	ctx   context.Context
	clock timer.Clock
}

// WithContext sets the context every fetch runs under.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithClock replaces the wall clock driving the search debounce.
func WithClock(c timer.Clock) Option {
	return func(o *options) { o.clock = c }
}

// Model is the root Bubble Tea model.
type Model struct {
	log  *logger.Logger
	keys keyMap

	search  *search.Model
	landing *landing.Model
	detail  *detail.Model

	away   *clickaway.Detector
	region clickaway.Region

	route  nav.Route
	width  int
	height int
}

// New wires the pages to api using the tunables in cfg.
func New(api domain.RecipeAPI, cfg *config.Config, log *logger.Logger, opts ...Option) *Model {
	o := options{ctx: context.Background(), clock: timer.Real()}
	for _, fn := range opts {
		fn(&o)
	}

	m := &Model{
		log:  log,
		keys: defaultKeys(),
		search: search.New(api, log,
			search.WithDebounce(cfg.Debounce),
			search.WithResultCount(cfg.SearchCount),
			search.WithClock(o.clock),
			search.WithContext(o.ctx),
		),
		landing: landing.New(api, log,
			landing.WithCount(cfg.RandomCount),
			landing.WithPreviewLength(cfg.PreviewLength),
			landing.WithFallbackImage(cfg.FallbackImage),
			landing.WithContext(o.ctx),
		),
		detail: detail.New(api, log,
			detail.WithIngredientImageBase(cfg.IngredientImageBase),
			detail.WithContext(o.ctx),
		),
		route:  nav.RouteLanding,
		width:  80,
		height: 24,
	}
	m.away = clickaway.New(m.dismissSearch)
	m.resize()
	return m
}

// Route returns the page on screen.
func (m *Model) Route() nav.Route { return m.route }

// Search returns the search bar.
func (m *Model) Search() *search.Model { return m.search }

// Landing returns the landing page.
func (m *Model) Landing() *landing.Model { return m.landing }

// Detail returns the detail page.
func (m *Model) Detail() *detail.Model { return m.detail }

// Close releases the search debounce timer. Call once the program exits.
func (m *Model) Close() {
	m.away.Detach()
	m.search.Close()
}

// Init loads the landing page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.landing.Init(), tea.SetWindowTitle(Brand))
}

// Update routes a message to the pages and applies navigation.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncClickaway()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case nav.OpenRecipeMsg:
		m.log.Debug("navigate: %s -> detail(%d)", m.route, msg.ID)
		m.search.Disable()
		m.route = nav.RouteDetail
		return m.detail.SetID(msg.ID)

	case nav.BackMsg:
		if m.route == nav.RouteLanding {
			return nil
		}
		m.log.Debug("navigate: %s -> landing", m.route)
		m.route = nav.RouteLanding
		return m.landing.Load()
	}

	// Everything else is async replies and ticks. Each page ignores
	// messages that are not addressed to it.
	return tea.Batch(
		m.search.Update(msg),
		m.landing.Update(msg),
		m.detail.Update(msg),
	)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.search.Enabled() {
		return m.search.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		return m.search.Enable()
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}

	if m.route == nav.RouteDetail {
		return m.detail.Update(msg)
	}
	return m.landing.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Hit-test against the layout the user clicked on, before a
	// dismissal shrinks the navbar.
	m.region = m.searchRegion()
	region, top := m.region, m.contentTop()
	m.syncClickaway()
	m.away.Handle(msg)

	ev := tea.MouseEvent(msg)
	if ev.IsWheel() {
		return m.scroll(msg)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if region.Contains(msg.X, msg.Y) {
		if !m.search.Enabled() {
			return m.search.Enable()
		}
		// Row 0 is the input, row 1 the total, results follow.
		return m.search.Open(msg.Y - region.Y - 2)
	}

	line := msg.Y - top
	if line < 0 {
		return nil
	}
	if m.route == nav.RouteDetail {
		return m.detail.Click(line)
	}
	if i, ok := m.landing.IndexAt(line); ok {
		return m.landing.Open(i)
	}
	return nil
}

func (m *Model) scroll(msg tea.MouseMsg) tea.Cmd {
	if m.route == nav.RouteDetail {
		return m.detail.Update(msg)
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.landing.Update(tea.KeyMsg{Type: tea.KeyUp})
	case tea.MouseButtonWheelDown:
		return m.landing.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	return nil
}

// dismissSearch is the click-away callback.
func (m *Model) dismissSearch() {
	m.log.Debug("search: dismissed by outside click")
	m.search.Disable()
}

// syncClickaway listens for outside presses only while search is open.
func (m *Model) syncClickaway() {
	if m.search.Enabled() {
		m.region = m.searchRegion()
		m.away.Attach(&m.region)
		return
	}
	m.away.Detach()
}

// ── Layout ───────────────────────────────────────────────────────

func (m *Model) brand() string { return brandStyle.Render(Brand) }

// searchRegion is the bounding box of the search bar and its dropdown.
func (m *Model) searchRegion() clickaway.Region {
	x := lipgloss.Width(m.brand())
	w := m.width - x
	if w < 1 {
		w = 1
	}
	return clickaway.Region{X: x, Y: 0, Width: w, Height: lipgloss.Height(m.search.View())}
}

func (m *Model) navHeight() int { return lipgloss.Height(m.search.View()) }

// contentTop is the first screen row of the current page.
func (m *Model) contentTop() int { return m.navHeight() + 1 }

// pageHeight is the number of rows left for a page below a one-line
// navbar, its divider and the footer.
func (m *Model) pageHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resize() {
	m.search.SetWidth(m.width - lipgloss.Width(m.brand()))
	m.landing.SetHeight(m.pageHeight())
	m.detail.SetSize(m.width, m.pageHeight())
}

// View renders the navbar, the current page and the help footer.
func (m *Model) View() string {
	navbar := lipgloss.JoinHorizontal(lipgloss.Top, m.brand(), m.search.View())
	divider := dividerStyle.Render(strings.Repeat("─", m.width))

	var page string
	if m.route == nav.RouteDetail {
		page = m.detail.View()
	} else {
		page = m.landing.View()
	}
	// An open dropdown pushes the page down; keep the footer on screen.
	avail := m.height - m.navHeight() - 2
	page = clip(page, avail)

	return strings.Join([]string{navbar, divider, page, helpStyle.Render(m.help())}, "\n")
}

func (m *Model) help() string {
	if m.search.Enabled() {
		return "↑/↓ select • enter open • esc close • ctrl+c quit"
	}
	if m.route == nav.RouteDetail {
		return "↑/↓ scroll • esc back • / search • q quit"
	}
	return "↑/↓ select • enter open • r reload • / search • q quit"
}

// clip keeps the first n lines of s, padding short output so the footer
// stays anchored to the bottom row.
func clip(s string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
