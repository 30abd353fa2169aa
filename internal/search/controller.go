// Package search implements the type-ahead search bar: a debounced query
// controller and the presenter that renders its state.
//
// The controller is a state machine over Idle, Pending and Settled. Every
// transition that supersedes earlier work cancels the owned debounce timer
// and bumps a sequence number; timer fires and fetch replies carrying an
// older sequence number are dropped without touching state.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/nav"
	"github.com/hammamikhairi/plato/internal/timer"
)

// ErrorText is shown in place of results when a search fails.
const ErrorText = "Failed to load search results."

// State is the controller's lifecycle state.
type State int

const (
	// StateIdle: search disabled or query empty; nothing scheduled.
	StateIdle State = iota
	// StatePending: a fetch is scheduled or in flight for the current query.
	StatePending
	// StateSettled: the latest fetch resolved, successfully or not.
	StateSettled
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

var lastID int64

func nextID() int { return int(atomic.AddInt64(&lastID, 1)) }

// ── Messages ─────────────────────────────────────────────────────

// fireMsg is delivered when a debounce timer elapses uncancelled.
type fireMsg struct {
	id  int
	seq uint64
}

// Request is the explicit snapshot a fetch is issued with.
type Request struct {
	Seq    uint64
	Query  string
	Number int
}

// ResultMsg carries a resolved fetch back onto the event loop.
type ResultMsg struct {
	id     int
	Seq    uint64
	Query  string
	Result *domain.SearchResultSet
	Err    error
}

// Fetch runs one search for req. It depends on nothing but its arguments.
func Fetch(ctx context.Context, api domain.RecipeAPI, req Request) ResultMsg {
	res, err := api.Search(ctx, req.Query, req.Number)
	return ResultMsg{Seq: req.Seq, Query: req.Query, Result: res, Err: err}
}

// ── Model ────────────────────────────────────────────────────────

// Option configures the Model.
type Option func(*Model)

// WithDebounce sets the quiet period before a fetch is issued.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) { m.quiet = d }
}

// WithResultCount sets how many results each search asks for.
func WithResultCount(n int) Option {
	return func(m *Model) { m.number = n }
}

// WithClock replaces the wall clock, for tests.
func WithClock(c timer.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// WithContext sets the context fetches run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// Model is the search bar: text input, controller state and results.
// It is owned by a single Bubble Tea model and must only be touched from
// the event loop.
type Model struct {
	id     int
	api    domain.RecipeAPI
	log    *logger.Logger
	clock  timer.Clock
	ctx    context.Context
	quiet  time.Duration
	number int
	keys   keyMap

	input    textinput.Model
	enabled  bool
	state    State
	seq      uint64
	pending  *timer.Handle
	inFlight bool
	result   *domain.SearchResultSet
	errText  string
	selected int
	width    int
}

// New creates a disabled search bar backed by api.
func New(api domain.RecipeAPI, log *logger.Logger, opts ...Option) *Model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = "/ "
	ti.Placeholder = "Search recipes..."
	ti.PromptStyle = promptStyle
	ti.CharLimit = 200
	ti.Width = 40

	m := &Model{
		id:     nextID(),
		api:    api,
		log:    log,
		clock:  timer.Real(),
		ctx:    context.Background(),
		quiet:  300 * time.Millisecond,
		number: 5,
		keys:   defaultKeys(),
		input:  ti,
		width:  40,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Enabled reports whether the search bar is active.
func (m *Model) Enabled() bool { return m.enabled }

// State returns the controller state.
func (m *Model) State() State { return m.state }

// Query returns the query as currently typed.
func (m *Model) Query() string { return m.input.Value() }

// Result returns the committed result set, or nil.
func (m *Model) Result() *domain.SearchResultSet { return m.result }

// Err returns the user-visible error line, or "".
func (m *Model) Err() string { return m.errText }

// Seq returns the latest issued sequence number.
func (m *Model) Seq() uint64 { return m.seq }

// Selected returns the highlighted result index.
func (m *Model) Selected() int { return m.selected }

// SetWidth sets the width available to the input and result list.
func (m *Model) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	m.width = w
	m.input.Width = w - len(m.input.Prompt) - 1
}

// Enable activates the search bar and focuses the input. If a query is
// already present a fetch is scheduled for it.
func (m *Model) Enable() tea.Cmd {
	if m.enabled {
		return nil
	}
	m.enabled = true
	focus := m.input.Focus()
	return tea.Batch(focus, m.transition())
}

// Disable deactivates the search bar, clears the query and results and
// cancels anything scheduled.
func (m *Model) Disable() {
	if !m.enabled {
		return
	}
	m.enabled = false
	m.input.Blur()
	m.input.SetValue("")
	m.transition()
}

// SetQuery replaces the query, as if typed.
func (m *Model) SetQuery(q string) tea.Cmd {
	if q == m.input.Value() {
		return nil
	}
	m.input.SetValue(q)
	m.input.CursorEnd()
	return m.transition()
}

// Close releases the debounce timer and invalidates outstanding work.
// Call when the search bar goes away.
func (m *Model) Close() {
	m.pending.Cancel()
	m.pending = nil
	m.seq++
	m.state = StateIdle
	m.inFlight = false
}

// transition applies a superseding change: the previous timer is
// cancelled, displayed results are cleared, and a new timer is armed when
// search is enabled with a non-empty query.
func (m *Model) transition() tea.Cmd {
	m.pending.Cancel()
	m.pending = nil
	m.seq++
	m.result = nil
	m.errText = ""
	m.selected = 0
	m.inFlight = false

	query := m.input.Value()
	if !m.enabled || query == "" {
		m.state = StateIdle
		return nil
	}

	m.state = StatePending
	h := timer.Start(m.clock, m.quiet)
	m.pending = h
	id, seq := m.id, m.seq
	m.log.Debug("search: scheduled %q (seq=%d, in %s)", query, seq, m.quiet)

	return func() tea.Msg {
		if !h.Wait() {
			return nil
		}
		return fireMsg{id: id, seq: seq}
	}
}

// Update handles keys while enabled, timer fires and fetch replies.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fireMsg:
		if msg.id != m.id {
			return nil
		}
		return m.fire(msg.seq)

	case ResultMsg:
		if msg.id != m.id {
			return nil
		}
		m.commit(msg)
		return nil

	case tea.KeyMsg:
		if !m.enabled {
			return nil
		}
		return m.handleKey(msg)
	}

	if !m.enabled {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) fire(seq uint64) tea.Cmd {
	if seq != m.seq || m.state != StatePending || m.inFlight {
		m.log.Debug("search: dropping stale timer (seq=%d, latest=%d)", seq, m.seq)
		return nil
	}
	m.pending = nil
	m.inFlight = true

	req := Request{Seq: m.seq, Query: m.input.Value(), Number: m.number}
	api, ctx, id := m.api, m.ctx, m.id
	m.log.Debug("search: fetching %q (seq=%d)", req.Query, req.Seq)

	return func() tea.Msg {
		res := Fetch(ctx, api, req)
		res.id = id
		return res
	}
}

func (m *Model) commit(msg ResultMsg) {
	if msg.Seq != m.seq || !m.enabled || !m.inFlight {
		m.log.Debug("search: discarding stale reply for %q (seq=%d, latest=%d)", msg.Query, msg.Seq, m.seq)
		return
	}
	m.inFlight = false
	m.state = StateSettled
	m.selected = 0

	if msg.Err != nil {
		m.log.Error("search %q failed: %v", msg.Query, msg.Err)
		m.result = nil
		m.errText = ErrorText
		return
	}
	m.result = msg.Result
	if m.result == nil {
		m.result = &domain.SearchResultSet{}
	}
	m.errText = ""
	m.log.Debug("search: %q -> %d of %d", msg.Query, len(m.result.Results), m.result.TotalResults)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.Disable()
		return nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return nil
	case key.Matches(msg, m.keys.Down):
		if m.result != nil && m.selected < len(m.result.Results)-1 {
			m.selected++
		}
		return nil
	case key.Matches(msg, m.keys.Open):
		return m.Open(m.selected)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.transition())
}

// Open emits a navigation message for result i, if it exists.
func (m *Model) Open(i int) tea.Cmd {
	r, ok := m.ResultAt(i)
	if !ok {
		return nil
	}
	return func() tea.Msg { return nav.OpenRecipeMsg{ID: r.ID} }
}

// ResultAt returns result i of the committed set.
func (m *Model) ResultAt(i int) (domain.RecipeSummary, bool) {
	if m.result == nil || i < 0 || i >= len(m.result.Results) {
		return domain.RecipeSummary{}, false
	}
	return m.result.Results[i], true
}

// View renders the input followed by the presenter output.
func (m *Model) View() string {
	out := m.input.View()
	if body := Render(m.snapshot()); body != "" {
		out += "\n" + body
	}
	return out
}

func (m *Model) snapshot() View {
	return View{
		Enabled:  m.enabled,
		Result:   m.result,
		Err:      m.errText,
		Selected: m.selected,
		Width:    m.width,
	}
}
