package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/nav"
	"github.com/hammamikhairi/plato/internal/timer"
)

// fakeAPI answers searches from a map and records every call.
type fakeAPI struct {
	mu      sync.Mutex
	results map[string]*domain.SearchResultSet
	fail    map[string]error
	calls   []string
}

func (f *fakeAPI) Random(context.Context, int) ([]domain.RecipeSummary, error) {
	return nil, nil
}

func (f *fakeAPI) Information(context.Context, int) (*domain.RecipeDetail, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) Search(_ context.Context, query string, number int) (*domain.SearchResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	if err := f.fail[query]; err != nil {
		return nil, err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return &domain.SearchResultSet{}, nil
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

const quiet = 300 * time.Millisecond

func setup(t *testing.T, api *fakeAPI) (*Model, *timer.Fake) {
	t.Helper()
	clk := timer.NewFake(time.Unix(0, 0))
	m := New(api, logger.New(logger.LevelOff, nil), WithClock(clk), WithDebounce(quiet))
	m.Enable()
	return m, clk
}

// await runs cmd in the background and returns its message, or nil if it
// has not produced one within a short grace period.
func await(cmd tea.Cmd) <-chan tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	return ch
}

func recv(t *testing.T, ch <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("command did not complete")
		return nil
	}
}

// settle fires the debounce timer for cmd and runs the resulting fetch.
func settle(t *testing.T, m *Model, clk *timer.Fake, cmd tea.Cmd) {
	t.Helper()
	ch := await(cmd)
	clk.Advance(quiet)
	fire := recv(t, ch)
	if fire == nil {
		t.Fatal("debounce timer was cancelled")
	}
	fetch := m.Update(fire)
	if fetch == nil {
		t.Fatal("expected a fetch command")
	}
	m.Update(fetch())
}

func TestSearchEndToEnd(t *testing.T) {
	api := &fakeAPI{results: map[string]*domain.SearchResultSet{
		"pasta": {TotalResults: 1, Results: []domain.RecipeSummary{{ID: 1, Title: "Pasta Carbonara"}}},
	}}
	m, clk := setup(t, api)

	cmd := m.SetQuery("pasta")
	if m.State() != StatePending {
		t.Fatalf("expected pending, got %s", m.State())
	}
	settle(t, m, clk, cmd)

	if m.State() != StateSettled {
		t.Fatalf("expected settled, got %s", m.State())
	}
	out := Render(m.snapshot())
	if !strings.Contains(out, "Total Results: 1") {
		t.Fatalf("missing total line in %q", out)
	}
	if strings.Count(out, "Pasta Carbonara") != 1 {
		t.Fatalf("expected one list item in %q", out)
	}
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	api := &fakeAPI{}
	m, clk := setup(t, api)

	var superseded []<-chan tea.Msg
	var last tea.Cmd
	for _, q := range []string{"p", "pa", "pas", "past", "pasta"} {
		if last != nil {
			superseded = append(superseded, await(last))
		}
		last = m.SetQuery(q)
		clk.Advance(quiet / 3)
		if n := clk.Live(); n != 1 {
			t.Fatalf("expected exactly one live timer after %q, got %d", q, n)
		}
	}

	for _, ch := range superseded {
		if msg := recv(t, ch); msg != nil {
			t.Fatalf("superseded timer produced %T", msg)
		}
	}
	if api.callCount() != 0 {
		t.Fatalf("expected no fetch inside the quiet window, got %d", api.callCount())
	}

	settle(t, m, clk, last)

	if api.callCount() != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d (%v)", api.callCount(), api.calls)
	}
	if api.calls[0] != "pasta" {
		t.Fatalf("expected fetch for final query, got %q", api.calls[0])
	}
}

func TestStaleReplyNeverRendered(t *testing.T) {
	api := &fakeAPI{results: map[string]*domain.SearchResultSet{
		"x": {TotalResults: 1, Results: []domain.RecipeSummary{{ID: 1, Title: "Xacuti"}}},
		"y": {TotalResults: 1, Results: []domain.RecipeSummary{{ID: 2, Title: "Yakitori"}}},
	}}
	m, clk := setup(t, api)

	// Request A is issued for "x" but not resolved yet.
	chA := await(m.SetQuery("x"))
	clk.Advance(quiet)
	fetchA := m.Update(recv(t, chA))
	if fetchA == nil {
		t.Fatal("expected fetch for x")
	}

	// Request B for "y" is issued and resolves first.
	settle(t, m, clk, m.SetQuery("y"))

	// A resolves late.
	m.Update(fetchA())

	if api.callCount() != 2 {
		t.Fatalf("expected both requests to reach the API, got %d", api.callCount())
	}
	out := Render(m.snapshot())
	if strings.Contains(out, "Xacuti") {
		t.Fatalf("stale result rendered: %q", out)
	}
	if !strings.Contains(out, "Yakitori") {
		t.Fatalf("latest result missing: %q", out)
	}
}

func TestQueryChangeClearsResults(t *testing.T) {
	api := &fakeAPI{results: map[string]*domain.SearchResultSet{
		"soup": {TotalResults: 1, Results: []domain.RecipeSummary{{ID: 3, Title: "Miso Soup"}}},
	}}
	m, clk := setup(t, api)
	settle(t, m, clk, m.SetQuery("soup"))
	if m.Result() == nil {
		t.Fatal("expected results")
	}

	m.SetQuery("soups")
	if m.Result() != nil {
		t.Fatal("results from the previous query must be cleared on query change")
	}
	if Render(m.snapshot()) != "" {
		t.Fatalf("expected nothing rendered while pending, got %q", Render(m.snapshot()))
	}
}

func TestEmptyQueryGoesIdle(t *testing.T) {
	api := &fakeAPI{}
	m, clk := setup(t, api)

	ch := await(m.SetQuery("rice"))
	if cmd := m.SetQuery(""); cmd != nil {
		t.Fatal("empty query must not schedule a fetch")
	}
	if msg := recv(t, ch); msg != nil {
		t.Fatalf("cancelled timer produced %T", msg)
	}
	if m.State() != StateIdle {
		t.Fatalf("expected idle, got %s", m.State())
	}
	if clk.Live() != 0 {
		t.Fatalf("expected no live timers, got %d", clk.Live())
	}
}

func TestDisableCancelsAndClears(t *testing.T) {
	api := &fakeAPI{results: map[string]*domain.SearchResultSet{
		"tofu": {TotalResults: 1, Results: []domain.RecipeSummary{{ID: 4, Title: "Mapo Tofu"}}},
	}}
	m, clk := setup(t, api)

	// Fire the timer, then disable while the fetch is in flight.
	ch := await(m.SetQuery("tofu"))
	clk.Advance(quiet)
	fetch := m.Update(recv(t, ch))
	m.Disable()
	m.Update(fetch())

	if m.Enabled() {
		t.Fatal("expected disabled")
	}
	if m.State() != StateIdle || m.Result() != nil || m.Query() != "" {
		t.Fatalf("expected idle with no results and empty query, got %s %+v %q", m.State(), m.Result(), m.Query())
	}
	if Render(m.snapshot()) != "" {
		t.Fatal("disabled search must render nothing")
	}
}

func TestFailureShowsErrorOnce(t *testing.T) {
	api := &fakeAPI{fail: map[string]error{
		"boom": &domain.StatusError{Code: 500, Status: "500 Internal Server Error"},
	}}
	m, clk := setup(t, api)
	settle(t, m, clk, m.SetQuery("boom"))

	if m.State() != StateSettled {
		t.Fatalf("expected settled, got %s", m.State())
	}
	if m.Err() != ErrorText {
		t.Fatalf("expected error text, got %q", m.Err())
	}
	if got := Render(m.snapshot()); !strings.Contains(got, ErrorText) || strings.Contains(got, "Total Results") {
		t.Fatalf("unexpected render %q", got)
	}
	if api.callCount() != 1 {
		t.Fatalf("expected no retry, got %d calls", api.callCount())
	}
}

func TestDuplicateFireIgnored(t *testing.T) {
	api := &fakeAPI{}
	m, clk := setup(t, api)

	ch := await(m.SetQuery("egg"))
	clk.Advance(quiet)
	fire := recv(t, ch)
	if m.Update(fire) == nil {
		t.Fatal("expected fetch on first fire")
	}
	if m.Update(fire) != nil {
		t.Fatal("a second fire for the same sequence must not fetch again")
	}
}

func TestMessagesForOtherInstancesIgnored(t *testing.T) {
	api := &fakeAPI{}
	a, clk := setup(t, api)
	b, _ := setup(t, api)

	ch := await(a.SetQuery("kale"))
	clk.Advance(quiet)
	fire := recv(t, ch)
	if b.Update(fire) != nil {
		t.Fatal("instance b reacted to a's timer")
	}
}

func TestNavigationKeys(t *testing.T) {
	api := &fakeAPI{results: map[string]*domain.SearchResultSet{
		"pie": {TotalResults: 2, Results: []domain.RecipeSummary{{ID: 10, Title: "Apple Pie"}, {ID: 11, Title: "Pecan Pie"}}},
	}}
	m, clk := setup(t, api)
	settle(t, m, clk, m.SetQuery("pie"))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != 1 {
		t.Fatalf("expected selection clamped to 1, got %d", m.Selected())
	}

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	open, ok := cmd().(nav.OpenRecipeMsg)
	if !ok || open.ID != 11 {
		t.Fatalf("expected OpenRecipeMsg{11}, got %#v", open)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Enabled() {
		t.Fatal("esc should disable search")
	}
}

func TestFetchIsPure(t *testing.T) {
	want := errors.New("offline")
	api := &fakeAPI{fail: map[string]error{"q": want}}

	msg := Fetch(context.Background(), api, Request{Seq: 7, Query: "q", Number: 5})
	if msg.Seq != 7 || msg.Query != "q" || !errors.Is(msg.Err, want) {
		t.Fatalf("unexpected result %+v", msg)
	}
}

func TestCloseReleasesTimer(t *testing.T) {
	api := &fakeAPI{}
	m, clk := setup(t, api)

	ch := await(m.SetQuery("beans"))
	m.Close()
	if msg := recv(t, ch); msg != nil {
		t.Fatalf("closed controller produced %T", msg)
	}
	if clk.Live() != 0 {
		t.Fatalf("expected no live timers after Close, got %d", clk.Live())
	}
}
