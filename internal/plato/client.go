// Package plato provides the HTTP client for the Plato recipe API.
//
// Every call is a single GET with no retry. Failures are classified as
// domain.ErrNetwork (transport errors and non-2xx statuses, the latter as
// *domain.StatusError) or domain.ErrParse (undecodable payloads).
package plato

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeAPI = (*Client)(nil)

const recipesPath = "/plato/recipes"

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// Client talks to the Plato recipe endpoints.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8080"). A trailing slash is tolerated.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	c := &Client{
		baseURL:   baseURL,
		userAgent: "plato-cli",
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Random fetches an unfiltered batch of number recipes.
func (c *Client) Random(ctx context.Context, number int) ([]domain.RecipeSummary, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(number))

	var resp randomResponse
	if err := c.get(ctx, recipesPath+"/random", q, &resp); err != nil {
		return nil, fmt.Errorf("plato: random: %w", err)
	}
	return summaries(resp.Recipes), nil
}

// Search runs a complex search for query, returning at most number results.
func (c *Client) Search(ctx context.Context, query string, number int) (*domain.SearchResultSet, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("number", strconv.Itoa(number))

	var resp searchResponse
	if err := c.get(ctx, recipesPath+"/complexSearch", q, &resp); err != nil {
		return nil, fmt.Errorf("plato: search %q: %w", query, err)
	}
	return &domain.SearchResultSet{
		TotalResults: resp.TotalResults,
		Results:      summaries(resp.Results),
	}, nil
}

// Information fetches the full detail of one recipe.
func (c *Client) Information(ctx context.Context, id int) (*domain.RecipeDetail, error) {
	var resp recipeJSON
	path := fmt.Sprintf("%s/%d/information", recipesPath, id)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("plato: information %d: %w", id, err)
	}
	if resp.ID == 0 {
		return nil, fmt.Errorf("plato: information %d: %w: payload has no recipe id", id, domain.ErrParse)
	}
	return resp.detail(), nil
}

// URL returns the absolute URL for path and query. Exposed for logging
// and tests.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.URL(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("plato: GET %s", endpoint)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrNetwork, err)
	}

	c.log.Debug("plato: %s -> %s (%d bytes, %s)", path, resp.Status, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return nil
}
