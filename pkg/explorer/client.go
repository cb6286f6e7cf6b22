package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yumyai/panres/pkg/model"
)

const (
	// DefaultTimeout bounds every request; expiry surfaces as ErrTransport.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is requests per second toward the server.
	DefaultRateLimit = 20.0

	maxBodyBytes = 16 << 20
)

// Source is what the Explorer and Detail Panel fetch from.
type Source interface {
	Hierarchy(ctx context.Context) (*model.HierarchyResponse, error)
	Children(ctx context.Context, classID string) (*model.ChildrenResponse, error)
	Details(ctx context.Context, id string) (*model.DetailsResponse, error)
}

// Client talks to the browser JSON API over HTTP.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout replaces the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets requests per second; zero or less disables limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a client for the server at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Hierarchy(ctx context.Context) (*model.HierarchyResponse, error) {
	var resp model.HierarchyResponse
	if err := c.getJSON(ctx, "/api/hierarchy", &resp); err != nil {
		return nil, err
	}
	for i, cls := range resp.TopClasses {
		if cls.ID == "" {
			return nil, fmt.Errorf("%w: topClasses[%d] has no id", ErrMalformed, i)
		}
	}
	return &resp, nil
}

func (c *Client) Children(ctx context.Context, classID string) (*model.ChildrenResponse, error) {
	var resp model.ChildrenResponse
	if err := c.getJSON(ctx, "/api/children/"+url.PathEscape(classID), &resp); err != nil {
		return nil, err
	}
	for i, cls := range resp.SubClasses {
		if cls.ID == "" {
			return nil, fmt.Errorf("%w: subClasses[%d] has no id", ErrMalformed, i)
		}
	}
	for i, inst := range resp.Instances {
		if inst.ID == "" {
			return nil, fmt.Errorf("%w: instances[%d] has no id", ErrMalformed, i)
		}
	}
	return &resp, nil
}

func (c *Client) Details(ctx context.Context, id string) (*model.DetailsResponse, error) {
	var resp model.DetailsResponse
	if err := c.getJSON(ctx, "/api/details/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	if resp.Type == "" {
		return nil, fmt.Errorf("%w: details of %s have no type", ErrMalformed, id)
	}
	return &resp, nil
}

// Autocomplete queries the search endpoint.
func (c *Client) Autocomplete(ctx context.Context, q string, limit int) ([]model.AutocompleteItem, error) {
	params := url.Values{"q": {q}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var items []model.AutocompleteItem
	if err := c.getJSON(ctx, "/autocomplete?"+params.Encode(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if msg := errorField(body); resp.StatusCode >= 300 || msg != "" {
		return &StatusError{StatusCode: resp.StatusCode, Message: msg, Path: path}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

// errorField extracts {"error": "..."} from an object body.
func errorField(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}
