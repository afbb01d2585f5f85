package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"unbelong/pkg/models"
)

// Fetcher is the read-only view of the gallery API the handlers depend on.
type Fetcher interface {
	ListIllustrations(ctx context.Context) ([]models.Illustration, error)
	GetIllustration(ctx context.Context, idOrSlug string) (*models.Illustration, error)
	ListWorks(ctx context.Context, category models.Category) ([]models.Work, error)
	GetWork(ctx context.Context, id string) (*models.Work, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to the gallery HTTP API. It never retries and never caches.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

const (
	DefaultBaseURL   = "https://unbelong-api.belong2jazz.workers.dev"
	DefaultUserAgent = "unbelong-gallery/1.0"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 64 << 10
)

// NewClient builds a Client rooted at baseURL ("" means DefaultBaseURL).
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: &UARoundTripper{UserAgent: DefaultUserAgent},
		},
	}, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) ListIllustrations(ctx context.Context) ([]models.Illustration, error) {
	items, err := get[[]models.Illustration](ctx, c, &url.URL{Path: "/api/illustrations"})
	if err != nil {
		return nil, err
	}
	return *items, nil
}

// GetIllustration fetches one illustration by id or slug; the API accepts
// either.
func (c *Client) GetIllustration(ctx context.Context, idOrSlug string) (*models.Illustration, error) {
	rel, err := itemPath("/api/illustrations/", idOrSlug)
	if err != nil {
		return nil, err
	}
	return get[models.Illustration](ctx, c, rel)
}

// ListWorks fetches works, limited to one category unless category is "".
func (c *Client) ListWorks(ctx context.Context, category models.Category) ([]models.Work, error) {
	rel := &url.URL{Path: "/api/works"}
	if category != "" {
		if !category.Valid() {
			return nil, fmt.Errorf("invalid work type %q", category)
		}
		rel.RawQuery = url.Values{"type": {string(category)}}.Encode()
	}
	works, err := get[[]models.Work](ctx, c, rel)
	if err != nil {
		return nil, err
	}
	return *works, nil
}

func (c *Client) GetWork(ctx context.Context, id string) (*models.Work, error) {
	rel, err := itemPath("/api/works/", id)
	if err != nil {
		return nil, err
	}
	return get[models.Work](ctx, c, rel)
}

// Ping checks that the API answers a cheap request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListWorks(ctx, "")
	return err
}

func itemPath(prefix, id string) (*url.URL, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	return &url.URL{Path: prefix + id, RawPath: prefix + url.PathEscape(id)}, nil
}

func get[T any](ctx context.Context, c *Client, rel *url.URL) (*T, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Path: rel.Path, StatusCode: resp.StatusCode}
		var env models.Envelope[json.RawMessage]
		if b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); json.Unmarshal(b, &env) == nil {
			apiErr.Message = env.Error
		}
		return nil, apiErr
	}

	var env models.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, &Error{Path: rel.Path, StatusCode: resp.StatusCode, Message: env.Error}
	}
	if env.Data == nil {
		return nil, &Error{Path: rel.Path, StatusCode: resp.StatusCode, Message: "response contained no data"}
	}
	return env.Data, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, errors.New("api base url has no host")
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
