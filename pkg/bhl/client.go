// Package bhl is a typed client for the Biodiversity Heritage Library
// metadata API (api3). Responses are cached on disk because BHL
// metadata for a scanned item does not change, and identical in-flight
// lookups are collapsed so a batch pass over many names hits the
// network at most once per item.
package bhl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultEndpoint is the public api3 endpoint.
const DefaultEndpoint = "https://www.biodiversitylibrary.org/api3"

// ErrNotFound reports an id the API has no record for, as opposed to a
// transport failure.
var ErrNotFound = errors.New("bhl: not found")

// Client talks to the BHL metadata API.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	cache    *diskCache
	group    singleflight.Group
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithCacheDir enables the disk response cache under dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cache = newDiskCache(dir) }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the response wrapper every api3 operation shares.
type envelope struct {
	Status       string          `json:"Status"`
	ErrorMessage string          `json:"ErrorMessage"`
	Result       json.RawMessage `json:"Result"`
}

// GetItemMetadata fetches one item with its page listing.
func (c *Client) GetItemMetadata(ctx context.Context, itemID int) (*Item, error) {
	params := url.Values{
		"op":    {"GetItemMetadata"},
		"id":    {strconv.Itoa(itemID)},
		"pages": {"t"},
		"parts": {"t"},
	}
	var items []Item
	if err := c.call(ctx, params, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
	}
	return &items[0], nil
}

// GetPartMetadata fetches one part (an article within an item).
func (c *Client) GetPartMetadata(ctx context.Context, partID int) (*Part, error) {
	params := url.Values{
		"op": {"GetPartMetadata"},
		"id": {strconv.Itoa(partID)},
	}
	var parts []Part
	if err := c.call(ctx, params, &parts); err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: part %d", ErrNotFound, partID)
	}
	return &parts[0], nil
}

// GetTitleMetadata fetches one title with its items.
func (c *Client) GetTitleMetadata(ctx context.Context, titleID int) (*Title, error) {
	params := url.Values{
		"op":    {"GetTitleMetadata"},
		"id":    {strconv.Itoa(titleID)},
		"items": {"t"},
	}
	var titles []Title
	if err := c.call(ctx, params, &titles); err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: title %d", ErrNotFound, titleID)
	}
	return &titles[0], nil
}

// ItemPages fetches the page listing of an item.
func (c *Client) ItemPages(ctx context.Context, itemID int) ([]Page, error) {
	item, err := c.GetItemMetadata(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.Pages, nil
}

// call performs one API operation, consulting the disk cache first and
// collapsing concurrent identical requests.
func (c *Client) call(ctx context.Context, params url.Values, result any) error {
	params.Set("format", "json")
	request := params.Encode()

	if hit, err := c.cache.get(request, result); err != nil {
		return err
	} else if hit {
		c.logger.Debug("bhl cache hit", "request", request)
		return nil
	}

	raw, err, _ := c.group.Do(request, func() (any, error) {
		return c.fetch(ctx, params)
	})
	if err != nil {
		return err
	}
	payload := raw.(json.RawMessage)

	if err := json.Unmarshal(payload, result); err != nil {
		return fmt.Errorf("failed to decode bhl result: %w", err)
	}
	if err := c.cache.put(request, result); err != nil {
		c.logger.Debug("bhl cache write failed", "error", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) (json.RawMessage, error) {
	// the api key never enters the cache key
	full := params
	if c.apiKey != "" {
		full = url.Values{}
		for k, v := range params {
			full[k] = v
		}
		full.Set("apikey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?"+full.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bhl request: %w", err)
	}
	c.logger.Debug("bhl request", "op", params.Get("op"), "id", params.Get("id"))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bhl request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bhl request failed: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read bhl response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode bhl response: %w", err)
	}
	if env.Status != "ok" {
		return nil, fmt.Errorf("bhl error: %s", env.ErrorMessage)
	}
	return env.Result, nil
}
