// Package zoobank resolves ZooBank LSIDs to their registered
// nomenclatural act and publication records.
package zoobank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the public ZooBank API host.
const DefaultEndpoint = "https://zoobank.org"

// ErrNotFound reports an LSID ZooBank has no record for.
var ErrNotFound = errors.New("zoobank: not found")

// ErrBadLSID reports a string that is not a ZooBank LSID.
var ErrBadLSID = errors.New("zoobank: malformed LSID")

// LSIDKind distinguishes the two record types an LSID can name.
type LSIDKind string

const (
	KindAct         LSIDKind = "act"
	KindPublication LSIDKind = "pub"
)

// Act is one registered nomenclatural act.
type Act struct {
	UUID          string `json:"protonymuuid"`
	NameString    string `json:"namestring"`
	RankGroup     string `json:"rankgroup"`
	Authors       string `json:"usageauthors"`
	Protonym      string `json:"cleanprotonym"`
	ReferenceUUID string `json:"OriginalReferenceUUID"`
}

// Publication is one registered reference.
type Publication struct {
	UUID            string `json:"referenceuuid"`
	Authors         string `json:"authorlist"`
	Year            string `json:"year"`
	Title           string `json:"title"`
	CitationDetails string `json:"citationdetails"`
}

// ParseLSID splits a ZooBank LSID into its kind and uuid.
func ParseLSID(lsid string) (LSIDKind, string, error) {
	parts := strings.Split(lsid, ":")
	// urn:lsid:zoobank.org:<kind>:<uuid>
	if len(parts) != 5 || parts[0] != "urn" || parts[1] != "lsid" ||
		parts[2] != "zoobank.org" {
		return "", "", fmt.Errorf("%w: %q", ErrBadLSID, lsid)
	}
	kind := LSIDKind(parts[3])
	if kind != KindAct && kind != KindPublication {
		return "", "", fmt.Errorf("%w: unknown kind %q", ErrBadLSID, parts[3])
	}
	if parts[4] == "" {
		return "", "", fmt.Errorf("%w: empty uuid", ErrBadLSID)
	}
	return kind, parts[4], nil
}

// Client talks to the ZooBank API.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API host, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a ZooBank client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveAct looks up the nomenclatural act an LSID names.
func (c *Client) ResolveAct(ctx context.Context, lsid string) (*Act, error) {
	kind, uuid, err := ParseLSID(lsid)
	if err != nil {
		return nil, err
	}
	if kind != KindAct {
		return nil, fmt.Errorf("%w: %q is not an act LSID", ErrBadLSID, lsid)
	}
	var acts []Act
	if err := c.get(ctx, "/NomenclaturalActs.json/"+uuid, &acts); err != nil {
		return nil, err
	}
	if len(acts) == 0 {
		return nil, fmt.Errorf("%w: act %s", ErrNotFound, uuid)
	}
	return &acts[0], nil
}

// ResolvePublication looks up the reference an LSID names.
func (c *Client) ResolvePublication(ctx context.Context, lsid string) (*Publication, error) {
	kind, uuid, err := ParseLSID(lsid)
	if err != nil {
		return nil, err
	}
	if kind != KindPublication {
		return nil, fmt.Errorf("%w: %q is not a publication LSID", ErrBadLSID, lsid)
	}
	var pubs []Publication
	if err := c.get(ctx, "/References.json/"+uuid, &pubs); err != nil {
		return nil, err
	}
	if len(pubs) == 0 {
		return nil, fmt.Errorf("%w: publication %s", ErrNotFound, uuid)
	}
	return &pubs[0], nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build zoobank request: %w", err)
	}
	c.logger.Debug("zoobank request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("zoobank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zoobank request failed: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read zoobank response: %w", err)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode zoobank response: %w", err)
	}
	return nil
}
