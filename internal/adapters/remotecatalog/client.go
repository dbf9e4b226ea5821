// Package remotecatalog lists songs from a remote HTTP catalog service.
package remotecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

// Client is an HTTP client for a catalog that answers
// GET <base>/songs?mood=<mood> with a JSON array of songs.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.SongCatalog = (*Client)(nil)

type Option func(*Client)

// WithRetry sets the attempt budget and the first backoff step.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// NewClient constructs a catalog client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Credentials configure the OAuth2 client-credentials grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// HTTPClient returns a client that attaches bearer tokens obtained with
// creds, or base itself when no client id is configured.
func HTTPClient(ctx context.Context, base *http.Client, creds Credentials) *http.Client {
	if creds.ClientID == "" {
		return base
	}
	cfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		Scopes:       creds.Scopes,
	}
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	return cfg.Client(ctx)
}

type remoteSong struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Mood        string  `json:"mood"`
	DurationSec float64 `json:"durationSec"`
}

// ListSongs fetches the listing for mood. Songs without a name or url are
// dropped; a missing mood is filled in from the request.
func (c *Client) ListSongs(ctx context.Context, mood domain.Mood) ([]domain.Song, error) {
	endpoint := fmt.Sprintf("%s/songs?mood=%s", c.baseURL, url.QueryEscape(string(mood)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("remote catalog: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote catalog: status %d", resp.StatusCode)
	}

	var payload []remoteSong
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remote catalog: decode: %w", err)
	}

	songs := make([]domain.Song, 0, len(payload))
	for _, s := range payload {
		if s.Name == "" || s.URL == "" {
			continue
		}
		m := domain.Mood(s.Mood)
		if m == "" {
			m = mood
		}
		songs = append(songs, domain.Song{Name: s.Name, URL: s.URL, Mood: m, DurationSec: s.DurationSec})
	}
	return songs, nil
}
