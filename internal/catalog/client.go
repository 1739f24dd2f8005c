// internal/catalog/client.go
//
// HTTP client for the public creature catalog (PokéAPI).
// Responsibilities:
//   - Draw a random identifier uniformly from a fixed range.
//   - Issue a single GET /api/v2/pokemon/{id} per call.
//   - Decode id, name and the official artwork URL into a Record.
//
// Notes:
//   - No retry, no caching, no rate limiting: one best-effort call per round.
//   - Every failure is reported as *NetworkError.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://pokeapi.co"
	DefaultMinID   = 1
	DefaultMaxID   = 151 // first generation only
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

var (
	errMissingName  = errors.New("record has no name")
	errMissingImage = errors.New("record has no official artwork")
)

// Client fetches records from the catalog service.
type Client struct {
	baseURL string
	minID   int
	maxID   int
	http    *http.Client
	nextID  func() int
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at another catalog host (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithRange sets the inclusive identifier range.
func WithRange(minID, maxID int) Option {
	return func(c *Client) { c.minID, c.maxID = minID, maxID }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithIDSource overrides the random identifier draw.
func WithIDSource(f func() int) Option {
	return func(c *Client) { c.nextID = f }
}

// New constructs a Client with PokéAPI defaults.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		minID:   DefaultMinID,
		maxID:   DefaultMaxID,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	if c.nextID == nil {
		c.nextID = c.randomID
	}
	return c
}

// Range reports the inclusive identifier range.
func (c *Client) Range() (int, int) { return c.minID, c.maxID }

// randomID draws uniformly from [minID, maxID].
func (c *Client) randomID() int {
	return c.minID + rand.Intn(c.maxID-c.minID+1)
}

// FetchRandomRecord fetches the record for a randomly drawn identifier.
func (c *Client) FetchRandomRecord(ctx context.Context) (Record, error) {
	return c.Fetch(ctx, c.nextID())
}

// Fetch retrieves a single record by identifier.
func (c *Client) Fetch(ctx context.Context, id int) (Record, error) {
	u := c.baseURL + "/api/v2/pokemon/" + strconv.Itoa(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Record{}, &NetworkError{ID: id, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return Record{}, &NetworkError{ID: id, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return Record{}, &NetworkError{ID: id, Status: res.StatusCode, Err: errors.New("unexpected status")}
	}

	var body apiPokemon
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(&body); err != nil {
		return Record{}, &NetworkError{ID: id, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}

	rec := Record{
		ID:       body.ID,
		Name:     body.Name,
		ImageURL: body.Sprites.Other.OfficialArtwork.FrontDefault,
	}
	if rec.ID == 0 {
		rec.ID = id
	}
	switch {
	case rec.Name == "":
		return Record{}, &NetworkError{ID: id, Status: res.StatusCode, Err: errMissingName}
	case rec.ImageURL == "":
		return Record{}, &NetworkError{ID: id, Status: res.StatusCode, Err: errMissingImage}
	}
	return rec, nil
}
