package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	defaultTimeout = 10 * time.Second

	// maxResponseSize caps how much of a response body is read; pet cards
	// are tiny and anything larger is a misbehaving server.
	maxResponseSize = 1 << 20
)

// petQuery asks for exactly the fields a pet card renders.
const petQuery = `
query PetLookup($name: String!) {
  pet(name: $name) {
    number
    name
    image
    moves {
      name
      type
      power
    }
  }
}`

// Client fetches pet cards from a lookup API endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Nil is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpc = c
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
// Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpc.Timeout = d
		}
	}
}

// New creates a Client against the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch looks up one pet by name. Names are matched case-insensitively.
// One call is one attempt: failures are returned as-is, never retried.
func (c *Client) Fetch(ctx context.Context, name string) (Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Pet{}, ErrEmptyName
	}

	body, err := json.Marshal(map[string]any{
		"query":     petQuery,
		"variables": map[string]string{"name": strings.ToLower(name)},
	})
	if err != nil {
		return Pet{}, fmt.Errorf("petstore: encode lookup query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return Pet{}, fmt.Errorf("petstore: build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Pet{}, fmt.Errorf("petstore: execute lookup request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Pet{}, fmt.Errorf("petstore: read lookup response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Pet{}, fmt.Errorf("petstore: lookup %q: unexpected status %d", name, resp.StatusCode)
	}

	return decodePet(raw, name)
}

// decodePet extracts a pet card from a lookup response body. Extraction is
// tolerant: unknown fields are ignored, only the pet payload shape matters.
func decodePet(raw []byte, name string) (Pet, error) {
	if !gjson.ValidBytes(raw) {
		return Pet{}, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}

	if msg := gjson.GetBytes(raw, "errors.0.message"); msg.Exists() {
		return Pet{}, fmt.Errorf("petstore: lookup %q: %s", name, msg.String())
	}

	node := gjson.GetBytes(raw, "data.pet")
	if !node.Exists() {
		return Pet{}, fmt.Errorf("%w: missing pet payload", ErrMalformedResponse)
	}
	if node.Type == gjson.Null {
		return Pet{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	pet := Pet{
		Name:     node.Get("name").String(),
		Number:   node.Get("number").String(),
		ImageURL: node.Get("image").String(),
	}
	if pet.Name == "" {
		return Pet{}, fmt.Errorf("%w: pet without a name", ErrMalformedResponse)
	}

	node.Get("moves").ForEach(func(_, move gjson.Result) bool {
		pet.Moves = append(pet.Moves, Move{
			Name:  move.Get("name").String(),
			Type:  move.Get("type").String(),
			Power: int(move.Get("power").Int()),
		})
		return true
	})

	return pet, nil
}
