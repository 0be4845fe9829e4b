// Package creature fetches creature records and sprites from PokeAPI.
package creature

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 endpoint
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	// DefaultMaxID covers the first-generation roster
	DefaultMaxID = 150

	// maxBodySize caps record and sprite downloads
	maxBodySize = 4 << 20
)

var (
	// ErrInvalidID is returned for ids outside [1, MaxID]
	ErrInvalidID = errors.New("creature id out of range")
	// ErrNoName is returned when a record decodes without a name
	ErrNoName    = errors.New("creature record has no name")
	// ErrStatus wraps any non-2xx response from the API or sprite host
	ErrStatus    = errors.New("unexpected response status")
)

// Record is the subset of a creature returned by the API that the game uses
type Record struct {
	ID        int
	Name      string
	SpriteURL string // Empty when the API has no front sprite
}

// apiRecord mirrors the JSON payload; front_default may be null
type apiRecord struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
}

// Client talks to a PokeAPI compatible server
type Client struct {
	baseURL string
	maxID   int
	http    *http.Client
}

// NewClient creates a client. A non-positive maxID falls back to DefaultMaxID
// and a non-positive timeout leaves the request bounded only by its context.
func NewClient(baseURL string, maxID int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxID <= 0 {
		maxID = DefaultMaxID
	}
	hc := cleanhttp.DefaultClient()
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		maxID:   maxID,
		http:    hc,
	}
}

// MaxID returns the highest id the client accepts
func (c *Client) MaxID() int {
	return c.maxID
}

// RandomID returns an id in [1, maxID]
func RandomID(rng *rand.Rand, maxID int) int {
	if maxID <= 1 {
		return 1
	}
	return rng.IntN(maxID) + 1
}

// Fetch retrieves the record for id
func (c *Client) Fetch(ctx context.Context, id int) (Record, error) {
	if id < 1 || id > c.maxID {
		return Record{}, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidID, id, c.maxID)
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/pokemon/%d", c.baseURL, id))
	if err != nil {
		return Record{}, fmt.Errorf("fetch creature %d: %w", id, err)
	}
	defer body.Close()

	var payload apiRecord
	if err := json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(&payload); err != nil {
		return Record{}, fmt.Errorf("decode creature %d: %w", id, err)
	}
	if payload.Name == "" {
		return Record{}, fmt.Errorf("creature %d: %w", id, ErrNoName)
	}

	rec := Record{ID: id, Name: payload.Name}
	if payload.Sprites.FrontDefault != nil {
		rec.SpriteURL = *payload.Sprites.FrontDefault
	}
	return rec, nil
}

// Sprite downloads and decodes the PNG at url
func (c *Client) Sprite(ctx context.Context, url string) (image.Image, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch sprite: %w", err)
	}
	defer body.Close()

	img, err := png.Decode(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("decode sprite: %w", err)
	}
	return img, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, image/png")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	return resp.Body, nil
}
