package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movietag/internal/services"
)

const defaultTimeout = 15 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// SearchResult represents a single TMDB movie search match.
type SearchResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	Popularity    float64 `json:"popularity"`
}

// SearchResponse models the TMDB paginated search response.
type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Details is the movie detail payload. The commonly used fields are typed;
// Fields keeps the full JSON object so callers can look up arbitrary keys.
type Details struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	IMDbID      string `json:"imdb_id"`
	ReleaseDate string `json:"release_date"`

	Fields map[string]any `json:"-"`
}

// Lookup returns the raw value stored under key in the detail payload.
func (d *Details) Lookup(key string) (any, bool) {
	if d == nil || d.Fields == nil {
		return nil, false
	}
	value, ok := d.Fields[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// CastMember is a single billed cast entry.
type CastMember struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// CrewMember is a single crew entry.
type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

// Credits holds the cast and crew of a movie.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Catalog defines the TMDB operations used by the metadata pipeline.
type Catalog interface {
	SearchMovie(ctx context.Context, query string) (*SearchResponse, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*Details, error)
	GetMovieCredits(ctx context.Context, movieID int64) (*Credits, error)
}

// Client provides access to the TMDB API. Every call is a single attempt;
// retries and caching are left to callers.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches TMDB for the supplied title. Results keep the API
// relevance order.
func (c *Client) SearchMovie(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload SearchResponse
	if err := c.getJSON(ctx, "/search/movie", params, "search", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var raw json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), nil, "movie details", &raw); err != nil {
		return nil, err
	}

	var payload Details
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, "tmdb", "movie details", "decode response", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&payload.Fields); err != nil {
		return nil, services.Wrap(services.ErrTransport, "tmdb", "movie details", "decode response", err)
	}
	return &payload, nil
}

// GetMovieCredits fetches the cast and crew of a movie by TMDB ID.
func (c *Client) GetMovieCredits(ctx context.Context, movieID int64) (*Credits, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Credits
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, "movie credits", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, operation string, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransport, "tmdb", operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return services.Wrap(services.ErrTransport, "tmdb", operation, fmt.Sprintf("returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return services.Wrap(services.ErrTransport, "tmdb", operation, "decode response", err)
	}
	return nil
}
