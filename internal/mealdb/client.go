// Package mealdb is a client for the public recipe search API.
package mealdb

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrFetch wraps every transport, status and decode failure.
var ErrFetch = errors.New("fetch meal data")

// maxBody bounds how much of a response is read.
const maxBody = 4 << 20

// Searcher looks meals up by name.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Meal, error)
}

// Client calls {base}/search.php?s={query}. It never retries or caches.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search returns every match for query in API order. No matches is an empty
// slice with a nil error.
func (c *Client) Search(ctx context.Context, query string) ([]Meal, error) {
	reqID := uuid.NewString()
	log := c.log.With(zap.String("request_id", reqID), zap.String("query", query))
	start := time.Now()

	u := c.baseURL + "/search.php?" + url.Values{"s": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("meal search failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		log.Warn("meal search read failed", zap.Error(err))
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("meal search bad status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		log.Warn("meal search decode failed", zap.Error(err))
		return nil, fmt.Errorf("%w: decode: %w", ErrFetch, err)
	}

	meals := make([]Meal, 0, len(sr.Meals))
	for _, m := range sr.Meals {
		meals = append(meals, m.Meal())
	}
	log.Info("meal search done",
		zap.Int("matches", len(meals)),
		zap.Duration("took", time.Since(start)),
	)
	return meals, nil
}
