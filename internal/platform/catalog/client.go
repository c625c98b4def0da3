// Package catalog is the order service's client for the remote catalog
// service. Lookups are advisory: every failure mode resolves to "no book".
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orderservice/internal/entity"
	"orderservice/internal/platform/resilience"

	"golang.org/x/time/rate"
)

const booksRootAPI = "/books/"

// ErrBookNotFound is what a 404 from the catalog turns into before the
// fallback policy absorbs it.
var ErrBookNotFound = errors.New("catalog: book not found")

// StatusError is a non-2xx, non-404 response from the catalog.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: unexpected status code: %d", e.StatusCode)
}

type Config struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	// RPS throttles outbound requests; zero disables the limiter.
	RPS float64
}

// DefaultConfig is the lookup policy: 3s per attempt, 3 retries at
// 100ms, 200ms, 300ms.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		UserAgent:   "orderservice",
		Timeout:     3 * time.Second,
		MaxRetries:  3,
		BackoffBase: 100 * time.Millisecond,
	}
}

type lookupResult struct {
	book  entity.Book
	found bool
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	policies   []resilience.Policy[lookupResult]
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	sleep      resilience.Sleeper
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithSleeper replaces the sleeper used between retries.
func WithSleeper(sleep resilience.Sleeper) Option {
	return func(o *options) {
		o.sleep = sleep
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	o := options{
		// Per-attempt deadlines come from the timeout policy.
		httpClient: &http.Client{},
		sleep:      resilience.Sleep,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		httpClient: o.httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
	}
	if cfg.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	// Order matters: a timeout or a 404 resolves to empty before the retry
	// stage can see it, so only transient failures are retried.
	empty := lookupResult{}
	c.policies = []resilience.Policy[lookupResult]{
		resilience.Timeout(cfg.Timeout, empty),
		resilience.FallbackOn(func(err error) bool { return errors.Is(err, ErrBookNotFound) }, empty),
		resilience.Retry[lookupResult](cfg.MaxRetries, resilience.LinearBackoff(cfg.BackoffBase), o.sleep),
		resilience.Fallback(empty),
	}
	return c
}

// GetBookByISBN returns the catalog's book for isbn. The bool is false when
// the book is unknown or the catalog could not be reached in time.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (entity.Book, bool) {
	attempt := 0
	lookup := resilience.Chain(func(ctx context.Context) (lookupResult, error) {
		attempt++
		return c.fetch(ctx, isbn, attempt)
	}, c.policies...)

	res, err := lookup(ctx)
	if err != nil || !res.found {
		log.Printf("catalog lookup empty isbn=%s attempts=%d", isbn, attempt)
		return entity.Book{}, false
	}
	return res.book, true
}

func (c *Client) fetch(ctx context.Context, isbn string, attempt int) (lookupResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return lookupResult{}, err
		}
	}

	u := c.baseURL + booksRootAPI + url.PathEscape(isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return lookupResult{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("catalog request error isbn=%s attempt=%d error=%v", isbn, attempt, err)
		return lookupResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return lookupResult{}, ErrBookNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Printf("catalog request failed isbn=%s attempt=%d status=%d", isbn, attempt, resp.StatusCode)
		return lookupResult{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var book entity.Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		log.Printf("catalog decode error isbn=%s attempt=%d error=%v", isbn, attempt, err)
		return lookupResult{}, fmt.Errorf("catalog: decode book: %w", err)
	}
	return lookupResult{book: book, found: true}, nil
}
