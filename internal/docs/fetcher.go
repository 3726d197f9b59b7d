// Package docs fetches the public Limelink documentation and memoizes it.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"limelink-mcp/internal/cache"
	"limelink-mcp/internal/metrics"
)

const (
	DefaultBaseURL = "https://limelink.org"

	indexKey     = "llms.txt"
	docKeyPrefix = "doc:"

	maxDocumentSize = 4 * 1024 * 1024
	fetchTimeout    = 30 * time.Second
)

// FetchError reports a non-2xx answer from the documentation host.
type FetchError struct {
	Resource   string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: HTTP %d", e.Resource, e.StatusCode)
}

type Config struct {
	// BaseURL of the documentation site (default: https://limelink.org).
	BaseURL string
	// Custom HTTP client (for testing or special configs)
	HTTPClient *http.Client
}

// Fetcher serves llms.txt and per-slug markdown pages, fetching each over
// the network only when the store has no live copy.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	store      cache.Store
	group      singleflight.Group
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher that memoizes through store.
// A nil store gets a private memory store with the default TTL.
func NewFetcher(cfg Config, store cache.Store, logger *zap.Logger) *Fetcher {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if store == nil {
		store = cache.NewMemoryStore(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: defaultTransport(),
		}
	}

	return &Fetcher{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
		logger:     logger.Named("docs"),
	}
}

// FetchIndex returns the documentation index (llms.txt).
func (f *Fetcher) FetchIndex(ctx context.Context) (string, error) {
	return f.fetch(ctx, indexKey, "llms.txt", f.baseURL+"/llms.txt")
}

// FetchDoc returns the markdown page for slug. Unknown slugs fail with
// *InvalidSlugError before any network access.
func (f *Fetcher) FetchDoc(ctx context.Context, slug string) (string, error) {
	if !IsValidSlug(slug) {
		return "", &InvalidSlugError{Slug: slug, Valid: ValidSlugs()}
	}
	return f.fetch(ctx, docKeyPrefix+slug, fmt.Sprintf("document '%s'", slug), f.baseURL+"/md/"+slug+".md")
}

func (f *Fetcher) fetch(ctx context.Context, key, resource, url string) (string, error) {
	if text, ok := f.lookup(ctx, key); ok {
		return text, nil
	}

	// Concurrent misses on one key share a single request. The request is
	// detached from the caller that started it, so one caller giving up
	// does not fail the others; each caller still stops waiting on its own
	// ctx.
	ch := f.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		// A flight that finished after our lookup may have filled the store.
		if text, hit, err := f.store.Get(fetchCtx, key); err == nil && hit {
			return text, nil
		}

		text, err := f.get(fetchCtx, key, resource, url)
		if err != nil {
			return "", err
		}

		// Best effort; a failed Set is logged by the store decorator.
		_ = f.store.Set(fetchCtx, key, text)
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			f.logger.Debug("doc fetch shared", zap.String("cache_key", key))
		}
		return res.Val.(string), nil
	}
}

// lookup is the one cache check counted per call. Store errors count as
// misses for the caller.
func (f *Fetcher) lookup(ctx context.Context, key string) (string, bool) {
	text, hit, err := f.store.Get(ctx, key)

	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	metrics.DocCacheResultsTotal.WithLabelValues(result).Inc()

	return text, err == nil && hit
}

func (f *Fetcher) get(ctx context.Context, key, resource, url string) (string, error) {
	start := time.Now()
	kind := "doc"
	if key == indexKey {
		kind = "index"
	}

	text, status, err := f.doGet(ctx, url)
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case status < 200 || status >= 300:
		outcome = "status"
	}
	metrics.DocFetchSeconds.WithLabelValues(kind, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		f.logger.Error("doc fetch failed",
			zap.String("url", url),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return "", fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	if status < 200 || status >= 300 {
		f.logger.Warn("doc fetch non-success status",
			zap.String("url", url),
			zap.Int("status", status),
		)
		return "", &FetchError{Resource: resource, StatusCode: status, Status: http.StatusText(status)}
	}

	f.logger.Info("doc fetched",
		zap.String("url", url),
		zap.Int("bytes", len(text)),
		zap.Duration("duration", time.Since(start)),
	)
	return text, nil
}

// doGet performs one GET and returns the body as text with the status code.
func (f *Fetcher) doGet(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build HTTP request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxDocumentSize {
		return "", resp.StatusCode, errors.New("document exceeds size limit")
	}
	return string(body), resp.StatusCode, nil
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
