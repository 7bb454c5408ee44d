// Package relations talks to the anime id mapping service
// (https://relations.yuna.moe) and adapts it to source.Resolver.
package relations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/saucenao/internal/domain/source"
	"github.com/kailas-cloud/saucenao/internal/metrics"
)

// DefaultBaseURL is the public id mapping service.
const DefaultBaseURL = "https://relations.yuna.moe"

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 64 << 10
)

// ErrUnexpectedStatus signals a status other than 200 or 204.
var ErrUnexpectedStatus = errors.New("relations: unexpected status")

// Lookuper fetches cross-provider ids for an AniDB anime id.
type Lookuper interface {
	Lookup(ctx context.Context, anidbID int) (source.Relations, error)
}

// Config holds the id mapping client settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	Logger     *zap.Logger
	// Timeout bounds one shared fetch, independent of any caller's context.
	Timeout time.Duration
	// Metrics receives request counts and durations. Nil means unregistered collectors.
	Metrics *metrics.Relations
}

// Client queries the id mapping service. Concurrent lookups of the same id
// share one request.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *zap.Logger
	timeout   time.Duration
	metrics   *metrics.Relations
	group     singleflight.Group
}

// NewClient creates an id mapping client. Zero fields fall back to defaults.
func NewClient(cfg *Config) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		http:      cfg.HTTPClient,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
		timeout:   cfg.Timeout,
		metrics:   cfg.Metrics,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.metrics == nil {
		c.metrics = metrics.NewRelations()
	}
	return c
}

// Lookup returns the mapping for anidbID. A 204 response means no mapping
// is known and yields an empty result without error.
//
// The shared request runs detached from ctx, so one caller giving up does
// not fail the others waiting on the same id.
func (c *Client) Lookup(ctx context.Context, anidbID int) (source.Relations, error) {
	ch := c.group.DoChan(strconv.Itoa(anidbID), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, anidbID)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("lookup relations: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(source.Relations), nil
	}
}

func (c *Client) fetch(ctx context.Context, anidbID int) (source.Relations, error) {
	q := url.Values{}
	q.Set("source", source.ProviderAniDB)
	q.Set("id", strconv.Itoa(anidbID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ids?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		c.metrics.RequestsTotal.WithLabelValues("empty").Inc()
		return source.Relations{}, nil
	default:
		c.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&raw); err != nil {
		c.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	ids := make(source.Relations, len(raw))
	for provider, v := range raw {
		if n, ok := v.(float64); ok && n > 0 {
			ids[provider] = int(n)
		}
	}
	status := "found"
	if len(ids) == 0 {
		status = "empty"
	}
	c.metrics.RequestsTotal.WithLabelValues(status).Inc()
	c.logger.Debug("Relations fetched", zap.Int("anidb_id", anidbID), zap.Int("providers", len(ids)))
	return ids, nil
}
