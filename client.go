package saucenao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kailas-cloud/saucenao/internal/db"
	dbRedis "github.com/kailas-cloud/saucenao/internal/db/redis"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
	"github.com/kailas-cloud/saucenao/internal/metrics"
	"github.com/kailas-cloud/saucenao/internal/repository/relcache"
	"github.com/kailas-cloud/saucenao/internal/transport/relations"
	sntransport "github.com/kailas-cloud/saucenao/internal/transport/saucenao"
	searchuc "github.com/kailas-cloud/saucenao/internal/usecase/search"
	"github.com/kailas-cloud/saucenao/internal/version"
)

const defaultReadinessTimeout = 5 * time.Second

// Client is the SauceNAO SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
	obs       *observer
}

// New creates a Client. With WithRelationCache it also connects to the
// cache and waits for it to answer.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.cacheAddr != "" {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    []string{cfg.cacheAddr},
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("saucenao: create relation cache: %w", err)
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("saucenao: relation cache not ready: %w", err)
		}
		store = s
	}

	c, err := wireClient(cfg, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func (c *clientConfig) validate() error {
	switch {
	case c.params.ResultsLimit <= 0:
		return fmt.Errorf("saucenao: results limit must be positive, got %d", c.params.ResultsLimit)
	case c.params.DB < 0:
		return fmt.Errorf("saucenao: db must not be negative, got %d", c.params.DB)
	case c.minSimilarity < 0 || c.minSimilarity > 100:
		return fmt.Errorf("saucenao: min similarity must be between 0 and 100, got %v", c.minSimilarity)
	case c.tolerance < 0:
		return fmt.Errorf("saucenao: priority tolerance must not be negative, got %v", c.tolerance)
	case c.timeout < 0:
		return fmt.Errorf("saucenao: timeout must not be negative, got %v", c.timeout)
	case c.baseURL == "":
		return errors.New("saucenao: base url required")
	}
	return nil
}

// wireClient assembles the lookup pipeline. store may be nil (no relation cache).
func wireClient(cfg *clientConfig, store db.Store) (*Client, error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	logger := obs.logger

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}
	relMetrics := metrics.NewRelations()
	if cfg.metricsReg != nil {
		httpMetrics := metrics.NewHTTPClient()
		if err := httpMetrics.Register(cfg.metricsReg); err != nil {
			return nil, err
		}
		if err := relMetrics.Register(cfg.metricsReg); err != nil {
			return nil, err
		}
		instrumented := *hc
		instrumented.Transport = httpMetrics.InstrumentTransport(hc.Transport)
		hc = &instrumented
	}
	ua := version.UserAgent()

	var lookuper relations.Lookuper = relations.NewClient(&relations.Config{
		BaseURL:    cfg.relationsURL,
		HTTPClient: hc,
		UserAgent:  ua,
		Logger:     logger,
		Metrics:    relMetrics,
	})
	if store != nil {
		lookuper = relcache.New(lookuper, store, cfg.cacheTTL, relMetrics.CacheTotal, logger)
	}
	classifier := source.NewClassifier(relations.NewSoft(lookuper, logger))

	transport := sntransport.NewClient(&sntransport.Config{
		BaseURL:    cfg.baseURL,
		HTTPClient: hc,
		UserAgent:  ua,
		Logger:     logger,
	})

	svc := searchuc.New(transport, classifier, searchuc.Config{
		Params: cfg.params,
		Strict: cfg.strict,
		Rank: searchuc.RankOptions{
			MinSimilarity: cfg.minSimilarity,
			Priority:      cfg.priority,
			Tolerance:     cfg.tolerance,
		},
	}, logger)

	return &Client{store: store, searchSvc: svc, obs: obs}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// FromURL looks up an image by URL.
func (c *Client) FromURL(ctx context.Context, imageURL string) (res *Results, err error) {
	defer func(start time.Time) { c.obs.observe(opFromURL, start, err) }(time.Now())

	r, err := c.searchSvc.FromURL(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FromFile uploads a local image. The file is closed before returning.
func (c *Client) FromFile(ctx context.Context, path string) (res *Results, err error) {
	defer func(start time.Time) { c.obs.observe(opFromFile, start, err) }(time.Now())

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, err := c.searchSvc.FromUpload(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FromReader uploads image content read from r under the given file name.
// The caller keeps ownership of r.
func (c *Client) FromReader(ctx context.Context, name string, r io.Reader) (res *Results, err error) {
	defer func(start time.Time) { c.obs.observe(opFromReader, start, err) }(time.Now())

	out, err := c.searchSvc.FromUpload(ctx, name, r)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Test runs a test-mode lookup of a known image and reports whether the
// account and API are usable. It never returns an error: failures are in
// Diagnostic.Err.
func (c *Client) Test(ctx context.Context) Diagnostic {
	start := time.Now()
	d := c.searchSvc.Test(ctx)
	c.obs.observe(opTest, start, d.Err)
	return d
}
