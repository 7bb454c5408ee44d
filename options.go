package saucenao

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao/internal/domain/request"
	"github.com/kailas-cloud/saucenao/internal/repository/relcache"
	"github.com/kailas-cloud/saucenao/internal/transport/relations"
	sntransport "github.com/kailas-cloud/saucenao/internal/transport/saucenao"
	searchuc "github.com/kailas-cloud/saucenao/internal/usecase/search"
)

const defaultTimeout = 60 * time.Second

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	params request.Params
	strict bool

	minSimilarity float64
	priority      []int
	tolerance     float64

	baseURL      string
	relationsURL string
	httpClient   *http.Client
	timeout      time.Duration

	cacheAddr     string
	cachePassword string
	cacheTTL      time.Duration

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		params:       request.DefaultParams(),
		tolerance:    searchuc.DefaultPriorityTolerance,
		baseURL:      sntransport.DefaultBaseURL,
		relationsURL: relations.DefaultBaseURL,
		timeout:      defaultTimeout,
		cacheTTL:     relcache.DefaultTTL,
	}
}

// WithAPIKey sets the SauceNAO API key. Without one, lookups run with the
// anonymous quota.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.params.APIKey = key
	})
}

// WithDBMask restricts the search to the indexes whose bits are set.
func WithDBMask(mask int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.params.DBMask = mask
	})
}

// WithDBMaskDisable excludes the indexes whose bits are set.
func WithDBMaskDisable(mask int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.params.DBMaskDisable = mask
	})
}

// WithDB searches a single index. Default: 999 (all indexes).
func WithDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.params.DB = db
	})
}

// WithResultsLimit sets how many results the server returns. Default: 6.
func WithResultsLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.params.ResultsLimit = n
	})
}

// WithTestMode makes the server return one result per index.
func WithTestMode() Option {
	return optionFunc(func(c *clientConfig) {
		c.params.TestMode = true
	})
}

// WithStrictMode turns partial index outages (positive status) into
// ErrUnknownStatus instead of a logged warning.
func WithStrictMode() Option {
	return optionFunc(func(c *clientConfig) {
		c.strict = true
	})
}

// WithMinSimilarity drops matches at or below the given percentage (0..100).
// Zero disables the filter.
func WithMinSimilarity(pct float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.minSimilarity = pct
	})
}

// WithPriority lists index ids whose matches are moved to the front, in
// this order, as long as they are within the priority tolerance of the best
// match.
func WithPriority(indexIDs ...int) Option {
	return optionFunc(func(c *clientConfig) {
		c.priority = append([]int(nil), indexIDs...)
	})
}

// WithPriorityTolerance sets how many similarity points below the best match
// a priority index may be and still be promoted. Default: 10. Zero disables
// the window.
func WithPriorityTolerance(points float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.tolerance = points
	})
}

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithRelationsURL overrides the anime id mapping service.
func WithRelationsURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.relationsURL = u
	})
}

// WithHTTPClient sets the HTTP client used for every request.
// WithTimeout is ignored when a client is given.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// Default: 60s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRelationCache caches anime id mappings in Redis or Valkey.
// ttl <= 0 uses a week.
func WithRelationCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddr = addr
		c.cachePassword = password
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations),
// relation lookup metrics and outbound HTTP metrics on the given registerer.
// Collectors already registered there are reused. Pass nil to disable
// (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
