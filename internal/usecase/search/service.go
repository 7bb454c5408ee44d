package search

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao/internal/domain/lookup"
	"github.com/kailas-cloud/saucenao/internal/domain/request"
	"github.com/kailas-cloud/saucenao/internal/domain/result"
	logpkg "github.com/kailas-cloud/saucenao/internal/logger"
)

// TestImageURL is the well-known image used by Test.
const TestImageURL = "https://saucenao.com/images/static/banner.gif"

// Config holds the per-client lookup settings.
type Config struct {
	Params request.Params
	Strict bool
	Rank   RankOptions
}

// Service runs lookups: send, validate, rank, classify.
type Service struct {
	transport  Transport
	classifier Classifier
	cfg        Config
	logger     *zap.Logger
}

// New creates a search service. logger may be nil.
func New(transport Transport, classifier Classifier, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{transport: transport, classifier: classifier, cfg: cfg, logger: logger}
}

// FromURL looks up a remote image.
func (s *Service) FromURL(ctx context.Context, imageURL string) (lookup.Results, error) {
	req, err := request.NewURL(s.cfg.Params, imageURL)
	if err != nil {
		return lookup.Results{}, fmt.Errorf("from url: %w", err)
	}
	return s.search(ctx, &req)
}

// FromUpload looks up uploaded image content. The caller owns file.
func (s *Service) FromUpload(ctx context.Context, name string, file io.Reader) (lookup.Results, error) {
	req, err := request.NewUpload(s.cfg.Params, name, file)
	if err != nil {
		return lookup.Results{}, fmt.Errorf("from upload: %w", err)
	}
	return s.search(ctx, &req)
}

// Test looks up TestImageURL in test mode. Failures are returned inside the
// Diagnostic together with whatever account data the server sent.
func (s *Service) Test(ctx context.Context) lookup.Diagnostic {
	p := s.cfg.Params
	p.TestMode = true
	req, err := request.NewURL(p, TestImageURL)
	if err != nil {
		return lookup.NewDiagnostic(nil, err)
	}

	body, err := s.fetch(ctx, &req)
	var h *result.Header
	if body != nil {
		h = &body.Header
	}
	return lookup.NewDiagnostic(h, err)
}

func (s *Service) search(ctx context.Context, req *request.Request) (lookup.Results, error) {
	body, err := s.fetch(ctx, req)
	if err != nil {
		return lookup.Results{}, err
	}
	ranked := Rank(body.Results, s.cfg.Rank)
	return lookup.NewResults(&body.Header, s.classifier.ClassifyAll(ranked)), nil
}

// fetch sends the request and validates the response. The decoded body is
// returned even when validation fails so Test can report the header.
func (s *Service) fetch(ctx context.Context, req *request.Request) (*result.Response, error) {
	log := logpkg.FromContext(ctx, s.logger).With(zap.String("lookup_id", uuid.NewString()))
	if req.IsUpload() {
		log.Debug("Executing lookup on upload", zap.String("file", req.FileName()))
	} else {
		log.Debug("Executing lookup on url", zap.String("url", req.ImageURL()))
	}

	env, err := s.transport.Search(ctx, req)
	if err != nil {
		log.Warn("Lookup transport failed", zap.Error(err))
		return nil, fmt.Errorf("search: %w", err)
	}

	policy := Policy{Strict: s.cfg.Strict, APIKeySet: req.Params().APIKey != ""}
	warning, err := Validate(env.StatusCode, env.Body, policy)
	if warning != "" {
		log.Warn("Lookup returned partial data",
			zap.Int("http_status", env.StatusCode),
			zap.String("warning", warning),
		)
	}
	if err != nil {
		log.Info("Lookup rejected", zap.Int("http_status", env.StatusCode), zap.Error(err))
		return env.Body, err
	}

	log.Debug("Lookup completed",
		zap.Int("results", len(env.Body.Results)),
		zap.Int("short_remaining", int(env.Body.Header.ShortRemaining)),
		zap.Int("long_remaining", int(env.Body.Header.LongRemaining)),
	)
	return env.Body, nil
}
