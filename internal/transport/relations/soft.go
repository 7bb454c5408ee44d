package relations

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao/internal/domain/source"
	logpkg "github.com/kailas-cloud/saucenao/internal/logger"
)

// Compile-time check: Soft implements source.Resolver.
var _ source.Resolver = (*Soft)(nil)

// Soft adapts a Lookuper to source.Resolver. Lookup errors are logged and
// resolve to an empty mapping.
type Soft struct {
	inner  Lookuper
	logger *zap.Logger
}

// NewSoft creates a failing-soft resolver.
func NewSoft(inner Lookuper, logger *zap.Logger) *Soft {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Soft{inner: inner, logger: logger}
}

// Resolve implements source.Resolver.
func (s *Soft) Resolve(ctx context.Context, anidbID int) source.Relations {
	log := logpkg.FromContext(ctx, s.logger)
	ids, err := s.inner.Lookup(ctx, anidbID)
	if err != nil {
		log.Error("Relation lookup failed", zap.Int("anidb_id", anidbID), zap.Error(err))
		return source.Relations{}
	}
	if len(ids) == 0 {
		log.Info("No relations found for anime", zap.Int("anidb_id", anidbID))
	}
	return ids
}
