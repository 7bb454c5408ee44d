package search

import (
	"context"

	"github.com/kailas-cloud/saucenao/internal/domain/request"
	"github.com/kailas-cloud/saucenao/internal/domain/result"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
)

// Transport sends a lookup to the search endpoint. It returns an error only
// when no HTTP response was obtained; API-level failures come back in the
// envelope for Validate to classify.
type Transport interface {
	Search(ctx context.Context, req *request.Request) (result.Envelope, error)
}

// Classifier turns ranked raw matches into typed sources.
type Classifier interface {
	ClassifyAll(raws []result.Raw) []source.Source
}
