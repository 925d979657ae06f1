package answer

import (
	"context"

	"github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/domain/search/result"
)

// DocumentSource loads the FAQ document set.
type DocumentSource interface {
	Load(ctx context.Context) (document.Set, error)
}

// Ranker orders documents by relevance to a query.
type Ranker interface {
	Rank(query string, set document.Set, k int) []result.Candidate
}
