package chi

import (
	"context"

	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
)

// DocumentLoader loads the FAQ document set for listing.
type DocumentLoader interface {
	Load(ctx context.Context) (domdoc.Set, error)
}
