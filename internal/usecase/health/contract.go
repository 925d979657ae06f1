package health

import (
	"context"

	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
)

// DocumentLoader loads the FAQ document set.
type DocumentLoader interface {
	Load(ctx context.Context) (domdoc.Set, error)
}

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}
