package faqdex

import "github.com/kailas-cloud/faqdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput              = domain.ErrInvalidInput
	ErrInvalidDocument           = domain.ErrInvalidDocument
	ErrDocumentSourceUnavailable = domain.ErrDocumentSourceUnavailable
)
