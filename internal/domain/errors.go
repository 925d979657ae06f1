package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a malformed or out-of-range request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDocument signals a document that fails validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrDocumentSourceUnavailable signals that the FAQ collection could not be loaded or parsed.
	ErrDocumentSourceUnavailable = errors.New("document source unavailable")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// SourceError wraps ErrDocumentSourceUnavailable with the failing source name.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrDocumentSourceUnavailable.Error(), e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error { return []error{ErrDocumentSourceUnavailable, e.Err} }

// NewSourceError creates a document source failure for the named source.
func NewSourceError(source string, err error) error {
	return &SourceError{Source: source, Err: err}
}
