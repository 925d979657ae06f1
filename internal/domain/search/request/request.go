package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/faqdex/internal/domain"
)

// Question parameter limits.
const (
	// MaxQuestionLength is the maximum question length in bytes.
	MaxQuestionLength = 4096
	DefaultTopK       = 3
	MaxTopK           = 20
)

// Request is a validated question.
type Request struct {
	question   string
	topK       int
	receivedAt time.Time
}

// New validates and normalizes a question.
// The question is trimmed; an empty question is valid and yields the fixed
// empty-question answer. topK=0 means "use the service default".
func New(question string, topK int, receivedAt time.Time) (Request, error) {
	q := strings.TrimSpace(question)
	if len(q) > MaxQuestionLength {
		return Request{}, fmt.Errorf("%w: question too long (max %d bytes)", domain.ErrInvalidInput, MaxQuestionLength)
	}
	if topK < 0 || topK > MaxTopK {
		return Request{}, fmt.Errorf("%w: top_k must be between 1 and %d", domain.ErrInvalidInput, MaxTopK)
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	return Request{question: q, topK: topK, receivedAt: receivedAt}, nil
}

// Question returns the trimmed question text.
func (r *Request) Question() string { return r.question }

// IsEmpty reports whether the question has no text.
func (r *Request) IsEmpty() bool { return r.question == "" }

// TopK returns the requested result count, or 0 for the service default.
func (r *Request) TopK() int { return r.topK }

// ReceivedAt returns when the request arrived.
func (r *Request) ReceivedAt() time.Time { return r.receivedAt }
