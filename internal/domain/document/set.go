package document

import (
	"fmt"

	"github.com/kailas-cloud/faqdex/internal/domain"
)

// Set is an ordered, read-only snapshot of FAQ documents.
// Source order is preserved and is the tie-break order for ranking.
type Set struct {
	docs []Document
}

// NewSet builds a Set, rejecting duplicate document IDs.
func NewSet(docs []Document) (Set, error) {
	seen := make(map[string]struct{}, len(docs))
	out := make([]Document, 0, len(docs))
	for i := range docs {
		id := docs[i].ID()
		if _, dup := seen[id]; dup {
			return Set{}, fmt.Errorf("%w: duplicate document ID %q", domain.ErrInvalidDocument, id)
		}
		seen[id] = struct{}{}
		out = append(out, docs[i])
	}
	return Set{docs: out}, nil
}

// Len returns the number of documents.
func (s Set) Len() int { return len(s.docs) }

// At returns the i-th document in source order.
func (s Set) At(i int) Document { return s.docs[i] }

// All returns the documents in source order. The slice is a copy.
func (s Set) All() []Document {
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Head returns at most n documents from the start of the set.
func (s Set) Head(n int) []Document {
	if n <= 0 {
		return nil
	}
	if n > len(s.docs) {
		n = len(s.docs)
	}
	out := make([]Document, n)
	copy(out, s.docs[:n])
	return out
}
