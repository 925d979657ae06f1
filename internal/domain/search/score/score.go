// Package score computes keyword-overlap relevance between a query and a document.
package score

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/domain/search/mode"
	"github.com/kailas-cloud/faqdex/internal/domain/search/token"
)

// Weights are the per-token contributions of a title and a body match.
type Weights struct {
	Title int
	Body  int
}

// DefaultWeights doubles a title match relative to a body match.
func DefaultWeights() Weights {
	return Weights{Title: 2, Body: 1}
}

// Validate ensures title terms outweigh body-only terms.
func (w Weights) Validate() error {
	if w.Body < 1 {
		return fmt.Errorf("body weight must be >= 1, got %d", w.Body)
	}
	if w.Title <= w.Body {
		return fmt.Errorf("title weight (%d) must be greater than body weight (%d)", w.Title, w.Body)
	}
	return nil
}

// Scorer scores documents against tokenized queries. Safe for concurrent use.
type Scorer struct {
	mode    mode.Mode
	weights Weights
}

// New creates a Scorer. Empty mode means mode.Default.
func New(m mode.Mode, w Weights) (Scorer, error) {
	if m == "" {
		m = mode.Default
	}
	if !m.IsValid() {
		return Scorer{}, fmt.Errorf("invalid match mode: %q", m)
	}
	if err := w.Validate(); err != nil {
		return Scorer{}, err
	}
	return Scorer{mode: m, weights: w}, nil
}

// Default returns a containment scorer with default weights.
func Default() Scorer {
	return Scorer{mode: mode.Default, weights: DefaultWeights()}
}

// Mode returns the matching mode.
func (s Scorer) Mode() mode.Mode { return s.mode }

// Weights returns the configured weights.
func (s Scorer) Weights() Weights { return s.weights }

// Score returns the relevance of doc for the given query tokens.
// Tokens shorter than token.MinTokenLength are ignored; repeated tokens count
// once per occurrence. The result is never negative.
func (s Scorer) Score(queryTokens []string, doc *document.Document) int {
	toks := token.Significant(queryTokens)
	if len(toks) == 0 {
		return 0
	}

	inTitle, inBody := s.matchers(doc)

	total := 0
	for _, t := range toks {
		if inTitle(t) {
			total += s.weights.Title
		}
		if inBody(t) {
			total += s.weights.Body
		}
	}
	return total
}

func (s Scorer) matchers(doc *document.Document) (title, body func(string) bool) {
	if s.mode == mode.Membership {
		return setMatcher(token.Set(doc.Title())), setMatcher(token.Set(doc.Content()))
	}
	return containsMatcher(token.Normalize(doc.Title())), containsMatcher(token.Normalize(doc.Content()))
}

func containsMatcher(text string) func(string) bool {
	return func(t string) bool { return strings.Contains(text, t) }
}

func setMatcher(set map[string]struct{}) func(string) bool {
	return func(t string) bool {
		_, ok := set[t]
		return ok
	}
}
