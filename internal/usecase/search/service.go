package search

import (
	"sort"

	"github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/domain/search/request"
	"github.com/kailas-cloud/faqdex/internal/domain/search/result"
	"github.com/kailas-cloud/faqdex/internal/domain/search/score"
	"github.com/kailas-cloud/faqdex/internal/domain/search/token"
)

// Service ranks documents by keyword overlap with a query.
type Service struct {
	scorer      score.Scorer
	filter      bool
	defaultTopK int
}

// New creates a ranking service. Zero-score filtering is on by default.
func New(scorer score.Scorer) *Service {
	return &Service{
		scorer:      scorer,
		filter:      true,
		defaultTopK: request.DefaultTopK,
	}
}

// WithFilter toggles dropping candidates with score <= 0.
func (s *Service) WithFilter(enabled bool) *Service {
	s.filter = enabled
	return s
}

// WithDefaultTopK sets the cutoff used when Rank is called with k <= 0.
func (s *Service) WithDefaultTopK(k int) *Service {
	if k > 0 {
		s.defaultTopK = k
	}
	return s
}

// DefaultTopK returns the cutoff used when Rank is called with k <= 0.
func (s *Service) DefaultTopK() int { return s.defaultTopK }

// Rank scores every document in set, sorts by descending score and returns
// at most k candidates. Ties keep source order.
func (s *Service) Rank(query string, set document.Set, k int) []result.Candidate {
	if k <= 0 {
		k = s.defaultTopK
	}

	qTokens := token.Tokenize(query)
	if len(qTokens) == 0 || set.Len() == 0 {
		return nil
	}

	candidates := make([]result.Candidate, 0, set.Len())
	for _, doc := range set.All() {
		candidates = append(candidates, result.New(doc, s.scorer.Score(qTokens, &doc)))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() > candidates[j].Score()
	})

	if s.filter {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.Matched() {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
