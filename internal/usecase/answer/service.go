package answer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domanswer "github.com/kailas-cloud/faqdex/internal/domain/answer"
	"github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/domain/search/request"
	"github.com/kailas-cloud/faqdex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/faqdex/internal/logger"
	"github.com/kailas-cloud/faqdex/internal/metrics"
)

// Service answers questions from the FAQ document set.
type Service struct {
	source DocumentSource
	ranker Ranker
	opts   Options
	now    func() time.Time
}

// New creates an answer service. Zero-valued option fields take their defaults.
func New(source DocumentSource, ranker Ranker, opts Options) *Service {
	return &Service{
		source: source,
		ranker: ranker,
		opts:   opts.withDefaults(),
		now:    time.Now,
	}
}

// WithClock replaces the wall clock used for latency measurement.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Options returns the effective answer settings.
func (s *Service) Options() Options { return s.opts }

// Ask answers a single question. A miss is a successful result with hints;
// a document source failure is returned as an error.
func (s *Service) Ask(ctx context.Context, req *request.Request) (domanswer.Result, error) {
	log := logpkg.FromContext(ctx)

	if req.IsEmpty() {
		metrics.AnswersTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return domanswer.Result{
			Answer:    s.opts.EmptyMessage,
			Citations: []domanswer.Citation{},
			Meta:      domanswer.Meta{Model: s.opts.ModelLabel},
		}, nil
	}

	set, err := s.load(ctx)
	if err != nil {
		metrics.AnswersTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return domanswer.Result{}, fmt.Errorf("load documents: %w", err)
	}

	ranked := s.ranker.Rank(req.Question(), set, req.TopK())

	if len(ranked) == 0 || !ranked[0].Matched() {
		res := s.fallback(set)
		res.Meta.LatencyMs = s.latency(req)
		metrics.AnswersTotal.WithLabelValues(metrics.OutcomeNoMatch).Inc()
		log.Debug("no matching document",
			zap.Int("documents", set.Len()),
			zap.Int64("latency_ms", res.Meta.LatencyMs),
		)
		return res, nil
	}

	res := s.assemble(ranked)
	res.Meta.LatencyMs = s.latency(req)
	metrics.AnswersTotal.WithLabelValues(metrics.OutcomeAnswered).Inc()
	metrics.CitationsPerAnswer.Observe(float64(len(res.Citations)))
	log.Debug("answered from documents",
		zap.String("top_id", ranked[0].ID()),
		zap.Int("top_score", ranked[0].Score()),
		zap.Int("citations", len(res.Citations)),
		zap.Int64("latency_ms", res.Meta.LatencyMs),
	)
	return res, nil
}

func (s *Service) load(ctx context.Context) (document.Set, error) {
	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}
	set, err := s.source.Load(ctx)
	if err != nil {
		return document.Set{}, fmt.Errorf("document source: %w", err)
	}
	return set, nil
}

// assemble builds the answer from ranked candidates whose head scored above zero.
func (s *Service) assemble(ranked []result.Candidate) domanswer.Result {
	citations := make([]domanswer.Citation, 0, len(ranked))
	matched := 0
	for i := range ranked {
		if !ranked[i].Matched() {
			continue
		}
		matched++
		doc := ranked[i].Document()
		citations = append(citations, domanswer.Citation{
			ID:      doc.ID(),
			Title:   doc.Title(),
			Snippet: domanswer.Snippet(doc.Content(), s.opts.SnippetLength),
			Score:   ranked[i].Score(),
		})
	}

	best := ranked[0].Document()
	text := best.Content()
	if s.opts.Style == StyleSnippet {
		text = domanswer.Snippet(best.Content(), s.snippetLength())
		if matched > 1 {
			text += "\n\n" + s.opts.DisambiguationPrompt
		}
	}

	return domanswer.Result{
		Answer:    text,
		Citations: citations,
		Meta:      domanswer.Meta{Model: s.opts.ModelLabel},
	}
}

func (s *Service) fallback(set document.Set) domanswer.Result {
	head := set.Head(s.opts.MaxSuggestions)
	suggestions := make([]domanswer.Suggestion, 0, len(head))
	for i := range head {
		suggestions = append(suggestions, domanswer.Suggestion{
			ID:    head[i].ID(),
			Title: head[i].Title(),
			Tags:  head[i].Tags(),
		})
	}

	categories := make([]string, len(s.opts.Categories))
	copy(categories, s.opts.Categories)

	return domanswer.Result{
		Answer:    s.opts.NotFoundMessage,
		Citations: []domanswer.Citation{},
		Meta:      domanswer.Meta{Model: s.opts.ModelLabel},
		Hints: &domanswer.Hints{
			Categories:  categories,
			Suggestions: suggestions,
		},
	}
}

// snippetLength is the answer prefix length in snippet style; it never keeps
// the full content, so a disabled citation snippet falls back to the default.
func (s *Service) snippetLength() int {
	if s.opts.SnippetLength > 0 {
		return s.opts.SnippetLength
	}
	return DefaultSnippetLength
}

func (s *Service) latency(req *request.Request) int64 {
	ms := s.now().Sub(req.ReceivedAt()).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
