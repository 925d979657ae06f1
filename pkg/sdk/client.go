package faqdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqdex/internal/db"
	dbRedis "github.com/kailas-cloud/faqdex/internal/db/redis"
	domanswer "github.com/kailas-cloud/faqdex/internal/domain/answer"
	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/domain/search/mode"
	"github.com/kailas-cloud/faqdex/internal/domain/search/request"
	"github.com/kailas-cloud/faqdex/internal/domain/search/score"
	documentrepo "github.com/kailas-cloud/faqdex/internal/repository/document"
	"github.com/kailas-cloud/faqdex/internal/sample"
	answeruc "github.com/kailas-cloud/faqdex/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/faqdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/faqdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced in tests.
type answerUseCase interface {
	Ask(ctx context.Context, req *request.Request) (domanswer.Result, error)
}

type documentLoader interface {
	Load(ctx context.Context) (domdoc.Set, error)
}

// Client is the faqdex SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	source    documentLoader
	answerSvc answerUseCase
	healthSvc healthUseCase
	obs       *observer
	now       func() time.Time
}

// New creates a Client. Without a document option it serves the built-in
// sample FAQ. With WithRedis the provided context bounds the initial
// readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	ranker, err := buildRanker(cfg)
	if err != nil {
		return nil, err
	}

	answerOpts, err := buildAnswerOptions(cfg)
	if err != nil {
		return nil, err
	}

	src, store, err := buildSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return wireClient(src, store, ranker, answerOpts, obs), nil
}

func buildRanker(cfg *clientConfig) (*searchuc.Service, error) {
	m := mode.Containment
	if cfg.matchMode != "" {
		var err error
		if m, err = mode.Parse(string(cfg.matchMode)); err != nil {
			return nil, fmt.Errorf("faqdex: %w", err)
		}
	}

	w := score.DefaultWeights()
	if cfg.titleWeight != 0 || cfg.bodyWeight != 0 {
		w = score.Weights{Title: cfg.titleWeight, Body: cfg.bodyWeight}
	}
	scorer, err := score.New(m, w)
	if err != nil {
		return nil, fmt.Errorf("faqdex: %w", err)
	}

	if cfg.topK < 0 || cfg.topK > request.MaxTopK {
		return nil, fmt.Errorf("faqdex: top-k must be between 1 and %d", request.MaxTopK)
	}
	return searchuc.New(scorer).WithFilter(!cfg.keepZero).WithDefaultTopK(cfg.topK), nil
}

func buildSource(ctx context.Context, cfg *clientConfig) (documentrepo.Source, db.Store, error) {
	configured := 0
	for _, set := range []bool{cfg.docsJSON != nil, cfg.file != "", len(cfg.redisAddrs) > 0} {
		if set {
			configured++
		}
	}
	if configured > 1 {
		return nil, nil, errors.New("faqdex: use only one of WithDocumentsJSON, WithFile or WithRedis")
	}

	switch {
	case cfg.file != "":
		return reloading(documentrepo.NewFile(cfg.file), cfg), nil, nil
	case len(cfg.redisAddrs) > 0:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("faqdex: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("faqdex: database not ready: %w", err)
		}
		return reloading(documentrepo.NewRedis(store, cfg.redisKey), cfg), store, nil
	default:
		data := cfg.docsJSON
		if data == nil {
			data = sample.FAQ()
		}
		src, err := documentrepo.NewStaticJSON(data)
		if err != nil {
			return nil, nil, fmt.Errorf("faqdex: %w", err)
		}
		return src, nil, nil
	}
}

// reloading applies the reload policy to a source that reads external state.
func reloading(src documentrepo.Source, cfg *clientConfig) documentrepo.Source {
	if cfg.perRequest {
		return documentrepo.NewShared(src)
	}
	return documentrepo.NewCached(src, zap.NewNop())
}

// buildAnswerOptions validates the answer settings.
func buildAnswerOptions(cfg *clientConfig) (answeruc.Options, error) {
	style, err := answeruc.ParseStyle(string(cfg.style))
	if err != nil {
		return answeruc.Options{}, fmt.Errorf("faqdex: %w", err)
	}
	opts := answeruc.Options{
		Style:         style,
		SnippetLength: answeruc.DefaultSnippetLength,
		ModelLabel:    cfg.modelLabel,
	}
	if cfg.snippetLength != nil {
		if *cfg.snippetLength < 0 {
			return answeruc.Options{}, errors.New("faqdex: snippet length must not be negative")
		}
		opts.SnippetLength = *cfg.snippetLength
	}
	return opts, nil
}

func wireClient(
	src documentrepo.Source, store db.Store, ranker *searchuc.Service,
	opts answeruc.Options, obs *observer,
) *Client {
	return &Client{
		store:     store,
		source:    src,
		answerSvc: answeruc.New(src, ranker, opts),
		healthSvc: healthuc.New(src, store),
		obs:       obs,
		now:       time.Now,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ask answers a single question. topK overrides the default number of
// citations when given; at most one value is used. An empty question yields
// a fixed answer without citations. A miss is not an error: the answer
// carries Hints instead.
func (c *Client) Ask(ctx context.Context, question string, topK ...int) (ans *Answer, err error) {
	start := c.now()
	var req request.Request
	defer func() { c.obs.observeAnswer(start, ans, err == nil && req.IsEmpty(), err) }()

	k := 0
	if len(topK) > 0 {
		k = topK[0]
	}
	req, err = request.New(question, k, start)
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	res, err := c.answerSvc.Ask(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}
	return answerFromDomain(res), nil
}

// Documents returns the current FAQ collection in source order.
func (c *Client) Documents(ctx context.Context) (_ []Document, err error) {
	defer func(start time.Time) { c.obs.observe("documents", start, callOutcome(err), err) }(c.now())

	set, err := c.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("documents: %w", err)
	}
	docs := make([]Document, 0, set.Len())
	for _, d := range set.All() {
		docs = append(docs, Document{
			ID:      d.ID(),
			Title:   d.Title(),
			Content: d.Content(),
			Tags:    d.Tags(),
		})
	}
	return docs, nil
}

func answerFromDomain(r domanswer.Result) *Answer {
	a := &Answer{
		Text:      r.Answer,
		Citations: make([]Citation, 0, len(r.Citations)),
		Model:     r.Meta.Model,
		LatencyMs: r.Meta.LatencyMs,
	}
	for _, c := range r.Citations {
		a.Citations = append(a.Citations, Citation(c))
	}
	if r.Hints != nil {
		h := &Hints{
			Categories:  r.Hints.Categories,
			Suggestions: make([]Suggestion, 0, len(r.Hints.Suggestions)),
		}
		for _, s := range r.Hints.Suggestions {
			h.Suggestions = append(h.Suggestions, Suggestion(s))
		}
		a.Hints = h
	}
	return a
}
