package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqdex/internal/config"
	"github.com/kailas-cloud/faqdex/internal/db"
	dbredis "github.com/kailas-cloud/faqdex/internal/db/redis"
	"github.com/kailas-cloud/faqdex/internal/domain/search/mode"
	"github.com/kailas-cloud/faqdex/internal/domain/search/score"
	docrepo "github.com/kailas-cloud/faqdex/internal/repository/document"
	"github.com/kailas-cloud/faqdex/internal/sample"
	answeruc "github.com/kailas-cloud/faqdex/internal/usecase/answer"
	searchuc "github.com/kailas-cloud/faqdex/internal/usecase/search"
)

// openStore connects to Redis and waits until it answers.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("database.addrs is required")
	}
	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("addrs", cfg.Addrs))
	return store, nil
}

// buildSource assembles the document source chain:
// base (embedded|file|redis) -> Instrumented -> Cached|Shared.
// The store is nil unless the source is redis.
func buildSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (docrepo.Source, db.Store, error) {
	var (
		base  docrepo.Source
		store db.Store
		err   error
	)

	switch cfg.Documents.Source {
	case config.SourceEmbedded:
		base, err = docrepo.NewStaticJSON(sample.FAQ())
		if err != nil {
			return nil, nil, fmt.Errorf("embedded documents: %w", err)
		}
	case config.SourceFile:
		base = docrepo.NewFile(cfg.Documents.Path)
	case config.SourceRedis:
		store, err = openStore(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		base = docrepo.NewRedis(store, cfg.Documents.RedisKey)
	default:
		return nil, nil, fmt.Errorf("unknown document source %q", cfg.Documents.Source)
	}

	var src docrepo.Source = docrepo.NewInstrumented(base, cfg.Documents.Source, logger)
	if cfg.Documents.Source == config.SourceEmbedded {
		// Already in memory.
		return src, store, nil
	}

	timeout := time.Duration(cfg.Documents.LoadTimeoutMs) * time.Millisecond
	switch cfg.Documents.Reload {
	case config.ReloadPerRequest:
		src = docrepo.NewShared(src).WithTimeout(timeout)
	default:
		src = docrepo.NewCached(src, logger).WithTimeout(timeout)
	}
	return src, store, nil
}

// invalidator is implemented by sources that retain a loaded set.
type invalidator interface {
	Invalidate()
}

// reloadOnHangup drops the retained document set on every signal from hup
// and loads it again, until ctx is done.
func reloadOnHangup(ctx context.Context, src docrepo.Source, hup <-chan os.Signal, logger *zap.Logger) {
	inv, ok := src.(invalidator)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if !ok {
				logger.Info("Reload requested, documents are already read per request")
				continue
			}
			inv.Invalidate()
			set, err := src.Load(ctx)
			if err != nil {
				logger.Warn("Document reload failed", zap.Error(err))
				continue
			}
			logger.Info("Documents reloaded", zap.Int("documents", set.Len()))
		}
	}
}

// buildRanker creates the ranker from retrieval settings.
func buildRanker(cfg config.RetrievalConfig) (*searchuc.Service, error) {
	m, err := mode.Parse(cfg.MatchMode)
	if err != nil {
		return nil, fmt.Errorf("retrieval.match_mode: %w", err)
	}
	scorer, err := score.New(m, score.Weights{Title: cfg.TitleWeight, Body: cfg.BodyWeight})
	if err != nil {
		return nil, fmt.Errorf("retrieval weights: %w", err)
	}

	filter := true
	if cfg.FilterZeroScores != nil {
		filter = *cfg.FilterZeroScores
	}
	return searchuc.New(scorer).WithFilter(filter).WithDefaultTopK(cfg.TopK), nil
}

// answerOptions maps answer and document settings to service options.
func answerOptions(cfg config.Config) (answeruc.Options, error) {
	style, err := answeruc.ParseStyle(cfg.Answer.Style)
	if err != nil {
		return answeruc.Options{}, fmt.Errorf("answer.style: %w", err)
	}

	snippet := answeruc.DefaultSnippetLength
	if cfg.Answer.SnippetLength != nil {
		snippet = *cfg.Answer.SnippetLength
	}

	return answeruc.Options{
		Style:                style,
		SnippetLength:        snippet,
		ModelLabel:           cfg.Answer.ModelLabel,
		MaxSuggestions:       cfg.Answer.MaxSuggestions,
		Categories:           cfg.Answer.Categories,
		NotFoundMessage:      cfg.Answer.NotFoundMessage,
		EmptyMessage:         cfg.Answer.EmptyMessage,
		DisambiguationPrompt: cfg.Answer.DisambiguationPrompt,
		LoadTimeout:          time.Duration(cfg.Documents.LoadTimeoutMs) * time.Millisecond,
	}, nil
}

// buildAnswerService wires the ranker and assembler over src.
func buildAnswerService(cfg config.Config, src docrepo.Source) (*answeruc.Service, error) {
	ranker, err := buildRanker(cfg.Retrieval)
	if err != nil {
		return nil, err
	}
	opts, err := answerOptions(cfg)
	if err != nil {
		return nil, err
	}
	return answeruc.New(src, ranker, opts), nil
}
