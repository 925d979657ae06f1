package document

import (
	"context"
	"time"

	"go.uber.org/zap"

	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/metrics"
)

// InstrumentedSource records load metrics and logs failures.
type InstrumentedSource struct {
	inner  Source
	name   string
	logger *zap.Logger
}

// NewInstrumented wraps a source with observability. name labels the metrics.
func NewInstrumented(inner Source, name string, logger *zap.Logger) *InstrumentedSource {
	return &InstrumentedSource{inner: inner, name: name, logger: logger}
}

// Load delegates to the inner source and records duration and outcome.
func (s *InstrumentedSource) Load(ctx context.Context) (domdoc.Set, error) {
	start := time.Now()
	set, err := s.inner.Load(ctx)
	duration := time.Since(start)

	metrics.DocumentLoadDuration.WithLabelValues(s.name).Observe(duration.Seconds())

	if err != nil {
		metrics.DocumentLoadsTotal.WithLabelValues(s.name, "error").Inc()
		s.logger.Error("Document load failed",
			zap.String("source", s.name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domdoc.Set{}, err
	}

	metrics.DocumentLoadsTotal.WithLabelValues(s.name, "ok").Inc()
	s.logger.Debug("Documents loaded",
		zap.String("source", s.name),
		zap.Int("documents", set.Len()),
		zap.Duration("duration", duration),
	)
	return set, nil
}
