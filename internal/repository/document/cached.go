package document

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/faqdex/internal/domain"
	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/metrics"
)

const loadKey = "documents"

// DefaultSharedLoadTimeout bounds a load shared by concurrent callers.
const DefaultSharedLoadTimeout = 30 * time.Second

// detach derives the context for a shared load. It keeps ctx values but not
// its cancellation, so one caller giving up does not fail the others.
func detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// await waits for a shared load or for the caller's own ctx, whichever ends first.
func await(ctx context.Context, ch <-chan singleflight.Result) (domdoc.Set, error) {
	select {
	case r := <-ch:
		if r.Err != nil {
			return domdoc.Set{}, fmt.Errorf("load documents: %w", r.Err)
		}
		return r.Val.(domdoc.Set), nil
	case <-ctx.Done():
		return domdoc.Set{}, fmt.Errorf("load documents: %w", domain.NewSourceError(loadKey, ctx.Err()))
	}
}

// CachedSource loads the inner source once and reuses the set.
// Failed loads are not cached; concurrent first loads share one call.
type CachedSource struct {
	inner   Source
	logger  *zap.Logger
	timeout time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	set   *domdoc.Set
}

// NewCached creates a load-once decorator.
func NewCached(inner Source, logger *zap.Logger) *CachedSource {
	return &CachedSource{inner: inner, logger: logger, timeout: DefaultSharedLoadTimeout}
}

// WithTimeout bounds the shared load. 0 disables the bound.
func (c *CachedSource) WithTimeout(d time.Duration) *CachedSource {
	c.timeout = d
	return c
}

// Load returns the cached set, loading it on first use.
func (c *CachedSource) Load(ctx context.Context) (domdoc.Set, error) {
	if set, ok := c.cached(); ok {
		metrics.DocumentCacheTotal.WithLabelValues("hit").Inc()
		return set, nil
	}
	metrics.DocumentCacheTotal.WithLabelValues("miss").Inc()

	ch := c.group.DoChan(loadKey, func() (any, error) {
		if set, ok := c.cached(); ok {
			return set, nil
		}
		loadCtx, cancel := detach(ctx, c.timeout)
		defer cancel()
		set, err := c.inner.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.set = &set
		c.mu.Unlock()
		c.logger.Info("Document set cached", zap.Int("documents", set.Len()))
		return set, nil
	})
	return await(ctx, ch)
}

// Invalidate drops the cached set so the next Load reads the inner source.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.set = nil
	c.mu.Unlock()
}

func (c *CachedSource) cached() (domdoc.Set, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.set == nil {
		return domdoc.Set{}, false
	}
	return *c.set, true
}

// SharedSource loads the inner source on every call, collapsing concurrent
// loads into one. Nothing is retained between calls.
type SharedSource struct {
	inner   Source
	timeout time.Duration
	group   singleflight.Group
}

// NewShared creates a per-request loading decorator.
func NewShared(inner Source) *SharedSource {
	return &SharedSource{inner: inner, timeout: DefaultSharedLoadTimeout}
}

// WithTimeout bounds the shared load. 0 disables the bound.
func (s *SharedSource) WithTimeout(d time.Duration) *SharedSource {
	s.timeout = d
	return s
}

// Load reads the inner source, sharing the result with concurrent callers.
func (s *SharedSource) Load(ctx context.Context) (domdoc.Set, error) {
	ch := s.group.DoChan(loadKey, func() (any, error) {
		loadCtx, cancel := detach(ctx, s.timeout)
		defer cancel()
		return s.inner.Load(loadCtx)
	})
	return await(ctx, ch)
}
