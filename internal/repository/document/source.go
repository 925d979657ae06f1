package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/faqdex/internal/domain"
	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
)

// Source names, used in errors and metrics labels.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRedis    = "redis"
)

// Source loads the FAQ document set.
type Source interface {
	Load(ctx context.Context) (domdoc.Set, error)
}

// StaticSource serves a set fixed at construction time.
type StaticSource struct {
	set domdoc.Set
}

// NewStatic creates a source that always returns set.
func NewStatic(set domdoc.Set) *StaticSource {
	return &StaticSource{set: set}
}

// NewStaticJSON parses data once and serves the result.
func NewStaticJSON(data []byte) (*StaticSource, error) {
	set, err := Parse(data)
	if err != nil {
		return nil, domain.NewSourceError(SourceEmbedded, err)
	}
	return NewStatic(set), nil
}

// Load returns the fixed set.
func (s *StaticSource) Load(_ context.Context) (domdoc.Set, error) {
	return s.set, nil
}

// FileSource reads a JSON document file on every Load.
type FileSource struct {
	path string
}

// NewFile creates a source backed by the JSON file at path.
func NewFile(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

// Path returns the file path.
func (s *FileSource) Path() string { return s.path }

type readResult struct {
	data []byte
	err  error
}

// Load reads and parses the file. The read is abandoned when ctx is done.
func (s *FileSource) Load(ctx context.Context) (domdoc.Set, error) {
	if err := ctx.Err(); err != nil {
		return domdoc.Set{}, domain.NewSourceError(SourceFile, err)
	}

	ch := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(s.path)
		ch <- readResult{data: data, err: err}
	}()

	var r readResult
	select {
	case <-ctx.Done():
		return domdoc.Set{}, domain.NewSourceError(SourceFile, ctx.Err())
	case r = <-ch:
	}
	if r.err != nil {
		return domdoc.Set{}, domain.NewSourceError(SourceFile, fmt.Errorf("read %s: %w", s.path, r.err))
	}

	set, err := Parse(r.data)
	if err != nil {
		return domdoc.Set{}, domain.NewSourceError(SourceFile, fmt.Errorf("parse %s: %w", s.path, err))
	}
	return set, nil
}
