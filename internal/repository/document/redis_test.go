package document

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/faqdex/internal/db"
	"github.com/kailas-cloud/faqdex/internal/domain"
)

type mockKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func TestNewRedis_DefaultKey(t *testing.T) {
	src := NewRedis(newMockKV(), "")
	if src.Key() != DefaultRedisKey {
		t.Errorf("key = %q, want %q", src.Key(), DefaultRedisKey)
	}
}

func TestRedisSource_SeedThenLoad(t *testing.T) {
	kv := newMockKV()
	src := NewRedis(kv, "faq:test")

	set, err := Parse([]byte(twoDocs))
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Seed(context.Background(), set); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := kv.data["faq:test"]; !ok {
		t.Fatal("seed did not write the configured key")
	}

	loaded, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first := loaded.At(0); loaded.Len() != 2 || first.ID() != "a" {
		t.Errorf("unexpected set: len=%d", loaded.Len())
	}
}

func TestRedisSource_MissingKey(t *testing.T) {
	_, err := NewRedis(newMockKV(), "faq:none").Load(context.Background())
	if !errors.Is(err, domain.ErrDocumentSourceUnavailable) {
		t.Fatalf("expected ErrDocumentSourceUnavailable, got %v", err)
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound in chain, got %v", err)
	}
}

func TestRedisSource_GetError(t *testing.T) {
	kv := newMockKV()
	kv.getErr = &db.Error{Op: db.OpGet, Err: errors.New("connection refused")}

	_, err := NewRedis(kv, "").Load(context.Background())
	if !errors.Is(err, domain.ErrDocumentSourceUnavailable) {
		t.Fatalf("expected ErrDocumentSourceUnavailable, got %v", err)
	}
	var srcErr *domain.SourceError
	if !errors.As(err, &srcErr) || srcErr.Source != SourceRedis {
		t.Errorf("expected SourceError(redis), got %v", err)
	}
}

func TestRedisSource_MalformedValue(t *testing.T) {
	kv := newMockKV()
	kv.data[DefaultRedisKey] = []byte("{")

	_, err := NewRedis(kv, "").Load(context.Background())
	if !errors.Is(err, domain.ErrDocumentSourceUnavailable) {
		t.Fatalf("expected ErrDocumentSourceUnavailable, got %v", err)
	}
}

func TestRedisSource_SeedError(t *testing.T) {
	kv := newMockKV()
	kv.setErr = errors.New("readonly")

	set, err := Parse([]byte(twoDocs))
	if err != nil {
		t.Fatal(err)
	}
	if err := NewRedis(kv, "").Seed(context.Background(), set); err == nil {
		t.Fatal("expected error")
	}
}
