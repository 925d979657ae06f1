package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/faqdex/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("faq-1", "환불 정책", "환불은 7일 이내 가능합니다.", []string{"환불", "결제"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "faq-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Title() != "환불 정책" {
		t.Errorf("Title() = %q", doc.Title())
	}
	if doc.Content() != "환불은 7일 이내 가능합니다." {
		t.Errorf("Content() = %q", doc.Content())
	}
	if len(doc.Tags()) != 2 || doc.Tags()[0] != "환불" {
		t.Errorf("Tags() = %v", doc.Tags())
	}
}

func TestNew_TrimsID(t *testing.T) {
	doc, err := New("  faq-1 ", "title", "content", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "faq-1" {
		t.Errorf("ID() = %q, want %q", doc.ID(), "faq-1")
	}
}

func TestNew_NilTagsReturnEmptySlice(t *testing.T) {
	doc, err := New("faq-1", "title", "content", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Tags() == nil {
		t.Fatal("Tags() must not be nil")
	}
	if len(doc.Tags()) != 0 {
		t.Errorf("Tags() = %v, want empty", doc.Tags())
	}
}

func TestNew_ClonesTags(t *testing.T) {
	tags := []string{"a"}
	doc, _ := New("faq-1", "title", "content", tags)
	tags[0] = "mutated"

	if doc.Tags()[0] != "a" {
		t.Error("document must not share the caller's tag slice")
	}

	got := doc.Tags()
	got[0] = "mutated"
	if doc.Tags()[0] != "a" {
		t.Error("Tags() must return a copy")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		title   string
		content string
		wantMsg string
	}{
		{"empty id", "", "t", "c", "ID is required"},
		{"blank id", "   ", "t", "c", "ID is required"},
		{"long id", strings.Repeat("a", MaxIDLength+1), "t", "c", "too long"},
		{"empty title", "faq-1", "", "c", "title is required"},
		{"blank title", "faq-1", " \t", "c", "title is required"},
		{"empty content", "faq-1", "t", "", "content is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.title, tc.content, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantMsg)
			}
		})
	}
}
