package document

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/faqdex/internal/domain"
)

// MaxIDLength is the maximum document identifier length.
const MaxIDLength = 256

// Document is a single FAQ entry (immutable value object).
type Document struct {
	id      string
	title   string
	content string
	tags    []string
}

// New validates and creates a Document.
// ID, title and content are required; tags are optional.
func New(id, title, content string, tags []string) (Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidDocument)
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("%w: document ID too long (max %d)", domain.ErrInvalidDocument, MaxIDLength)
	}
	if strings.TrimSpace(title) == "" {
		return Document{}, fmt.Errorf("%w: document %q: title is required", domain.ErrInvalidDocument, id)
	}
	if strings.TrimSpace(content) == "" {
		return Document{}, fmt.Errorf("%w: document %q: content is required", domain.ErrInvalidDocument, id)
	}

	return Document{
		id:      id,
		title:   title,
		content: content,
		tags:    slices.Clone(tags),
	}, nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document body.
func (d *Document) Content() string { return d.content }

// Tags returns a copy of the document tags. Never nil.
func (d *Document) Tags() []string {
	if len(d.tags) == 0 {
		return []string{}
	}
	return slices.Clone(d.tags)
}
