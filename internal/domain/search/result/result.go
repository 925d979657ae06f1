package result

import "github.com/kailas-cloud/faqdex/internal/domain/document"

// Candidate is a document paired with its relevance score.
type Candidate struct {
	doc   document.Document
	score int
}

// New creates a ranking candidate. Negative scores are clamped to zero.
func New(doc document.Document, score int) Candidate {
	if score < 0 {
		score = 0
	}
	return Candidate{doc: doc, score: score}
}

// Document returns the scored document.
func (c *Candidate) Document() document.Document { return c.doc }

// ID returns the document identifier.
func (c *Candidate) ID() string { return c.doc.ID() }

// Score returns the relevance score.
func (c *Candidate) Score() int { return c.score }

// Matched reports whether the candidate scored above zero.
func (c *Candidate) Matched() bool { return c.score > 0 }
