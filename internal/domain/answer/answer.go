// Package answer holds the user-facing result of a question.
package answer

import "unicode/utf8"

// Result is an answer grounded in the FAQ documents.
type Result struct {
	Answer    string
	Citations []Citation
	Meta      Meta
	// Hints is set only when no document matched.
	Hints *Hints
}

// Citation references a source document behind the answer.
type Citation struct {
	ID      string
	Title   string
	Snippet string
	Score   int
}

// Meta describes how the answer was produced.
type Meta struct {
	Model     string
	LatencyMs int64
}

// Hints are fallback suggestions returned on a miss.
type Hints struct {
	Categories  []string
	Suggestions []Suggestion
}

// Suggestion is a document the caller may want to ask about instead.
type Suggestion struct {
	ID    string
	Title string
	Tags  []string
}

// Matched reports whether the answer cites at least one document.
func (r *Result) Matched() bool { return len(r.Citations) > 0 }

// Snippet returns the first n runes of text. n <= 0 returns text unchanged.
func Snippet(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}
