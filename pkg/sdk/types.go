package faqdex

// Answer is the result of a single question.
type Answer struct {
	Text      string
	Citations []Citation
	Model     string
	LatencyMs int64
	// Hints is set only when no document matched.
	Hints *Hints
}

// Matched reports whether any document supported the answer.
func (a *Answer) Matched() bool { return len(a.Citations) > 0 }

// Citation references a document behind an answer.
type Citation struct {
	ID      string
	Title   string
	Snippet string
	Score   int
}

// Hints are fallback suggestions on a miss.
type Hints struct {
	Categories  []string
	Suggestions []Suggestion
}

// Suggestion is a document the caller may ask about instead.
type Suggestion struct {
	ID    string
	Title string
	Tags  []string
}

// Document is a FAQ entry.
type Document struct {
	ID      string
	Title   string
	Content string
	Tags    []string
}

// MatchMode selects how query tokens match document text.
type MatchMode string

// Match mode constants.
const (
	// MatchContainment matches a token anywhere inside the text.
	MatchContainment MatchMode = "containment"
	// MatchMembership matches whole tokens only.
	MatchMembership MatchMode = "membership"
)

// AnswerStyle selects how the best match is surfaced.
type AnswerStyle string

// Answer style constants.
const (
	StyleFull    AnswerStyle = "full"
	StyleSnippet AnswerStyle = "snippet"
)
