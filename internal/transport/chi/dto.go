package chi

import (
	domanswer "github.com/kailas-cloud/faqdex/internal/domain/answer"
	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest                ErrorCode = "bad_request"
	ErrorCodeUnauthorized              ErrorCode = "unauthorized"
	ErrorCodeValidationFailed          ErrorCode = "validation_failed"
	ErrorCodeDocumentSourceUnavailable ErrorCode = "document_source_unavailable"
	ErrorCodeRateLimited               ErrorCode = "rate_limited"
	ErrorCodeInternalError             ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	TopK    *int   `json:"top_k,omitempty"`
}

// AnswerResponse is the body of a successful POST /api/chat.
type AnswerResponse struct {
	Answer    string             `json:"answer"`
	Citations []CitationResponse `json:"citations"`
	Meta      MetaResponse       `json:"meta"`
	Hints     *HintsResponse     `json:"hints,omitempty"`
}

// CitationResponse references a source document.
type CitationResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}

// MetaResponse describes how the answer was produced.
type MetaResponse struct {
	Model     string `json:"model"`
	LatencyMs int64  `json:"latencyMs"`
}

// HintsResponse carries fallback suggestions on a miss.
type HintsResponse struct {
	Categories  []string             `json:"categories"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// SuggestionResponse is a document the caller may ask about instead.
type SuggestionResponse struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// DocumentListResponse is the body of GET /api/documents.
type DocumentListResponse struct {
	Items []DocumentItem `json:"items"`
	Total int            `json:"total"`
}

// DocumentItem is a document summary without content.
type DocumentItem struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewAnswerResponse converts an answer to its wire shape. Slices are never null.
func NewAnswerResponse(r domanswer.Result) AnswerResponse {
	citations := make([]CitationResponse, 0, len(r.Citations))
	for _, c := range r.Citations {
		citations = append(citations, CitationResponse{
			ID:      c.ID,
			Title:   c.Title,
			Snippet: c.Snippet,
			Score:   c.Score,
		})
	}

	resp := AnswerResponse{
		Answer:    r.Answer,
		Citations: citations,
		Meta: MetaResponse{
			Model:     r.Meta.Model,
			LatencyMs: r.Meta.LatencyMs,
		},
	}

	if r.Hints != nil {
		suggestions := make([]SuggestionResponse, 0, len(r.Hints.Suggestions))
		for _, s := range r.Hints.Suggestions {
			suggestions = append(suggestions, SuggestionResponse{
				ID:    s.ID,
				Title: s.Title,
				Tags:  nonNil(s.Tags),
			})
		}
		resp.Hints = &HintsResponse{
			Categories:  nonNil(r.Hints.Categories),
			Suggestions: suggestions,
		}
	}
	return resp
}

// NewDocumentListResponse summarizes a document set for listing.
func NewDocumentListResponse(set domdoc.Set) DocumentListResponse {
	items := make([]DocumentItem, 0, set.Len())
	for _, d := range set.All() {
		items = append(items, DocumentItem{
			ID:    d.ID(),
			Title: d.Title(),
			Tags:  d.Tags(),
		})
	}
	return DocumentListResponse{Items: items, Total: len(items)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
