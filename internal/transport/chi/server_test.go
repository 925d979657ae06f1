package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqdex/internal/domain"
	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
	"github.com/kailas-cloud/faqdex/internal/domain/search/score"
	docrepo "github.com/kailas-cloud/faqdex/internal/repository/document"
	"github.com/kailas-cloud/faqdex/internal/sample"
	answeruc "github.com/kailas-cloud/faqdex/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/faqdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/faqdex/internal/usecase/search"
)

// --- Mocks ---

type failingSource struct{}

func (failingSource) Load(_ context.Context) (domdoc.Set, error) {
	return domdoc.Set{}, domain.NewSourceError("file", errors.New("no such file"))
}

type panicSource struct{}

func (panicSource) Load(_ context.Context) (domdoc.Set, error) {
	panic("boom")
}

// --- Helpers ---

func sampleSource(t *testing.T) docrepo.Source {
	t.Helper()
	src, err := docrepo.NewStaticJSON(sample.FAQ())
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	return src
}

func newTestRouter(t *testing.T, src docrepo.Source, cfg RouterConfig) http.Handler {
	t.Helper()
	ranker := searchuc.New(score.Default())
	answers := answeruc.New(src, ranker, answeruc.DefaultOptions())
	health := healthuc.New(src, nil)
	return NewRouter(NewServer(answers, src, health, zap.NewNop()), cfg, zap.NewNop())
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeAnswer(t *testing.T, rr *httptest.ResponseRecorder) AnswerResponse {
	t.Helper()
	var resp AnswerResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp
}

// --- Chat ---

func TestChat_Answered(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	rr := postChat(t, h, `{"message":"환불"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	resp := decodeAnswer(t, rr)

	if !strings.Contains(resp.Answer, "7일 이내") {
		t.Errorf("answer = %q, want refund policy", resp.Answer)
	}
	if len(resp.Citations) == 0 || resp.Citations[0].ID != "faq-1" {
		t.Fatalf("citations = %+v, want faq-1 first", resp.Citations)
	}
	if resp.Citations[0].Score != 3 {
		t.Errorf("top score = %d, want 3", resp.Citations[0].Score)
	}
	for i := 1; i < len(resp.Citations); i++ {
		if resp.Citations[i].Score > resp.Citations[i-1].Score {
			t.Errorf("citations not sorted at %d: %+v", i, resp.Citations)
		}
	}
	if resp.Meta.Model != "local-search" {
		t.Errorf("model = %q", resp.Meta.Model)
	}
	if resp.Meta.LatencyMs < 0 {
		t.Errorf("latency = %d, want >= 0", resp.Meta.LatencyMs)
	}
	if resp.Hints != nil {
		t.Error("hints should be absent on a match")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	h := newTestRouter(t, failingSource{}, RouterConfig{})

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`} {
		rr := postChat(t, h, body)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", body, rr.Code)
		}
		resp := decodeAnswer(t, rr)
		if resp.Answer != "질문이 비어있습니다." {
			t.Errorf("%s: answer = %q", body, resp.Answer)
		}
		if resp.Citations == nil || len(resp.Citations) != 0 {
			t.Errorf("%s: citations = %v, want empty array", body, resp.Citations)
		}
		if resp.Meta.LatencyMs != 0 {
			t.Errorf("%s: latency = %d, want 0", body, resp.Meta.LatencyMs)
		}
	}
}

func TestChat_NoMatchFallback(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	rr := postChat(t, h, `{"message":"zzz999"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	raw := rr.Body.String()
	resp := decodeAnswer(t, rr)

	if resp.Answer != "관련 문서를 찾지 못했습니다." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(resp.Citations) != 0 {
		t.Errorf("citations = %v, want none", resp.Citations)
	}
	if resp.Hints == nil {
		t.Fatal("expected hints")
	}
	want := []string{"계정", "결제", "배송", "고객센터", "오류"}
	if strings.Join(resp.Hints.Categories, ",") != strings.Join(want, ",") {
		t.Errorf("categories = %v, want %v", resp.Hints.Categories, want)
	}
	if len(resp.Hints.Suggestions) != 6 {
		t.Fatalf("suggestions = %d, want 6", len(resp.Hints.Suggestions))
	}
	if resp.Hints.Suggestions[0].ID != "faq-1" {
		t.Errorf("first suggestion = %q, want faq-1", resp.Hints.Suggestions[0].ID)
	}
	if !strings.Contains(raw, `"citations":[]`) {
		t.Errorf("citations must encode as [], body = %s", raw)
	}
	if strings.Contains(raw, `"tags":null`) {
		t.Errorf("tags must never be null, body = %s", raw)
	}
}

func TestChat_TopK(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	rr := postChat(t, h, `{"message":"환불","top_k":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeAnswer(t, rr); len(resp.Citations) != 1 {
		t.Errorf("citations = %d, want 1", len(resp.Citations))
	}
}

func TestChat_BadRequests(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	tests := []struct {
		name     string
		body     string
		wantCode ErrorCode
	}{
		{"malformed json", `{"message":`, ErrorCodeBadRequest},
		{"wrong type", `{"message":42}`, ErrorCodeBadRequest},
		{"top_k zero", `{"message":"환불","top_k":0}`, ErrorCodeValidationFailed},
		{"top_k negative", `{"message":"환불","top_k":-1}`, ErrorCodeValidationFailed},
		{"top_k too large", `{"message":"환불","top_k":21}`, ErrorCodeValidationFailed},
		{"too long", `{"message":"` + strings.Repeat("a", 5000) + `"}`, ErrorCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postChat(t, h, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if got := decodeError(t, rr).Code; got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestChat_SourceUnavailable(t *testing.T) {
	h := newTestRouter(t, failingSource{}, RouterConfig{})

	rr := postChat(t, h, `{"message":"환불"}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Code != ErrorCodeDocumentSourceUnavailable {
		t.Errorf("code = %s", resp.Code)
	}
	if strings.Contains(resp.Message, "no such file") {
		t.Errorf("message leaks internals: %q", resp.Message)
	}
}

func TestChat_PanicRecovered(t *testing.T) {
	h := newTestRouter(t, panicSource{}, RouterConfig{})

	rr := postChat(t, h, `{"message":"환불"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := decodeError(t, rr).Code; got != ErrorCodeInternalError {
		t.Errorf("code = %s", got)
	}
}

func TestChat_RequestIDHeader(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	rr := postChat(t, h, `{"message":"배송"}`)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

// --- Documents ---

func TestListDocuments(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	req := httptest.NewRequest("GET", "/api/documents", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp DocumentListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 8 || len(resp.Items) != 8 {
		t.Errorf("total = %d, items = %d, want 8", resp.Total, len(resp.Items))
	}
	if resp.Items[0].ID != "faq-1" || len(resp.Items[0].Tags) == 0 {
		t.Errorf("first item = %+v", resp.Items[0])
	}
}

func TestListDocuments_SourceUnavailable(t *testing.T) {
	h := newTestRouter(t, failingSource{}, RouterConfig{})

	req := httptest.NewRequest("GET", "/api/documents", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

// --- Health & metrics ---

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		src        docrepo.Source
		wantStatus int
		wantBody   string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"degraded", failingSource{}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.src
			if src == nil {
				src = sampleSource(t)
			}
			h := newTestRouter(t, src, RouterConfig{APIKeys: []string{"secret"}})

			req := httptest.NewRequest("GET", "/health", http.NoBody)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("status body = %q, want %q", resp.Status, tt.wantBody)
			}
			if _, ok := resp.Checks[healthuc.CheckDocuments]; !ok {
				t.Error("expected documents check")
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{APIKeys: []string{"secret"}})

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without auth", rr.Code)
	}
}

// --- Auth & rate limiting through the router ---

func TestRouter_AuthRequired(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{APIKeys: []string{"secret"}})

	rr := postChat(t, h, `{"message":"환불"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"환불"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with key", rr.Code)
	}
}

func TestRouter_RateLimited(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{ClientPerMinute: 2})

	for i := range 2 {
		if rr := postChat(t, h, `{"message":"환불"}`); rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rr.Code)
		}
	}

	rr := postChat(t, h, `{"message":"환불"}`)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if got := decodeError(t, rr).Code; got != ErrorCodeRateLimited {
		t.Errorf("code = %s", got)
	}

	// Health stays reachable while the client is throttled.
	req := httptest.NewRequest("GET", "/health", http.NoBody)
	hr := httptest.NewRecorder()
	h.ServeHTTP(hr, req)
	if hr.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", hr.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	h := newTestRouter(t, sampleSource(t), RouterConfig{})

	req := httptest.NewRequest("GET", "/api/unknown", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
