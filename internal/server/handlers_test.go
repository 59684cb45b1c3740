package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tailor/internal/ingestion"
	"github.com/jonathan/job-tailor/internal/llm"
	"github.com/jonathan/job-tailor/internal/types"
)

// newTestServer builds a server whose gateway points at upstreamURL.
// Pass apiKey "" to simulate a missing credential.
func newTestServer(t *testing.T, apiKey, upstreamURL string) *Server {
	t.Helper()
	cfg := Config{
		Port:     0,
		APIKey:   apiKey,
		Resolver: &ingestion.Options{},
	}
	if upstreamURL != "" {
		cfg.LLM = llm.DefaultConfig().WithBaseURL(upstreamURL)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

// completionStub answers the chat-completions wire with content.
func completionStub(content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": content}},
			},
			"usage": map[string]any{
				"prompt_tokens":     10,
				"completion_tokens": 20,
				"total_tokens":      30,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func postGenerate(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validRequest() GenerateRequest {
	return GenerateRequest{
		JobListings: []types.JobListing{{Description: "Backend engineer role."}},
		Resume:      &types.ResumePayload{Type: types.ResumeTypeText, Content: "My resume."},
	}
}

func TestGenerate_NoJobListings(t *testing.T) {
	s := newTestServer(t, "test-key", "")

	req := validRequest()
	req.JobListings = nil
	rec := postGenerate(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "job listing")
}

func TestGenerate_EmptyJobListings(t *testing.T) {
	s := newTestServer(t, "test-key", "")

	req := validRequest()
	req.JobListings = []types.JobListing{}
	rec := postGenerate(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "error")
}

func TestGenerate_NoResume(t *testing.T) {
	s := newTestServer(t, "test-key", "")

	req := validRequest()
	req.Resume = nil
	rec := postGenerate(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Resume")
}

func TestGenerate_InvalidResumeType(t *testing.T) {
	s := newTestServer(t, "test-key", "")

	req := validRequest()
	req.Resume = &types.ResumePayload{Type: "carrier-pigeon"}
	rec := postGenerate(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	s := newTestServer(t, "", "")

	rec := postGenerate(t, s, validRequest())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "API key not configured")
}

func TestGenerate_Success(t *testing.T) {
	upstream := completionStub(`{"tailoredResume":"# Tailored","coverLetter":"Dear hiring team,"}`)
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	rec := postGenerate(t, s, validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "# Tailored", result.TailoredResume)
	assert.Equal(t, "Dear hiring team,", result.CoverLetter)
	assert.Equal(t, 30, result.Usage.TotalTokens)
}

func TestGenerate_OnlyFirstListingUsed(t *testing.T) {
	var gotPrompt string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Messages[1].Content
		resp := map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"tailoredResume":"r","coverLetter":"c"}`}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	req := validRequest()
	req.JobListings = []types.JobListing{
		{Description: "First listing."},
		{Description: "Second listing."},
	}
	rec := postGenerate(t, s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, gotPrompt, "First listing.")
	assert.NotContains(t, gotPrompt, "Second listing.")
}

func TestGenerate_UpstreamFailureMirrorsStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	rec := postGenerate(t, s, validRequest())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "error")
	assert.Equal(t, "Incorrect API key provided", body["details"])
}

func TestGenerate_NoContentFromUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	rec := postGenerate(t, s, validRequest())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "No content")
}

func TestGenerate_ParseFailureIncludesRawContent(t *testing.T) {
	upstream := completionStub("not-json")
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	rec := postGenerate(t, s, validRequest())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "error")
	assert.Equal(t, "not-json", body["rawContent"])
}

func TestGenerate_IncompleteModelResponse(t *testing.T) {
	upstream := completionStub(`{"tailoredResume":"# Tailored"}`)
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	rec := postGenerate(t, s, validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "", result.CoverLetter)
}

func TestGenerate_ResolverFailureStillGenerates(t *testing.T) {
	// Dead job URL: acquisition degrades to "(No description provided)"
	// and the request still succeeds.
	dead := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	var gotPrompt string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Messages[1].Content
		resp := map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"tailoredResume":"r","coverLetter":"c"}`}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer upstream.Close()
	s := newTestServer(t, "test-key", upstream.URL)

	req := validRequest()
	req.JobListings = []types.JobListing{{URL: deadURL}}
	rec := postGenerate(t, s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, gotPrompt, "(No description provided)")
}

func TestGenerate_InvalidBody(t *testing.T) {
	s := newTestServer(t, "test-key", "")

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	// Health works with no credential configured at all.
	s := newTestServer(t, "", "")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])

	timestamp, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, timestamp)
	assert.NoError(t, err)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, "", "")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, "", "")

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
