package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-tailor/internal/ingestion"
	"github.com/jonathan/job-tailor/internal/llm"
	"github.com/jonathan/job-tailor/internal/prompt"
	"github.com/jonathan/job-tailor/internal/types"
)

// maxBodyBytes caps the request body; uploaded resume files are carried
// inline as base64, so the limit is generous.
const maxBodyBytes = 10 << 20

var validate = validator.New()

// GenerateRequest represents the request body for /api/generate.
type GenerateRequest struct {
	JobListings    []types.JobListing    `json:"jobListings"`
	Resume         *types.ResumePayload  `json:"resume"`
	AdditionalInfo *types.AdditionalInfo `json:"additionalInfo,omitempty"`
}

// handleGenerate runs one generation request: validate, resolve the job
// description, compose the prompt, call the completion API, respond.
// Only the first job listing is used; additional listings are accepted
// and ignored.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.JobListings) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one job listing is required")
		return
	}
	if req.Resume == nil {
		s.errorResponse(w, http.StatusBadRequest, "Resume is required")
		return
	}
	if err := validate.Struct(req.Resume); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume payload: "+err.Error())
		return
	}

	if s.gateway == nil {
		s.errorResponse(w, http.StatusInternalServerError, "OpenAI API key not configured")
		return
	}

	// Best-effort acquisition: a failed fetch degrades to an empty
	// description, it never fails the request.
	job := req.JobListings[0]
	description := ingestion.ResolveJobDescription(r.Context(), job, s.resolver)

	additional := ""
	if req.AdditionalInfo != nil {
		additional = req.AdditionalInfo.Content
	}

	systemText, userText := prompt.Compose(job.URL, description, *req.Resume, additional)

	result, err := s.gateway.Complete(r.Context(), systemText, userText)
	if err != nil {
		s.completionError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// completionError maps gateway failures onto the HTTP surface: upstream
// failures mirror the upstream status, unparseable model output carries
// the raw text for diagnosis, anything else is a generic 500.
func (s *Server) completionError(w http.ResponseWriter, err error) {
	var upstreamErr *llm.UpstreamError
	var parseErr *llm.ParseError

	switch {
	case errors.Is(err, llm.ErrNoContent):
		s.errorResponse(w, http.StatusInternalServerError, "No content returned from completion API")
	case errors.As(err, &upstreamErr):
		log.Printf("Completion API error: %v", upstreamErr)
		s.jsonResponse(w, upstreamErr.StatusCode, map[string]string{
			"error":   "Completion API request failed",
			"details": upstreamErr.Message,
		})
	case errors.As(err, &parseErr):
		log.Printf("Failed to parse model response: %s", parseErr.RawContent)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
			"error":      "Failed to parse AI response",
			"rawContent": parseErr.RawContent,
		})
	default:
		log.Printf("Generation error: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to generate application materials",
			"message": err.Error(),
		})
	}
}
