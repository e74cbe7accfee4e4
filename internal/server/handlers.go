package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/cv-orchestrator/internal/naming"
	"github.com/jonathan/cv-orchestrator/internal/types"
)

// preserveContainerKeys names the free-form containers whose inner keys must
// not be camelized. Section keys like "profile_summary" are data, not
// structure.
var preserveContainerKeys = map[string]bool{
	"user_or_llm_comments":          true,
	"userOrLlmComments":             true,
	"user_input_cv_text_by_section": true,
	"userInputCvTextBySection":      true,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":      "ok",
		"service":     s.settings.ServiceName,
		"environment": s.settings.Environment,
	})
}

// handleCreateCVGeneration is the REST resource endpoint.
func (s *Server) handleCreateCVGeneration(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, http.StatusCreated)
}

// handleGenerateCVAlias is the deprecated RPC-style alias.
func (s *Server) handleGenerateCVAlias(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, http.StatusOK)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, successStatus int) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST_FORMAT", "Failed to read request body", nil)
		return
	}

	req, err := types.DecodeGenerateCVRequest(body)
	if err != nil {
		s.validationFailed(w, r, err)
		return
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		s.validationFailed(w, r, err)
		return
	}

	resp := s.svc.GenerateCV(r.Context(), req)
	s.writeResponse(w, r, successStatus, resp)
}

func (s *Server) validationFailed(w http.ResponseWriter, r *http.Request, err error) {
	subErrors := validationSubErrors(err)
	s.logger.Infow("request validation failed",
		"correlation_id", correlationID(r.Context()),
		"error_count", len(subErrors),
	)
	s.writeError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", subErrors)
}

// writeResponse emits the envelope with camelCase keys at every depth except
// inside the preserved free-form containers.
func (s *Server) writeResponse(w http.ResponseWriter, r *http.Request, status int, resp *types.GenerateCVResponse) {
	encoded, err := json.Marshal(resp)
	if err != nil {
		s.logger.Errorw("encoding response failed", "error", err)
		s.writeError(w, r, http.StatusInternalServerError,
			"INTERNAL_SERVER_ERROR", "Unexpected error while processing request.", nil)
		return
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		s.logger.Errorw("re-encoding response failed", "error", err)
		s.writeError(w, r, http.StatusInternalServerError,
			"INTERNAL_SERVER_ERROR", "Unexpected error while processing request.", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(naming.ConvertKeysDeep(doc, preserveContainerKeys))
}
