package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-orchestrator/internal/schemas"
	"github.com/jonathan/cv-orchestrator/internal/types"
)

// SubError describes one violation on one field.
type SubError struct {
	Field  string       `json:"field"`
	Errors []FieldError `json:"errors"`
}

// FieldError is a single machine-readable violation.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorEnvelope is the standard error body for every non-2xx response.
type errorEnvelope struct {
	Code          string     `json:"code"`
	Message       string     `json:"message"`
	SubErrors     []SubError `json:"subErrors"`
	Timestamp     int64      `json:"timestamp"`
	CorrelationID string     `json:"correlationId"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, subErrors []SubError) {
	if subErrors == nil {
		subErrors = []SubError{}
	}
	corr := correlationID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(correlationHeader, corr)
	if w.Header().Get(apiVersionHeader) == "" {
		w.Header().Set(apiVersionHeader, defaultAPIVersion)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Code:          code,
		Message:       message,
		SubErrors:     subErrors,
		Timestamp:     time.Now().Unix(),
		CorrelationID: corr,
	})
}

// validationSubErrors converts the two validation error shapes the request
// path can produce into envelope sub-errors.
func validationSubErrors(err error) []SubError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]SubError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, SubError{
				Field: fe.Field(),
				Errors: []FieldError{{
					Code:    fe.Tag(),
					Message: validationMessage(fe),
				}},
			})
		}
		return out
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		out := make([]SubError, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			out = append(out, SubError{
				Field:  fe.Field,
				Errors: []FieldError{{Code: "schema", Message: fe.Message}},
			})
		}
		return out
	}

	var unknown *types.UnknownFieldError
	if errors.As(err, &unknown) {
		return []SubError{{
			Field:  unknown.Field,
			Errors: []FieldError{{Code: "unknown_field", Message: "Field is not part of the request contract"}},
		}}
	}

	return []SubError{{
		Field:  "body",
		Errors: []FieldError{{Code: "invalid_body", Message: err.Error()}},
	}}
}

func validationMessage(fe validator.FieldError) string {
	if fe.Param() != "" {
		return "failed constraint " + fe.Tag() + "=" + fe.Param()
	}
	return "failed constraint " + fe.Tag()
}
