package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	correlationHeader = "X-Correlation-Id"
	apiVersionHeader  = "X-API-Version"
	defaultAPIVersion = "1"
)

// supportedAPIVersions lists the versions the header check accepts. URL
// versioning stays primary; the header is an optional validation layer.
var supportedAPIVersions = map[string]bool{"1": true}

type contextKey string

const correlationKey contextKey = "correlation_id"

func correlationID(ctx context.Context) string {
	if v, ok := ctx.Value(correlationKey).(string); ok && v != "" {
		return v
	}
	return newCorrelationID()
}

func newCorrelationID() string {
	return "corr_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// withCorrelationID resolves the request's correlation id, using the caller's
// value verbatim when present, and echoes it on the response.
func (s *Server) withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corr := strings.TrimSpace(r.Header.Get(correlationHeader))
		if corr == "" {
			corr = newCorrelationID()
		}
		ctx := context.WithValue(r.Context(), correlationKey, corr)
		w.Header().Set(correlationHeader, corr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAPIVersion validates the optional version header and echoes the
// resolved version on the response.
func (s *Server) withAPIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version := strings.TrimSpace(r.Header.Get(apiVersionHeader))
		if version == "" {
			version = defaultAPIVersion
		}
		if !supportedAPIVersions[version] {
			s.writeError(w, r, http.StatusBadRequest, "INVALID_FIELD_VALUE", "Invalid API version", []SubError{{
				Field:  apiVersionHeader,
				Errors: []FieldError{{Code: "isIn", Message: "Supported versions: 1"}},
			}})
			return
		}
		w.Header().Set(apiVersionHeader, version)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Infow("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"correlation_id", correlationID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

// withRecover turns panics into the standard 500 envelope.
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Errorw("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"correlation_id", correlationID(r.Context()),
				)
				s.writeError(w, r, http.StatusInternalServerError,
					"INTERNAL_SERVER_ERROR", "Unexpected error while processing request.", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
