// Package orchestrator coordinates upstream data fetches, Stage-0 payload
// assembly, and the generation-service call for a single CV request.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-orchestrator/internal/config"
	"github.com/jonathan/cv-orchestrator/internal/fetch"
	"github.com/jonathan/cv-orchestrator/internal/normalize"
	"github.com/jonathan/cv-orchestrator/internal/stage0"
	"github.com/jonathan/cv-orchestrator/internal/types"
)

// Error codes reported inside the response envelope when orchestration fails.
const (
	CodeDataFetch           = "ORCH_DATA_FETCH_ERROR"
	CodeStage0Build         = "ORCH_STAGE0_BUILD_ERROR"
	CodeGenerationTransport = "ORCH_GENERATION_TRANSPORT_ERROR"
	CodeGeneration          = "ORCH_GENERATION_ERROR"
)

// DataClient is the subset of the data-service client the orchestrator needs.
type DataClient interface {
	StudentProfile(ctx context.Context, studentID string) (map[string]any, error)
	RoleTaxonomy(ctx context.Context, roleID string) (map[string]any, error)
	JDTaxonomy(ctx context.Context, jdID string) (map[string]any, error)
	TemplateInfo(ctx context.Context, templateID string) (map[string]any, error)
}

// Service orchestrates a CV generation end to end.
type Service struct {
	cfg    *config.Settings
	data   DataClient
	genURL string
	client *http.Client
	logger *zap.SugaredLogger
}

// New builds a Service from the loaded settings.
func New(cfg *config.Settings, data DataClient, logger *zap.SugaredLogger) *Service {
	return &Service{
		cfg:    cfg,
		data:   data,
		genURL: strings.TrimRight(cfg.GenerationAPIBaseURL, "/") + cfg.GenerationEndpoints.GenerateCV,
		client: &http.Client{Timeout: cfg.GenerationTimeout},
		logger: logger,
	}
}

// GenerateCV runs the fetch, build, generate, map pipeline. Failures are
// reported inside the response envelope rather than as a Go error, and the
// caller's comments and metadata are echoed back on every path.
func (s *Service) GenerateCV(ctx context.Context, req *types.GenerateCVRequest) *types.GenerateCVResponse {
	studentRaw, roleRaw, jdRaw, err := s.fetchAll(ctx, req)
	if err != nil {
		s.logger.Errorw("data fetch failed",
			"student_id", req.StudentID,
			"role_id", req.RoleID,
			"jd_id", req.JDID,
			"template_id", req.TemplateID,
			"error", err,
		)
		return s.errorResponse(req, CodeDataFetch,
			"Failed to fetch required data from the data service.", err)
	}

	payload, err := s.buildStage0(req, studentRaw, roleRaw, jdRaw)
	if err != nil {
		s.logger.Errorw("stage0 build failed", "student_id", req.StudentID, "error", err)
		return s.errorResponse(req, CodeStage0Build,
			"Failed to construct the generation payload.", err)
	}

	result, err := s.callGeneration(ctx, payload, req.UserOrLLMComments)
	if err != nil {
		if isTransport(err) {
			s.logger.Errorw("generation service transport error", "error", err)
			return s.errorResponse(req, CodeGenerationTransport,
				"Failed to call the CV generation service.", err)
		}
		s.logger.Errorw("generation service error", "error", err)
		return s.errorResponse(req, CodeGeneration,
			"Unexpected error while generating CV.", err)
	}

	return &types.GenerateCVResponse{
		Status:            "success",
		CV:                s.mapResult(result, req),
		UserOrLLMComments: req.UserOrLLMComments,
		RequestMetadata:   req.RequestMetadata,
	}
}

// fetchAll issues the four upstream lookups concurrently. Role and JD
// taxonomies are optional and skipped when their identifiers are absent;
// a failure of any issued call fails the whole group.
func (s *Service) fetchAll(ctx context.Context, req *types.GenerateCVRequest) (student, role, jd map[string]any, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var ferr error
		student, ferr = s.data.StudentProfile(gctx, req.StudentID)
		return ferr
	})
	g.Go(func() error {
		var ferr error
		role, ferr = s.data.RoleTaxonomy(gctx, req.RoleID)
		return ferr
	})
	g.Go(func() error {
		var ferr error
		jd, ferr = s.data.JDTaxonomy(gctx, req.JDID)
		return ferr
	})
	g.Go(func() error {
		_, ferr := s.data.TemplateInfo(gctx, req.TemplateID)
		return ferr
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return student, role, jd, nil
}

// buildStage0 normalizes the fetched documents and validates the canonical
// payload. Any failure here is a build error regardless of where the bad
// data came from.
func (s *Service) buildStage0(req *types.GenerateCVRequest, studentRaw, roleRaw, jdRaw map[string]any) (*stage0.Request, error) {
	// The data service wraps the profile in an envelope key; older
	// deployments return the document bare.
	inner := studentRaw
	if wrapped, ok := studentRaw["student_profile"].(map[string]any); ok {
		inner = wrapped
	}

	raw := map[string]any{
		"user_id":         req.StudentID,
		"language":        req.Language,
		"language_tone":   req.LanguageTone,
		"template_id":     req.TemplateID,
		"sections":        req.Sections,
		"student_profile": normalize.StudentProfile(inner),
	}
	if req.UserInputCVTextBySection != nil {
		raw["user_input_cv_text_by_section"] = req.UserInputCVTextBySection
	}
	if roleRaw != nil {
		raw["target_role_taxonomy"] = normalize.RoleTaxonomy(roleRaw)
	}
	if jdRaw != nil {
		raw["target_jd_taxonomy"] = normalize.JobTaxonomy(jdRaw)
	}

	payload, err := stage0.Build(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("stage0 payload built",
		"user_id", payload.UserID,
		"language", payload.Language,
		"template_id", payload.TemplateID,
		"sections", payload.Sections,
	)
	return payload, nil
}

// transportError marks failures to reach the generation service or non-2xx
// responses from it, as opposed to unexpected local failures.
type transportError struct {
	cause error
}

func (e *transportError) Error() string { return e.cause.Error() }
func (e *transportError) Unwrap() error { return e.cause }

func isTransport(err error) bool {
	_, ok := err.(*transportError)
	return ok
}

// callGeneration posts the canonical payload to the generation service.
// Comments ride along only when the feature flag allows them.
func (s *Service) callGeneration(ctx context.Context, payload *stage0.Request, comments map[string]string) (map[string]any, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding generation payload: %w", err)
	}

	var body map[string]any
	if err := json.Unmarshal(encoded, &body); err != nil {
		return nil, fmt.Errorf("re-encoding generation payload: %w", err)
	}
	if s.cfg.EnableUserOrLLMComments && len(comments) > 0 {
		body["user_or_llm_comments"] = comments
	}
	encoded, err = json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding generation payload: %w", err)
	}

	s.logger.Infow("calling generation service", "url", s.genURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.genURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("building generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &transportError{cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &transportError{cause: &fetch.StatusError{
			URL:        s.genURL,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}}
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding generation response: %w", err)
	}

	s.logger.Infow("generation service success", "url", s.genURL)
	return result, nil
}

// mapResult shapes the generation service's document into the external CV.
// A language or tone the enum does not recognize falls back to the request's
// own choice instead of failing the whole generation.
func (s *Service) mapResult(result map[string]any, req *types.GenerateCVRequest) *types.GeneratedCV {
	language := req.Language
	if v, ok := result["language"].(string); ok && stage0.ValidLanguage(v) {
		language = v
	}
	tone := req.LanguageTone
	if v, ok := result["language_tone"].(string); ok && stage0.ValidTone(v) {
		tone = v
	}

	templateID := req.TemplateID
	if v, ok := result["template_id"].(string); ok && v != "" {
		templateID = v
	}

	cv := &types.GeneratedCV{
		JobID:               stringField(result, "job_id"),
		TemplateID:          templateID,
		Language:            language,
		LanguageTone:        tone,
		RenderedHTML:        stringField(result, "rendered_html"),
		RenderedMarkdown:    stringField(result, "rendered_markdown"),
		RawGenerationResult: result,
	}
	if sections, ok := result["sections"].(map[string]any); ok {
		cv.Sections = sections
	}

	s.logger.Infow("generation result mapped", "job_id", cv.JobID, "template_id", cv.TemplateID)
	return cv
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

// errorResponse builds the terminal error envelope. Comments and metadata
// are echoed regardless of which stage failed.
func (s *Service) errorResponse(req *types.GenerateCVRequest, code, message string, cause error) *types.GenerateCVResponse {
	return &types.GenerateCVResponse{
		Status: "error",
		Error: &types.GenerateCVError{
			Code:    code,
			Message: message,
			Details: map[string]any{"reason": cause.Error()},
		},
		UserOrLLMComments: req.UserOrLLMComments,
		RequestMetadata:   req.RequestMetadata,
	}
}
