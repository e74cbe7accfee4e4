// Package types provides the request and response contracts of the
// orchestrator's public API.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-orchestrator/internal/stage0"
)

// DefaultRequestSections is the section list applied when the caller omits
// sections entirely.
var DefaultRequestSections = []string{
	"profile_summary", "skills", "experience", "education", "awards", "extracurricular",
}

// GenerateCVRequest represents an inbound CV generation request. The API
// accepts both camelCase and snake_case field names; DecodeGenerateCVRequest
// canonicalizes them before this struct is populated.
type GenerateCVRequest struct {
	StudentID                string            `json:"student_id" validate:"required,max=50,id_chars"`
	RoleID                   string            `json:"role_id,omitempty" validate:"omitempty,max=200"`
	JDID                     string            `json:"jd_id,omitempty" validate:"omitempty,max=200"`
	TemplateID               string            `json:"template_id,omitempty" validate:"omitempty,template_id"`
	Language                 string            `json:"language,omitempty" validate:"omitempty,oneof=en th"`
	LanguageTone             string            `json:"language_tone,omitempty" validate:"omitempty,oneof=formal neutral academic funny casual"`
	Sections                 []string          `json:"sections,omitempty" validate:"omitempty,min=1,max=10,dive,oneof=profile_summary skills experience education projects certifications awards extracurricular volunteering interests publications training references additional_info"`
	UserInputCVTextBySection map[string]any    `json:"user_input_cv_text_by_section,omitempty"`
	UserOrLLMComments        map[string]string `json:"user_or_llm_comments,omitempty"`
	RequestMetadata          map[string]any    `json:"request_metadata,omitempty"`
}

// GeneratedCV is the generated document returned by the generation service.
type GeneratedCV struct {
	JobID               string         `json:"job_id,omitempty"`
	TemplateID          string         `json:"template_id,omitempty"`
	Language            string         `json:"language,omitempty"`
	LanguageTone        string         `json:"language_tone,omitempty"`
	RenderedHTML        string         `json:"rendered_html,omitempty"`
	RenderedMarkdown    string         `json:"rendered_markdown,omitempty"`
	Sections            map[string]any `json:"sections,omitempty"`
	RawGenerationResult map[string]any `json:"raw_generation_result,omitempty"`
}

// GenerateCVError carries the failure detail of an unsuccessful generation.
type GenerateCVError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// GenerateCVResponse represents the outcome of a generation request. Comments
// and metadata echo the request values regardless of success or failure.
type GenerateCVResponse struct {
	Status            string            `json:"status"`
	CV                *GeneratedCV      `json:"cv,omitempty"`
	Error             *GenerateCVError  `json:"error,omitempty"`
	UserOrLLMComments map[string]string `json:"user_or_llm_comments,omitempty"`
	RequestMetadata   map[string]any    `json:"request_metadata,omitempty"`
}

// camelAliases maps the camelCase spellings the API accepts to the canonical
// snake_case field names. When both spellings are present the camelCase value
// wins.
var camelAliases = map[string]string{
	"studentId":                "student_id",
	"roleId":                   "role_id",
	"jdId":                     "jd_id",
	"templateId":               "template_id",
	"language":                 "language",
	"languageTone":             "language_tone",
	"sections":                 "sections",
	"userInputCvTextBySection": "user_input_cv_text_by_section",
	"userOrLlmComments":        "user_or_llm_comments",
	"requestMetadata":          "request_metadata",
}

var canonicalFields = map[string]bool{
	"student_id":                    true,
	"role_id":                       true,
	"jd_id":                         true,
	"template_id":                   true,
	"language":                      true,
	"language_tone":                 true,
	"sections":                      true,
	"user_input_cv_text_by_section": true,
	"user_or_llm_comments":          true,
	"request_metadata":              true,
}

// UnknownFieldError reports a request field outside the API contract.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown request field %q", e.Field)
}

// DecodeGenerateCVRequest parses a request body accepting either camelCase or
// snake_case field names. Unknown fields are rejected rather than ignored so
// typos surface as errors instead of silently dropped options.
func DecodeGenerateCVRequest(body []byte) (*GenerateCVRequest, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing request body: %w", err)
	}

	canonical := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		if canonicalFields[key] {
			// Canonical snake_case spelling; a camelCase duplicate
			// overrides it below.
			if _, exists := canonical[key]; !exists {
				canonical[key] = value
			}
			continue
		}
		if snake, ok := camelAliases[key]; ok {
			canonical[snake] = value
			continue
		}
		return nil, &UnknownFieldError{Field: key}
	}

	normalized, err := json.Marshal(canonical)
	if err != nil {
		return nil, fmt.Errorf("normalizing request body: %w", err)
	}

	var req GenerateCVRequest
	strict := json.NewDecoder(bytes.NewReader(normalized))
	strict.DisallowUnknownFields()
	if err := strict.Decode(&req); err != nil {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}
	return &req, nil
}

// ApplyDefaults fills omitted optional fields with their documented defaults
// and deduplicates sections preserving first occurrence order.
func (r *GenerateCVRequest) ApplyDefaults() {
	if r.TemplateID == "" {
		r.TemplateID = stage0.DefaultTemplateID
	}
	if r.Language == "" {
		r.Language = string(stage0.DefaultLanguage)
	}
	if r.LanguageTone == "" {
		r.LanguageTone = string(stage0.DefaultTone)
	}
	if len(r.Sections) == 0 {
		r.Sections = append([]string(nil), DefaultRequestSections...)
		return
	}
	seen := make(map[string]bool, len(r.Sections))
	deduped := r.Sections[:0]
	for _, s := range r.Sections {
		if seen[s] {
			continue
		}
		seen[s] = true
		deduped = append(deduped, s)
	}
	r.Sections = deduped
}

// Validate validates the GenerateCVRequest using the validator.
func (r *GenerateCVRequest) Validate() error {
	return requestValidator().Struct(r)
}
