package stage0

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-orchestrator/internal/schemas"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F-\x9F]`)
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterStructValidation(educationDates, Education{})
		validate.RegisterStructValidation(experienceDates, Experience{})
	})
	return validate
}

// educationDates enforces graduation_date >= start_date. Violations raise;
// the dates are never silently reordered.
func educationDates(sl validator.StructLevel) {
	ed := sl.Current().Interface().(Education)
	if datesInverted(ed.StartDate, ed.GraduationDate) {
		sl.ReportError(ed.GraduationDate, "graduation_date", "GraduationDate", "gtefield", "start_date")
	}
}

// experienceDates enforces end_date >= start_date.
func experienceDates(sl validator.StructLevel) {
	ex := sl.Current().Interface().(Experience)
	if datesInverted(ex.StartDate, ex.EndDate) {
		sl.ReportError(ex.EndDate, "end_date", "EndDate", "gtefield", "start_date")
	}
}

// datesInverted reports whether both canonical dates parse and the second
// falls before the first.
func datesInverted(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	s, err1 := time.Parse("2006-01-02", start)
	e, err2 := time.Parse("2006-01-02", end)
	return err1 == nil && err2 == nil && e.Before(s)
}

// Build validates a canonical payload map and produces the typed Stage-0
// request.
//
// Validation runs in two passes and reports every violation together:
// first the embedded JSON Schema (closed objects, bounds, enums, patterns),
// then struct-level rules that the schema cannot express (cross-field date
// ordering). Defaults for generation controls are applied before
// validation, sections are deduplicated order-preserving, and company_info
// is derived from the flat company fields when absent.
func Build(raw map[string]any) (*Request, error) {
	doc := withDefaults(raw)

	if err := schemas.ValidateStage0(doc); err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding canonical payload: %w", err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding canonical payload: %w", err)
	}

	sanitize(&req)

	if err := validatorInstance().Struct(&req); err != nil {
		return nil, toValidationError(err)
	}

	deriveCompanyInfo(req.TargetJDTaxonomy)
	if req.TargetJDTaxonomy != nil && req.JDRequiredSkills == nil {
		req.JDRequiredSkills = req.TargetJDTaxonomy.JobRequiredSkills
	}

	return &req, nil
}

// withDefaults copies the payload with generation-control defaults applied
// and the section list deduplicated (first occurrence wins).
func withDefaults(raw map[string]any) map[string]any {
	doc := make(map[string]any, len(raw))
	for k, v := range raw {
		doc[k] = v
	}

	if _, ok := doc["language"]; !ok {
		doc["language"] = string(DefaultLanguage)
	}
	if _, ok := doc["language_tone"]; !ok {
		doc["language_tone"] = string(DefaultTone)
	}
	if s, ok := doc["template_id"].(string); !ok || s == "" {
		doc["template_id"] = DefaultTemplateID
	}

	switch sections := doc["sections"].(type) {
	case []any:
		doc["sections"] = dedupeAny(sections)
	case []string:
		doc["sections"] = DedupeSections(sections)
	default:
		doc["sections"] = DefaultSections
	}

	return doc
}

// DedupeSections drops later duplicates while preserving original order.
func DedupeSections(sections []string) []string {
	seen := make(map[string]bool, len(sections))
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func dedupeAny(sections []any) []any {
	// Only strings participate in deduplication. Anything else is passed
	// through untouched so schema validation can report it; using raw
	// elements as map keys would panic on unhashable values.
	seen := make(map[string]bool, len(sections))
	out := make([]any, 0, len(sections))
	for _, s := range sections {
		str, ok := s.(string)
		if !ok {
			out = append(out, s)
			continue
		}
		if !seen[str] {
			seen[str] = true
			out = append(out, s)
		}
	}
	return out
}

// sanitize applies the normalization the schema cannot: control characters
// stripped from the name, blank phone treated as absent, responsibility
// text trimmed and capped at 500 runes with empties dropped.
func sanitize(req *Request) {
	pi := &req.StudentProfile.PersonalInfo
	pi.Name = strings.TrimSpace(controlChars.ReplaceAllString(pi.Name, ""))
	pi.Phone = strings.TrimSpace(pi.Phone)

	for i := range req.StudentProfile.Experience {
		ex := &req.StudentProfile.Experience[i]
		cleaned := make([]string, 0, len(ex.Responsibilities))
		for _, r := range ex.Responsibilities {
			text := strings.TrimSpace(r)
			if text == "" {
				continue
			}
			if runes := []rune(text); len(runes) > 500 {
				text = string(runes[:500])
			}
			cleaned = append(cleaned, text)
		}
		ex.Responsibilities = cleaned
	}
}

// deriveCompanyInfo builds the nested company_info value from the flat
// company fields when the upstream did not send a structured one.
func deriveCompanyInfo(jd *JobTaxonomy) {
	if jd == nil || jd.CompanyInfo != nil {
		return
	}
	if jd.CompanyName == "" && jd.CompanyIndustry == "" {
		return
	}
	jd.CompanyInfo = &CompanyInfo{
		Name:     jd.CompanyName,
		Industry: jd.CompanyIndustry,
	}
}

// toValidationError converts validator errors into the shared collected
// field-error shape.
func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &schemas.ValidationError{Errors: make([]schemas.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		// Namespace begins with the struct type name; drop it.
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		msg := fmt.Sprintf("failed %q validation", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q validation against %s", fe.Tag(), fe.Param())
		}
		out.Errors = append(out.Errors, schemas.FieldError{Field: field, Message: msg})
	}
	return out
}
