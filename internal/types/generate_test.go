package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGenerateCVRequestSnakeCase(t *testing.T) {
	body := []byte(`{
		"student_id": "stu-1",
		"role_id": "role-9",
		"template_id": "T_EMPLOYER_STD_V3",
		"language": "th",
		"language_tone": "academic",
		"sections": ["skills", "education"]
	}`)

	req, err := DecodeGenerateCVRequest(body)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", req.StudentID)
	assert.Equal(t, "role-9", req.RoleID)
	assert.Equal(t, "th", req.Language)
	assert.Equal(t, "academic", req.LanguageTone)
	assert.Equal(t, []string{"skills", "education"}, req.Sections)
}

func TestDecodeGenerateCVRequestCamelCase(t *testing.T) {
	body := []byte(`{
		"studentId": "stu-1",
		"jdId": "jd-4",
		"userOrLlmComments": {"reviewer": "tighten the summary"},
		"userInputCvTextBySection": {"skills": "Go, SQL"},
		"requestMetadata": {"source": "web"}
	}`)

	req, err := DecodeGenerateCVRequest(body)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", req.StudentID)
	assert.Equal(t, "jd-4", req.JDID)
	assert.Equal(t, "tighten the summary", req.UserOrLLMComments["reviewer"])
	assert.Equal(t, "Go, SQL", req.UserInputCVTextBySection["skills"])
	assert.Equal(t, "web", req.RequestMetadata["source"])
}

func TestDecodeCamelWinsOverSnake(t *testing.T) {
	body := []byte(`{"student_id": "snake", "studentId": "camel"}`)
	req, err := DecodeGenerateCVRequest(body)
	require.NoError(t, err)
	assert.Equal(t, "camel", req.StudentID)
}

func TestDecodeRejectsUnknownField(t *testing.T) {
	body := []byte(`{"student_id": "stu-1", "studnet_id": "oops"}`)
	_, err := DecodeGenerateCVRequest(body)
	require.Error(t, err)

	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "studnet_id", unknown.Field)
}

func TestDecodeRejectsNonObjectBody(t *testing.T) {
	_, err := DecodeGenerateCVRequest([]byte(`[1, 2, 3]`))
	require.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	req := &GenerateCVRequest{StudentID: "stu-1"}
	req.ApplyDefaults()

	assert.Equal(t, "T_EMPLOYER_STD_V3", req.TemplateID)
	assert.Equal(t, "en", req.Language)
	assert.Equal(t, "formal", req.LanguageTone)
	assert.Equal(t, DefaultRequestSections, req.Sections)
}

func TestApplyDefaultsDedupesSections(t *testing.T) {
	req := &GenerateCVRequest{
		StudentID: "stu-1",
		Sections:  []string{"skills", "education", "skills", "education"},
	}
	req.ApplyDefaults()
	assert.Equal(t, []string{"skills", "education"}, req.Sections)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	req := &GenerateCVRequest{
		StudentID:    "stu-1",
		TemplateID:   "T_ACADEMIC_V1",
		Language:     "th",
		LanguageTone: "casual",
		Sections:     []string{"skills"},
	}
	req.ApplyDefaults()

	assert.Equal(t, "T_ACADEMIC_V1", req.TemplateID)
	assert.Equal(t, "th", req.Language)
	assert.Equal(t, "casual", req.LanguageTone)
	assert.Equal(t, []string{"skills"}, req.Sections)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *GenerateCVRequest)
		wantField string
	}{
		{"valid", func(r *GenerateCVRequest) {}, ""},
		{"missing student id", func(r *GenerateCVRequest) { r.StudentID = "" }, "student_id"},
		{"student id bad chars", func(r *GenerateCVRequest) { r.StudentID = "stu 1!" }, "student_id"},
		{"student id too long", func(r *GenerateCVRequest) {
			r.StudentID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
		}, "student_id"},
		{"bad template id", func(r *GenerateCVRequest) { r.TemplateID = "employer_std_v3" }, "template_id"},
		{"bad language", func(r *GenerateCVRequest) { r.Language = "fr" }, "language"},
		{"bad tone", func(r *GenerateCVRequest) { r.LanguageTone = "sarcastic" }, "language_tone"},
		{"unknown section", func(r *GenerateCVRequest) { r.Sections = []string{"hobbies"} }, "sections[0]"},
		{"too many sections", func(r *GenerateCVRequest) {
			r.Sections = []string{
				"profile_summary", "skills", "experience", "education", "projects",
				"certifications", "awards", "extracurricular", "volunteering",
				"interests", "publications",
			}
		}, "sections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &GenerateCVRequest{StudentID: "stu-1"}
			req.ApplyDefaults()
			tt.mutate(req)

			err := req.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			found := false
			for _, fe := range verrs {
				if fe.Field() == tt.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected a violation on %s, got %v", tt.wantField, verrs)
		})
	}
}
