package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentProfileEducation(t *testing.T) {
	raw := map[string]any{
		"education": []any{
			map[string]any{
				"school_name":     "Chulalongkorn University",
				"education_level": "B.Eng.",
				"start_date":      "2019-08-01",
				"gpa":             float64(3.6),
			},
			map[string]any{
				"id":              "edu#cs",
				"institution":     "KMUTT",
				"degree":          "M.Sc.",
				"start_date":      "01/08/2022",
				"graduation_date": "2024-05-30",
			},
		},
	}

	out := StudentProfile(raw)
	education := out["education"].([]any)
	require.Len(t, education, 2)

	first := education[0].(map[string]any)
	assert.Equal(t, "edu-1", first["id"], "positional id synthesized")
	assert.Equal(t, "Chulalongkorn University", first["institution"])
	assert.Equal(t, "B.Eng.", first["degree"])
	assert.Equal(t, "2019-08-01", first["start_date"])
	assert.Equal(t, "2019-08-01", first["graduation_date"], "graduation inherits start_date")
	assert.Equal(t, float64(3.6), first["gpa"])

	second := education[1].(map[string]any)
	assert.Equal(t, "edu#cs", second["id"], "existing id kept")
	assert.Equal(t, "2022-08-01", second["start_date"], "day-first date parsed")
	assert.Equal(t, "2024-05-30", second["graduation_date"])
}

func TestStudentProfileSkills(t *testing.T) {
	raw := map[string]any{
		"skills": []any{
			map[string]any{"skill_name": "Go", "skill_level": "L3_Advanced"},
			map[string]any{"name": "SQL", "level": "L2_Intermediate", "description": "  "},
			map[string]any{"level": "L1_Beginner"},
		},
	}

	skills := StudentProfile(raw)["skills"].([]any)
	require.Len(t, skills, 3)

	first := skills[0].(map[string]any)
	assert.Equal(t, "skill-1", first["id"])
	assert.Equal(t, "Go", first["name"])
	assert.Equal(t, "Go", first["description"], "blank description falls back to name")
	assert.Equal(t, "L3_Advanced", first["level"])

	second := skills[1].(map[string]any)
	assert.Equal(t, "SQL", second["name"])
	assert.Equal(t, "SQL", second["description"])
	assert.Equal(t, "L2_Intermediate", second["level"])

	third := skills[2].(map[string]any)
	assert.Equal(t, "Unnamed Skill", third["name"])
}

func TestStudentProfileAwardsWithoutDateDropped(t *testing.T) {
	raw := map[string]any{
		"awards": []any{
			map[string]any{"title": "Dean's List", "issuer": "Faculty", "date": "2023-01-15"},
			map[string]any{"name": "Hackathon Winner", "organization": "TechFest", "date": "sometime"},
			map[string]any{"title": "Best Paper", "issuer": "ACM", "date": "10/03/2022"},
		},
	}

	awards := StudentProfile(raw)["awards"].([]any)
	require.Len(t, awards, 2, "undateable award excluded")

	first := awards[0].(map[string]any)
	assert.Equal(t, "Dean's List", first["title"])
	second := awards[1].(map[string]any)
	assert.Equal(t, "Best Paper", second["title"])
	assert.Equal(t, "ACM", second["issuer"])
	assert.Equal(t, "2022-03-10", second["date"])
	assert.Equal(t, "award-3", second["id"], "position counted before the drop")
}

func TestStudentProfileExperienceResponsibilities(t *testing.T) {
	raw := map[string]any{
		"experience": []any{
			map[string]any{
				"company":          "Acme",
				"title":            "Engineer",
				"start_date":       "2021-02-01",
				"end_date":         "2023-06-30",
				"responsibilities": "Built APIs, Led migrations",
			},
		},
	}

	experience := StudentProfile(raw)["experience"].([]any)
	require.Len(t, experience, 1)

	entry := experience[0].(map[string]any)
	assert.Equal(t, "exp-1", entry["id"])
	assert.Equal(t, []any{"Built APIs", "Led migrations"}, entry["responsibilities"])
	assert.Equal(t, "2021-02-01", entry["start_date"])
	assert.Equal(t, "2023-06-30", entry["end_date"])
}

func TestStudentProfilePersonalInfoPassthrough(t *testing.T) {
	raw := map[string]any{
		"personal_info": map[string]any{
			"name":  "Ploy S.",
			"email": "ploy@example.com",
		},
	}

	pi := StudentProfile(raw)["personal_info"].(map[string]any)
	assert.Equal(t, "Ploy S.", pi["name"])
	assert.Equal(t, "ploy@example.com", pi["email"])
}

func TestStudentProfileEmptySectionsPresent(t *testing.T) {
	out := StudentProfile(map[string]any{})

	for _, key := range []string{
		"education", "experience", "skills", "awards", "extracurriculars",
		"publications", "training", "references", "additional_info",
	} {
		assert.Empty(t, out[key], "section %s defaults to empty list", key)
		assert.NotNil(t, out[key])
	}
}

func TestRoleTaxonomy(t *testing.T) {
	raw := map[string]any{
		"role_id":          "role#ai_engineer",
		"role_title":       "AI Engineer",
		"role_description": "Builds ML systems",
		"role_required_skills": []any{
			"Python",
			map[string]any{"skill_name": "PyTorch"},
			map[string]any{"skill_id": "skill#mlops"},
			"",
		},
		"extra_field": "kept for validation to judge",
	}

	out := RoleTaxonomy(raw)

	assert.Equal(t, []string{"Python", "PyTorch", "skill#mlops"}, out["role_required_skills"])
	assert.Equal(t, "AI Engineer", out["role_title"], "other fields untouched")
	assert.Equal(t, "kept for validation to judge", out["extra_field"])

	// shallow copy: the input map is not mutated
	assert.Len(t, raw["role_required_skills"], 4)
}

func TestJobTaxonomy(t *testing.T) {
	raw := map[string]any{
		"jd_id":     "jd#ai_lead_2025",
		"job_id":    "legacy-77",
		"job_title": "AI Lead",
		"job_required_skills": []any{
			map[string]any{"skill_id": "skill#go"},
			"Kubernetes",
		},
		"job_responsibilities": []any{
			map[string]any{"responsibility": "Own the ML platform"},
			"Mentor engineers",
		},
		"company_name": "Initech",
	}

	out := JobTaxonomy(raw)

	assert.Equal(t, "jd#ai_lead_2025", out["jd_id"], "canonical id wins over legacy")
	_, hasLegacy := out["job_id"]
	assert.False(t, hasLegacy)
	assert.Equal(t, []string{"skill#go", "Kubernetes"}, out["job_required_skills"])
	assert.Equal(t, []string{"Own the ML platform", "Mentor engineers"}, out["job_responsibilities"])
	assert.Equal(t, "Initech", out["company_name"])
}

func TestJobTaxonomyLegacyFieldsOnly(t *testing.T) {
	raw := map[string]any{
		"job_id": "jd-42",
		"title":  "Data Engineer",
	}

	out := JobTaxonomy(raw)

	assert.Equal(t, "jd-42", out["jd_id"], "legacy job_id canonicalized")
	assert.Equal(t, "Data Engineer", out["job_title"], "legacy title promoted")
	_, hasTitle := out["title"]
	assert.False(t, hasTitle)
}
