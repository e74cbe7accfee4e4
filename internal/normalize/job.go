package normalize

// Object key variants carrying a JD skill or responsibility name.
var (
	jobSkillNameFields  = []string{"skill_id", "skill_code", "skill_name", "name"}
	responsibilityField = []string{"responsibility"}
)

// JobTaxonomy normalizes a JD taxonomy payload for Stage-0 validation.
//
// Shallow copy and patch: job_required_skills and job_responsibilities are
// replaced with flat string lists, job_title falls back to the legacy
// "title" field, and the identifier is reconciled to the canonical jd_id
// (jd_id wins when both forms are present; the legacy job_id key is
// removed). Remaining fields pass through untouched.
func JobTaxonomy(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	out["job_required_skills"] = StringList(sliceOfMaps(raw, "job_required_skills"), jobSkillNameFields...)
	out["job_responsibilities"] = StringList(sliceOfMaps(raw, "job_responsibilities"), responsibilityField...)

	if title := firstString(raw, "job_title", "title"); title != "" {
		out["job_title"] = title
	}
	delete(out, "title")

	if id := firstString(raw, "jd_id", "job_id"); id != "" {
		out["jd_id"] = id
	}
	delete(out, "job_id")

	return out
}
