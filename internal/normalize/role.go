package normalize

// roleSkillNameFields are the object keys upstream uses for a role skill's
// name, in priority order.
var roleSkillNameFields = []string{"skill_name", "name", "skill_id"}

// RoleTaxonomy normalizes a role taxonomy payload for Stage-0 validation.
// Shallow copy and patch: only role_required_skills is replaced with a flat
// string list; every other field passes through for the schema to judge.
func RoleTaxonomy(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	out["role_required_skills"] = StringList(sliceOfMaps(raw, "role_required_skills"), roleSkillNameFields...)
	return out
}
