package normalize

import (
	"fmt"
	"strings"
)

// StudentProfile normalizes a data API full-profile payload into the
// Stage-0 StudentProfile shape.
//
// Each sub-section maps upstream field name variants to canonical names,
// parses free-text dates, and synthesizes a positional id when the entry
// has none. Fallback chains: education graduation_date inherits start_date;
// a skill's blank description falls back to its name; awards without a
// parseable date are dropped because the downstream schema requires one.
func StudentProfile(raw map[string]any) map[string]any {
	return map[string]any{
		"personal_info":    personalInfo(raw),
		"education":        educationEntries(raw),
		"experience":       experienceEntries(raw),
		"skills":           skillEntries(raw),
		"awards":           awardEntries(raw),
		"extracurriculars": extracurricularEntries(raw),
		"publications":     publicationEntries(raw),
		"training":         trainingEntries(raw),
		"references":       referenceEntries(raw),
		"additional_info":  additionalInfoEntries(raw),
	}
}

func personalInfo(raw map[string]any) map[string]any {
	pi, _ := raw["personal_info"].(map[string]any)
	out := map[string]any{}
	if pi == nil {
		return out
	}
	setIfPresent(out, "name", stringValue(pi["name"]))
	setIfPresent(out, "email", stringValue(pi["email"]))
	setIfPresent(out, "phone", stringValue(pi["phone"]))
	setIfPresent(out, "linkedin", firstString(pi, "linkedin", "link"))
	return out
}

// entryID returns the entry's own id, or a positional "<prefix>-<n>" id.
// n is 1-based list position so synthesis stays deterministic.
func entryID(entry map[string]any, prefix string, idx int) string {
	if id := stringValue(entry["id"]); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", prefix, idx+1)
}

func educationEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "education") {
		ed, ok := item.(map[string]any)
		if !ok {
			continue
		}
		start := fixDate(ed["start_date"])
		grad := fixDate(ed["graduation_date"])
		if grad == "" {
			grad = start
		}

		entry := map[string]any{
			"id":          entryID(ed, "edu", idx),
			"institution": firstString(ed, "institution", "school_name"),
			"degree":      firstString(ed, "degree", "education_level"),
		}
		setIfPresent(entry, "major", stringValue(ed["major"]))
		setIfPresent(entry, "start_date", start)
		setIfPresent(entry, "graduation_date", grad)
		setIfPresent(entry, "honors", stringValue(ed["honors"]))
		if gpa, ok := ed["gpa"].(float64); ok {
			entry["gpa"] = gpa
		}
		out = append(out, entry)
	}
	return out
}

func experienceEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "experience") {
		ex, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"id":               entryID(ex, "exp", idx),
			"company":          stringValue(ex["company"]),
			"title":            stringValue(ex["title"]),
			"responsibilities": EnsureList(ex["responsibilities"]),
		}
		setIfPresent(entry, "start_date", fixDate(ex["start_date"]))
		setIfPresent(entry, "end_date", fixDate(ex["end_date"]))
		out = append(out, entry)
	}
	return out
}

func skillEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "skills") {
		sk, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(sk, "skill_name", "name")
		if name == "" {
			name = "Unnamed Skill"
		}
		desc := strings.TrimSpace(stringValue(sk["description"]))
		if desc == "" {
			desc = name
		}

		entry := map[string]any{
			"id":          entryID(sk, "skill", idx),
			"name":        name,
			"description": desc,
		}
		setIfPresent(entry, "level", firstString(sk, "skill_level", "level"))
		out = append(out, entry)
	}
	return out
}

func awardEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "awards") {
		aw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		date := fixDate(aw["date"])
		if date == "" {
			// Stage-0 requires a dated award; excluding the entry beats
			// failing the whole request.
			continue
		}
		entry := map[string]any{
			"id":     entryID(aw, "award", idx),
			"title":  firstString(aw, "title", "name"),
			"issuer": firstString(aw, "issuer", "organization"),
			"date":   date,
		}
		setIfPresent(entry, "description", stringValue(aw["description"]))
		out = append(out, entry)
	}
	return out
}

func extracurricularEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "extracurriculars") {
		ex, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"id":           entryID(ex, "ext", idx),
			"title":        firstString(ex, "title", "name"),
			"organization": stringValue(ex["organization"]),
		}
		setIfPresent(entry, "role", stringValue(ex["role"]))
		setIfPresent(entry, "duration", stringValue(ex["duration"]))
		setIfPresent(entry, "description", stringValue(ex["description"]))
		out = append(out, entry)
	}
	return out
}

func publicationEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "publications") {
		pub, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"id":    entryID(pub, "pub", idx),
			"title": stringValue(pub["title"]),
		}
		setIfPresent(entry, "venue", stringValue(pub["venue"]))
		setIfPresent(entry, "description", stringValue(pub["description"]))
		if year, ok := pub["year"].(float64); ok {
			entry["year"] = year
		}
		out = append(out, entry)
	}
	return out
}

func trainingEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "training") {
		tr, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"id":    entryID(tr, "train", idx),
			"title": firstString(tr, "title", "name"),
		}
		setIfPresent(entry, "provider", stringValue(tr["provider"]))
		setIfPresent(entry, "description", stringValue(tr["description"]))
		setIfPresent(entry, "training_date", fixDate(tr["training_date"]))
		out = append(out, entry)
	}
	return out
}

func referenceEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "references") {
		rf, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := map[string]any{
			"id":   entryID(rf, "ref", idx),
			"name": stringValue(rf["name"]),
		}
		setIfPresent(entry, "title", stringValue(rf["title"]))
		setIfPresent(entry, "company", stringValue(rf["company"]))
		setIfPresent(entry, "email", stringValue(rf["email"]))
		setIfPresent(entry, "phone", stringValue(rf["phone"]))
		setIfPresent(entry, "relationship", stringValue(rf["relationship"]))
		setIfPresent(entry, "note", stringValue(rf["note"]))
		out = append(out, entry)
	}
	return out
}

func additionalInfoEntries(raw map[string]any) []any {
	out := []any{}
	for idx, item := range sliceOfMaps(raw, "additional_info") {
		ad, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, map[string]any{
			"id":    entryID(ad, "add", idx),
			"label": stringValue(ad["label"]),
			"value": stringValue(ad["value"]),
		})
	}
	return out
}
