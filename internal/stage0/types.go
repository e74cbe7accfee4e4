// Package stage0 defines the canonical CV-generation payload sent to the
// generation service and the validation that guards it.
package stage0

// Language is a supported CV generation language.
type Language string

// LanguageTone is a supported tone style for generated CV text.
type LanguageTone string

// SkillLevel is a normalized skill proficiency level (L1-L4).
type SkillLevel string

const (
	LanguageEN Language = "en"
	LanguageTH Language = "th"

	ToneFormal   LanguageTone = "formal"
	ToneNeutral  LanguageTone = "neutral"
	ToneAcademic LanguageTone = "academic"
	ToneFunny    LanguageTone = "funny"
	ToneCasual   LanguageTone = "casual"
)

// ValidLanguage reports whether s is a member of the language enum.
func ValidLanguage(s string) bool {
	switch Language(s) {
	case LanguageEN, LanguageTH:
		return true
	}
	return false
}

// ValidTone reports whether s is a member of the tone enum.
func ValidTone(s string) bool {
	switch LanguageTone(s) {
	case ToneFormal, ToneNeutral, ToneAcademic, ToneFunny, ToneCasual:
		return true
	}
	return false
}

// Defaults applied when the inbound request omits generation controls.
const (
	DefaultLanguage   = LanguageEN
	DefaultTone       = ToneFormal
	DefaultTemplateID = "T_EMPLOYER_STD_V3"
)

// DefaultSections is the section list used when none is requested.
var DefaultSections = []string{"profile_summary", "skills", "experience", "education"}

// Sections is the closed set of CV sections the generator understands.
var Sections = []string{
	"profile_summary", "skills", "experience", "education", "projects",
	"certifications", "awards", "extracurricular", "volunteering",
	"interests", "publications", "training", "references", "additional_info",
}

// PersonalInfo is the student's contact information.
type PersonalInfo struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// Education is a formal education entry. Dates are canonical YYYY-MM-DD.
type Education struct {
	ID             string   `json:"id" validate:"required"`
	Degree         string   `json:"degree" validate:"required,max=200"`
	Institution    string   `json:"institution" validate:"required,max=200"`
	GPA            *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	StartDate      string   `json:"start_date" validate:"required"`
	GraduationDate string   `json:"graduation_date,omitempty"`
	Major          string   `json:"major,omitempty" validate:"omitempty,max=200"`
	Honors         string   `json:"honors,omitempty" validate:"omitempty,max=200"`
}

// Experience is a work or internship entry.
type Experience struct {
	ID               string   `json:"id" validate:"required"`
	Title            string   `json:"title" validate:"required,max=200"`
	Company          string   `json:"company" validate:"required,max=200"`
	StartDate        string   `json:"start_date" validate:"required"`
	EndDate          string   `json:"end_date,omitempty"`
	Responsibilities []string `json:"responsibilities" validate:"required,min=1,max=10"`
}

// Skill is a structured representation of a student's skill.
type Skill struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=200"`
	Level       SkillLevel `json:"level" validate:"required,oneof=L1_Beginner L2_Intermediate L3_Advanced L4_Expert"`
}

// Award is an award, scholarship, or notable achievement.
type Award struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"max=200"`
	Issuer      string `json:"issuer" validate:"max=200"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Extracurricular is a co-curricular activity.
type Extracurricular struct {
	ID           string `json:"id" validate:"required"`
	Title        string `json:"title" validate:"max=200"`
	Organization string `json:"organization" validate:"max=200"`
	Role         string `json:"role,omitempty" validate:"omitempty,max=100"`
	Duration     string `json:"duration,omitempty" validate:"omitempty,max=100"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Publication is an academic or professional publication.
type Publication struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"max=300"`
	Venue       string `json:"venue,omitempty" validate:"omitempty,max=200"`
	Year        *int   `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Training is a course, bootcamp, or professional training.
type Training struct {
	ID           string `json:"id" validate:"required"`
	Title        string `json:"title" validate:"max=200"`
	Provider     string `json:"provider,omitempty" validate:"omitempty,max=200"`
	TrainingDate string `json:"training_date,omitempty"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Reference is a professional or academic reference contact.
type Reference struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"max=200"`
	Title        string `json:"title,omitempty" validate:"omitempty,max=200"`
	Company      string `json:"company,omitempty" validate:"omitempty,max=200"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Relationship string `json:"relationship,omitempty" validate:"omitempty,max=200"`
	Note         string `json:"note,omitempty" validate:"omitempty,max=300"`
}

// AdditionalInfoItem is catch-all extra information as a key-value item.
type AdditionalInfoItem struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=300"`
}

// StudentProfile is the aggregated, sanitized profile used as generation
// ground truth. Constructed once per request, immutable after Build.
type StudentProfile struct {
	PersonalInfo    PersonalInfo         `json:"personal_info" validate:"required"`
	Education       []Education          `json:"education" validate:"required,min=1,max=5,dive"`
	Experience      []Experience         `json:"experience" validate:"max=10,dive"`
	Skills          []Skill              `json:"skills" validate:"required,min=1,max=30,dive"`
	Awards          []Award              `json:"awards" validate:"max=10,dive"`
	Extracurricular []Extracurricular    `json:"extracurriculars" validate:"max=10,dive"`
	Publications    []Publication        `json:"publications" validate:"max=10,dive"`
	Training        []Training           `json:"training" validate:"max=10,dive"`
	References      []Reference          `json:"references" validate:"max=5,dive"`
	AdditionalInfo  []AdditionalInfoItem `json:"additional_info" validate:"max=10,dive"`
}

// CompanyInfo is basic information about the target company.
type CompanyInfo struct {
	Name     string `json:"name" validate:"max=200"`
	Industry string `json:"industry,omitempty" validate:"omitempty,max=100"`
}

// RoleTaxonomy is a structured description of a target role.
type RoleTaxonomy struct {
	RoleID             string   `json:"role_id,omitempty"`
	RoleTitle          string   `json:"role_title" validate:"required,max=200"`
	RoleDescription    string   `json:"role_description" validate:"max=500"`
	RoleRequiredSkills []string `json:"role_required_skills" validate:"required,min=1,max=50"`
}

// JobTaxonomy is a structured description of the target job / JD.
type JobTaxonomy struct {
	JDID                string       `json:"jd_id,omitempty"`
	JobTitle            string       `json:"job_title" validate:"required,max=200"`
	JobRequiredSkills   []string     `json:"job_required_skills" validate:"required,min=1,max=50"`
	JobResponsibilities []string     `json:"job_responsibilities,omitempty" validate:"max=50"`
	CompanyName         string       `json:"company_name,omitempty" validate:"omitempty,max=200"`
	CompanyIndustry     string       `json:"company_industry,omitempty" validate:"omitempty,max=100"`
	CompanyInfo         *CompanyInfo `json:"company_info,omitempty"`
}

// Request is the canonical Stage-0 CV generation payload.
type Request struct {
	UserID                   string         `json:"user_id" validate:"required,max=50"`
	Language                 Language       `json:"language" validate:"required,oneof=en th"`
	LanguageTone             LanguageTone   `json:"language_tone" validate:"required,oneof=formal neutral academic funny casual"`
	TemplateID               string         `json:"template_id" validate:"required"`
	Sections                 []string       `json:"sections" validate:"required,min=1,max=20"`
	StudentProfile           StudentProfile `json:"student_profile" validate:"required"`
	UserInputCVTextBySection map[string]any `json:"user_input_cv_text_by_section,omitempty"`
	TargetRoleTaxonomy       *RoleTaxonomy  `json:"target_role_taxonomy,omitempty"`
	TargetJDTaxonomy         *JobTaxonomy   `json:"target_jd_taxonomy,omitempty"`
	JDRequiredSkills         []string       `json:"jd_required_skills,omitempty" validate:"max=50"`
}
