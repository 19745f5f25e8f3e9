package types

// StudentProfile is the normalized, non-persistent view of a student derived
// from raw answers. Collections are never nil.
type StudentProfile struct {
	Path                      PathID            `json:"path"`
	Interests                 []string          `json:"interests"`
	Skills                    []string          `json:"skills"`
	AcademicPerformance       map[string]string `json:"academic_performance"`
	EducationGoal             string            `json:"education_goal"`
	WorkEnvironmentPreference string            `json:"work_environment_preference"`
	Constraints               []string          `json:"constraints"`
	Traits                    []string          `json:"traits"`
	ZipCode                   string            `json:"zip_code,omitempty"`
	Grade                     string            `json:"grade,omitempty"`
	InterestsNarrative        string            `json:"interests_narrative,omitempty"`
	ExperienceNarrative       string            `json:"experience_narrative,omitempty"`
	InspirationNarrative      string            `json:"inspiration_narrative,omitempty"`
	// ExplicitCareer is set when the student named one specific career.
	ExplicitCareer string `json:"explicit_career,omitempty"`
}

// HasConstraint reports whether the profile carries constraint c.
func (p *StudentProfile) HasConstraint(c string) bool {
	for _, have := range p.Constraints {
		if have == c {
			return true
		}
	}
	return false
}

// HasSkill reports whether the profile lists skill s.
func (p *StudentProfile) HasSkill(s string) bool {
	for _, have := range p.Skills {
		if have == s {
			return true
		}
	}
	return false
}

// Narratives returns the free-text narratives in a fixed order.
func (p *StudentProfile) Narratives() []string {
	return []string{p.InterestsNarrative, p.ExperienceNarrative, p.InspirationNarrative}
}
