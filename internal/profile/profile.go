// Package profile turns raw assessment answers into a normalized StudentProfile.
package profile

import (
	"strings"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/types"
)

// Neutral defaults for unanswered fields
const (
	DefaultInterest        = "general exploration"
	DefaultTrait           = "curious"
	DefaultEducationGoal   = types.EducationUndecided
	DefaultWorkEnvironment = "no_preference"
)

// Build derives a StudentProfile from responses on path. Answers that do
// not count for the path are ignored. Interests and traits are never empty
// and no collection is nil. Narratives are copied verbatim.
func Build(responses types.Responses, path types.PathID) types.StudentProfile {
	r := assessment.Relevant(responses, path)
	if !path.Valid() {
		if a, ok := r[assessment.QCareerDirection]; ok {
			path = assessment.DeterminePath(a.First())
		}
	}

	p := types.StudentProfile{
		Path:                      path,
		Interests:                 choices(r, assessment.QInterests),
		Skills:                    choices(r, assessment.QSkills),
		Traits:                    choices(r, assessment.QTraits),
		Constraints:               choices(r, assessment.QConstraints),
		AcademicPerformance:       matrix(r, assessment.QAcademicPerformance),
		EducationGoal:             choice(r, assessment.QEducationGoal),
		WorkEnvironmentPreference: choice(r, assessment.QWorkEnvironment),
		ZipCode:                   strings.TrimSpace(r[assessment.QZipCode].First()),
		Grade:                     choice(r, assessment.QGrade),
		InterestsNarrative:        r[assessment.QInterestsNarrative].Text,
		ExperienceNarrative:       r[assessment.QExperienceNarrative].Text,
		InspirationNarrative:      r[assessment.QInspirationNarrative].Text,
	}

	switch path {
	case types.PathHandsOn:
		p.Interests = appendUnique(p.Interests, choice(r, assessment.QTradeArea))
	case types.PathCareerFocus:
		p.Interests = appendUnique(p.Interests, choice(r, assessment.QCareerField))
		if choice(r, assessment.QSpecificCareer) == "yes" {
			p.ExplicitCareer = strings.TrimSpace(r[assessment.QNamedCareer].First())
		}
	}

	if len(p.Interests) == 0 {
		p.Interests = []string{DefaultInterest}
	}
	if len(p.Traits) == 0 {
		p.Traits = []string{DefaultTrait}
	}
	if p.EducationGoal == "" {
		p.EducationGoal = DefaultEducationGoal
	}
	if p.WorkEnvironmentPreference == "" {
		p.WorkEnvironmentPreference = DefaultWorkEnvironment
	}
	return p
}

// choice returns the canonical option value of a single-choice answer, or
// the trimmed raw value when the question has no options.
func choice(r types.Responses, id string) string {
	a, ok := r[id]
	if !ok {
		return ""
	}
	v := a.First()
	if q, found := assessment.LookupQuestion(id); found {
		if canon, ok := assessment.CanonicalOption(q, v); ok {
			return canon
		}
	}
	return strings.TrimSpace(v)
}

func choices(r types.Responses, id string) []string {
	out := []string{}
	a, ok := r[id]
	if !ok {
		return out
	}
	q, found := assessment.LookupQuestion(id)
	for _, v := range a.List() {
		if found {
			if canon, ok := assessment.CanonicalOption(q, v); ok {
				v = canon
			}
		}
		out = appendUnique(out, v)
	}
	return out
}

func matrix(r types.Responses, id string) map[string]string {
	out := map[string]string{}
	a, ok := r[id]
	if !ok {
		return out
	}
	q, found := assessment.LookupQuestion(id)
	for row, v := range a.Matrix {
		if found {
			if canon, ok := assessment.CanonicalOption(q, v); ok {
				v = canon
			}
		}
		out[row] = v
	}
	return out
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}
