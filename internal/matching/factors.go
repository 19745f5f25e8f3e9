package matching

import (
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

var educationLabels = map[string]string{
	types.EducationHighSchool:  "a high school diploma",
	types.EducationCertificate: "a certificate or apprenticeship",
	types.EducationAssociate:   "an associate degree",
	types.EducationBachelor:    "a bachelor's degree",
	types.EducationMaster:      "a master's degree",
	types.EducationDoctorate:   "a doctorate",
}

var environmentLabels = map[string]string{
	"outdoors":  "outdoor",
	"office":    "office",
	"hospital":  "hospital or clinic",
	"workshop":  "shop or job site",
	"classroom": "classroom",
	"studio":    "studio",
	"remote":    "remote",
}

// humanize turns an option value like helping_people into "helping people".
func humanize(v string) string {
	return strings.ReplaceAll(strings.ReplaceAll(v, "_", " "), "-", " ")
}

func joinWords(words []string) string {
	h := make([]string, len(words))
	for i, w := range words {
		h[i] = humanize(w)
	}
	switch len(h) {
	case 0:
		return ""
	case 1:
		return h[0]
	case 2:
		return h[0] + " and " + h[1]
	}
	return strings.Join(h[:len(h)-1], ", ") + " and " + h[len(h)-1]
}

// reasoningFactors lists the human-auditable reasons behind a score, in a
// fixed order. Factors never carry weights or numeric sub-scores.
func reasoningFactors(p *types.StudentProfile, c *types.Career, b breakdown) []string {
	factors := []string{}

	if len(b.matched) == 1 {
		factors = append(factors, "Matches your interest in "+humanize(b.matched[0]))
	} else if len(b.matched) > 1 {
		factors = append(factors, "Matches your interests in "+joinWords(b.matched))
	}
	if b.narrative {
		factors = append(factors, "Connects to what you wrote about yourself")
	}

	label := educationLabels[c.RequiredEducation]
	switch b.education {
	case educationExact:
		factors = append(factors, "Fits your plan to earn "+label)
	case educationAdjacent:
		factors = append(factors, "Requires "+label+", close to your education plan")
	}

	if len(b.sharedTraits) > 0 {
		factors = append(factors, "Suits your "+joinWords(b.sharedTraits)+" strengths")
	}

	if b.environment == 1 {
		if env, ok := environmentLabels[normalizeTerm(p.WorkEnvironmentPreference)]; ok {
			factors = append(factors, "Offers the "+env+" setting you prefer")
		}
	}

	if b.highGrowth {
		factors = append(factors, "Strong national job growth")
	}

	if b.penalties.slowEntry {
		factors = append(factors, "Takes longer to start earning than you hoped")
	}
	if b.penalties.debt {
		factors = append(factors, "Usually needs a four-year degree or more, which can mean student debt")
	}
	return factors
}
