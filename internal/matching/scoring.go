package matching

import (
	"math"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// Sub-score weights. They sum to 1.
const (
	interestWeight    = 0.40
	educationWeight   = 0.30
	traitWeight       = 0.20
	environmentWeight = 0.10
)

// Constraint penalties
const (
	slowEntryPenalty     = 0.20 // earn within a year, more than 12 months to entry
	verySlowEntryPenalty = 0.30 // earn within a year, more than 36 months to entry
	debtPenalty          = 0.10 // minimize debt, bachelor or above
)

const (
	constraintEarnSoon     = "earn_within_one_year"
	constraintMinimizeDebt = "minimize_debt"
	noPreference           = "no_preference"
)

// narrativeTerms extends career keywords with everyday words a student
// might use in free text.
var narrativeTerms = map[string][]string{
	"healthcare":        {"hospital", "nurse", "doctor", "medicine", "patients", "clinic", "health"},
	"helping_people":    {"help people", "helping others", "volunteer", "care for"},
	"science":           {"science", "lab", "biology", "chemistry", "experiment"},
	"technology":        {"computer", "coding", "programming", "software", "app", "website", "video games"},
	"creative":          {"art", "drawing", "design", "music", "film", "photography", "painting"},
	"business":          {"business", "money", "sales", "marketing", "start a company", "entrepreneur"},
	"construction":      {"build", "building", "construction", "tools", "house"},
	"mechanical":        {"engine", "machines", "fix", "repair", "cars"},
	"automotive":        {"car", "cars", "truck", "engine"},
	"electrical":        {"wiring", "electric", "electricity", "circuits"},
	"welding":           {"welding", "metal"},
	"carpentry":         {"wood", "woodworking", "furniture"},
	"plumbing":          {"pipes", "plumbing"},
	"hvac":              {"heating", "air conditioning"},
	"outdoors":          {"outside", "outdoors", "nature", "hiking"},
	"public_service":    {"community", "police", "firefighter", "serve", "justice"},
	"education":         {"teach", "teacher", "tutor", "coach", "kids", "school"},
	"it_support":        {"computer", "network", "tech support"},
	"health_technician": {"lab", "medical equipment", "pharmacy"},
	"infrastructure":    {"roads", "bridges", "city"},
}

// normalizeTerm lowercases s and folds spaces and hyphens into underscores,
// so "Public Service", "public-service" and "public_service" compare equal.
func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func normalizedSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if n := normalizeTerm(v); n != "" {
			set[n] = true
		}
	}
	return set
}

// computeInterestOverlap scores profile interests against career keywords.
// Each direct match counts 1 and each keyword echoed only in the narratives
// counts 0.5; the total is divided by min(len(interests), 3) and capped at 1.
// It returns the matched interests in career keyword order and whether any
// narrative contributed.
func computeInterestOverlap(p *types.StudentProfile, c *types.Career) (float64, []string, bool) {
	interests := normalizedSet(p.Interests)
	narrative := strings.ToLower(strings.Join(p.Narratives(), " "))

	var matched []string
	narrativeHits := 0
	for _, kw := range c.Keywords {
		key := normalizeTerm(kw)
		if interests[key] {
			matched = append(matched, key)
			continue
		}
		if narrative != "" && narrativeMentions(narrative, key) {
			narrativeHits++
		}
	}

	denom := math.Min(float64(len(p.Interests)), 3)
	if denom == 0 {
		return 0, matched, false
	}
	score := (float64(len(matched)) + 0.5*float64(narrativeHits)) / denom
	return math.Min(score, 1), matched, narrativeHits > 0
}

func narrativeMentions(text, keyword string) bool {
	if strings.Contains(text, strings.ReplaceAll(keyword, "_", " ")) {
		return true
	}
	for _, term := range narrativeTerms[keyword] {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// educationFit is the relation between the student's plan and a career's
// required tier.
type educationFit int

const (
	educationMismatch educationFit = iota
	educationAdjacent
	educationUndecided
	educationExact
)

func computeEducationFit(p *types.StudentProfile, c *types.Career) (float64, educationFit) {
	goal, ok := types.EducationRank(p.EducationGoal)
	if !ok {
		return 0.5, educationUndecided
	}
	req, ok := types.EducationRank(c.RequiredEducation)
	if !ok {
		return 0.5, educationUndecided
	}
	switch diff := goal - req; {
	case diff == 0:
		return 1, educationExact
	case diff == 1 || diff == -1:
		return 0.5, educationAdjacent
	default:
		return 0, educationMismatch
	}
}

// computeTraitAlignment divides shared traits by min(len(career traits), 3).
func computeTraitAlignment(p *types.StudentProfile, c *types.Career) (float64, []string) {
	if len(c.Traits) == 0 {
		return 0, nil
	}
	have := normalizedSet(p.Traits)
	var shared []string
	for _, t := range c.Traits {
		if key := normalizeTerm(t); have[key] {
			shared = append(shared, key)
		}
	}
	denom := math.Min(float64(len(c.Traits)), 3)
	return math.Min(float64(len(shared))/denom, 1), shared
}

func computeEnvironmentFit(p *types.StudentProfile, c *types.Career) float64 {
	pref := normalizeTerm(p.WorkEnvironmentPreference)
	if pref == "" || pref == noPreference {
		return 0.5
	}
	for _, env := range c.WorkEnvironments {
		if normalizeTerm(env) == pref {
			return 1
		}
	}
	return 0
}

// penaltyKind records which constraint conflicts applied.
type penaltyKind struct {
	slowEntry bool
	debt      bool
}

func computeConstraintPenalty(p *types.StudentProfile, c *types.Career) (float64, penaltyKind) {
	var penalty float64
	var kind penaltyKind
	if p.HasConstraint(constraintEarnSoon) {
		switch {
		case c.MonthsToEntry > 36:
			penalty += verySlowEntryPenalty
			kind.slowEntry = true
		case c.MonthsToEntry > 12:
			penalty += slowEntryPenalty
			kind.slowEntry = true
		}
	}
	if p.HasConstraint(constraintMinimizeDebt) {
		bachelor, _ := types.EducationRank(types.EducationBachelor)
		if req, ok := types.EducationRank(c.RequiredEducation); ok && req >= bachelor {
			penalty += debtPenalty
			kind.debt = true
		}
	}
	return penalty, kind
}

// breakdown is the full scoring detail for one career.
type breakdown struct {
	score        int
	interest     float64
	matched      []string
	narrative    bool
	education    educationFit
	sharedTraits []string
	environment  float64
	penalties    penaltyKind
	highGrowth   bool
}

// scoreCareer computes the clamped 0-100 match score and its breakdown.
func scoreCareer(p *types.StudentProfile, c *types.Career) breakdown {
	interest, matched, narrative := computeInterestOverlap(p, c)
	edu, fit := computeEducationFit(p, c)
	trait, shared := computeTraitAlignment(p, c)
	env := computeEnvironmentFit(p, c)
	penalty, kind := computeConstraintPenalty(p, c)

	raw := interestWeight*interest +
		educationWeight*edu +
		traitWeight*trait +
		environmentWeight*env -
		penalty

	return breakdown{
		score:        clampScore(raw),
		interest:     interest,
		matched:      matched,
		narrative:    narrative,
		education:    fit,
		sharedTraits: shared,
		environment:  env,
		penalties:    kind,
		highGrowth:   c.GrowthOutlook == "high",
	}
}

// clampScore converts a raw 0-1 value into an integer percentage in [0, 100].
func clampScore(raw float64) int {
	if math.IsNaN(raw) {
		return 0
	}
	s := int(math.Round(raw * 100))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
