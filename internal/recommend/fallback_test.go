package recommend

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/types"
)

// sectorMarkers are terms that belong to exactly one sector.
var sectorMarkers = map[types.Sector][]string{
	types.SectorHealthcare:     {"patient", "clinical", "anatomy", "medical", "cpr"},
	types.SectorInfrastructure: {"blueprint", "osha", "hand tools"},
	types.SectorTechnology:     {"programming", "python", "javascript", "sql"},
	types.SectorCreative:       {"portfolio", "adobe", "color theory"},
	types.SectorBusiness:       {"spreadsheet", "excel", "accounting", "marketing"},
	types.SectorPublicService:  {"first responder", "de-escalation", "civics", "criminal justice"},
	types.SectorEducation:      {"lesson plan", "child development", "educators rising"},
}

func profiles() []types.StudentProfile {
	return []types.StudentProfile{
		{
			Interests: []string{"general exploration"}, Traits: []string{"curious"},
			Skills: []string{}, Constraints: []string{}, AcademicPerformance: map[string]string{},
			EducationGoal: types.EducationUndecided,
		},
		{
			Interests: []string{"technology"}, Traits: []string{"analytical"},
			Skills:      []string{"coding", "math", "communication", "caregiving", "writing", "teamwork", "organization", "drawing", "mechanical_repair", "problem_solving", "public_speaking"},
			Constraints: []string{"earn_within_one_year", "minimize_debt"},
			AcademicPerformance: map[string]string{
				"math": "developing", "science": "strong", "english": "developing",
				"social_studies": "strong", "arts": "developing", "technology": "strong",
			},
			EducationGoal: types.EducationBachelor,
		},
	}
}

func TestFallback_DeterministicAndComplete(t *testing.T) {
	cat := testCatalog(t)
	for _, p := range profiles() {
		for _, c := range cat.All() {
			m := types.CareerMatch{CareerID: c.ID, Title: c.Title, Sector: c.Sector}

			first, err := json.Marshal(Fallback(p, "12", m, c))
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				again, err := json.Marshal(Fallback(p, "12", m, c))
				require.NoError(t, err)
				require.Equal(t, string(first), string(again), c.ID)
			}

			rec := Fallback(p, "12", m, c)
			assertComplete(t, rec)
			assert.Equal(t, types.SourceFallback, rec.Source)
		}
	}
}

func TestFallback_SectorPurity(t *testing.T) {
	cat := testCatalog(t)
	for _, p := range profiles() {
		for _, c := range cat.All() {
			rec := Fallback(p, "10", types.CareerMatch{CareerID: c.ID}, c)

			var texts []string
			for _, g := range rec.SkillGaps {
				texts = append(texts, g.Skill, g.Acquisition)
			}
			for _, a := range rec.ActionItems {
				texts = append(texts, a.Description)
			}
			for _, course := range rec.Courses {
				texts = append(texts, course.Course, course.Reason)
			}
			body := strings.ToLower(strings.Join(texts, " | "))

			for sector, markers := range sectorMarkers {
				if sector == c.Sector {
					continue
				}
				for _, marker := range markers {
					assert.NotContains(t, body, marker, "%s (%s) references %s", c.ID, c.Sector, sector)
				}
			}
		}
	}
}

func TestFallback_FiltersExistingSkills(t *testing.T) {
	cat := testCatalog(t)
	nurse, err := cat.Lookup("registered-nurse")
	require.NoError(t, err)

	p := profiles()[0]
	p.Skills = []string{"communication"}
	rec := Fallback(p, "11", types.CareerMatch{}, nurse)
	for _, g := range rec.SkillGaps {
		assert.NotEqual(t, "Patient communication", g.Skill)
	}

	dev, err := cat.Lookup("software-developer")
	require.NoError(t, err)
	rec = Fallback(profiles()[1], "11", types.CareerMatch{}, dev)
	assert.GreaterOrEqual(t, len(rec.SkillGaps), minSkillGaps)
	for _, g := range rec.SkillGaps {
		assert.NotEqual(t, "Programming fundamentals", g.Skill)
	}
}

func TestFallback_KeepsMinimumWhenEverythingIsCovered(t *testing.T) {
	lib := sectorLibrary{Skills: []skillEntry{
		{"A", types.ImportanceCritical, "x", []string{"math"}},
		{"B", types.ImportanceCritical, "y", []string{"math"}},
		{"C", types.ImportanceCritical, "z", []string{"math"}},
	}}
	p := types.StudentProfile{Skills: []string{"math"}}

	gaps := fallbackSkillGaps(p, lib)
	require.Len(t, gaps, minSkillGaps)
	assert.Equal(t, "A", gaps[0].Skill)
	assert.Equal(t, types.ImportanceHelpful, gaps[0].Importance)
}

func TestFallback_AcademicAdjustments(t *testing.T) {
	cat := testCatalog(t)
	nurse, err := cat.Lookup("registered-nurse")
	require.NoError(t, err)

	p := profiles()[0]
	p.AcademicPerformance = map[string]string{"science": "developing"}
	rec := Fallback(p, "9", types.CareerMatch{}, nurse)
	assert.Equal(t, "Get extra help in science through tutoring or teacher office hours", rec.ActionItems[0].Description)
	assert.Equal(t, types.PriorityHigh, rec.ActionItems[0].Priority)

	p.AcademicPerformance = map[string]string{"science": "strong"}
	rec = Fallback(p, "9", types.CareerMatch{}, nurse)
	assert.Contains(t, rec.Pathway[0].Description, "strength in science")
	assert.Contains(t, rec.Courses[0].Reason, "strength in science")
}

func TestFallback_PathwayFollowsEducationTier(t *testing.T) {
	cat := testCatalog(t)

	carpenter, err := cat.Lookup("carpenter")
	require.NoError(t, err)
	rec := Fallback(profiles()[0], "12", types.CareerMatch{}, carpenter)
	assert.Len(t, rec.Pathway, 4)
	assert.Equal(t, "Earn your OSHA 10 credential", rec.Pathway[2].Title)

	photographer, err := cat.Lookup("photographer")
	require.NoError(t, err)
	rec = Fallback(profiles()[0], "12", types.CareerMatch{}, photographer)
	assert.Len(t, rec.Pathway, 3, "no credential step without a certification")

	pt, err := cat.Lookup("physical-therapist")
	require.NoError(t, err)
	rec = Fallback(profiles()[0], "12", types.CareerMatch{}, pt)
	assert.Len(t, rec.Pathway, 6)
	assert.Contains(t, rec.Pathway[2].Title, "doctoral")
	assert.Equal(t, "About 7 years after high school", rec.Timeline)
}

func TestTimelineText(t *testing.T) {
	assert.Equal(t, "Before graduation", timelineText(whenSchool, "11"))
	assert.Equal(t, "In the next six months", timelineText(whenSchool, "graduated"))
	assert.Equal(t, "After high school", timelineText(whenPostHigh, ""))
	assert.Equal(t, "This summer", timelineText(whenSummer, "graduated"))
}

func TestTimelineFor(t *testing.T) {
	assert.Equal(t, "Ready to start right after high school", timelineFor(0))
	assert.Equal(t, "About 6 months of training after high school", timelineFor(6))
	assert.Equal(t, "About 1 year after high school", timelineFor(12))
	assert.Equal(t, "About 2 years after high school", timelineFor(24))
}

func TestCoursePlan(t *testing.T) {
	recs := []types.Recommendation{
		{CareerID: "a", Courses: []types.CourseSuggestion{
			{Course: "Biology", Relevance: types.RelevanceHigh, Reason: "Builds toward A"},
			{Course: "Statistics", Relevance: types.RelevanceMedium},
		}},
		{CareerID: "b", Courses: []types.CourseSuggestion{
			{Course: "Biology", Relevance: types.RelevanceHigh},
			{Course: "Psychology", Relevance: types.RelevanceHigh},
		}},
		{CareerID: "c", Courses: []types.CourseSuggestion{
			{Course: "Statistics", Relevance: types.RelevanceHigh},
			{Course: "Studio Art", Relevance: "bogus"},
		}},
	}

	plan := coursePlan(recs)
	require.Len(t, plan, 4)

	assert.Equal(t, "Biology", plan[0].Course)
	assert.Equal(t, types.RelevanceHigh, plan[0].Relevance)
	assert.Equal(t, []string{"a", "b"}, plan[0].CareerIDs)
	assert.Equal(t, "Builds toward A", plan[0].Reason)

	assert.Equal(t, "Statistics", plan[1].Course)
	assert.Equal(t, types.RelevanceMedium, plan[1].Relevance)
	assert.Equal(t, []string{"a", "c"}, plan[1].CareerIDs)

	assert.Equal(t, types.RelevanceMedium, plan[2].Relevance, "second career caps at medium")
	assert.Equal(t, types.RelevanceLow, plan[3].Relevance)
}
