package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/labor"
	"github.com/jonathan/career-compass/internal/profile"
	"github.com/jonathan/career-compass/internal/types"
)

func career(id string, sector types.Sector, edu string, salary int, keywords ...string) types.Career {
	return types.Career{
		ID:                id,
		Title:             id,
		Sector:            sector,
		RequiredEducation: edu,
		AverageSalary:     salary,
		GrowthOutlook:     "moderate",
		Keywords:          keywords,
		MonthsToEntry:     12,
	}
}

func mustCatalog(t *testing.T, careers ...types.Career) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(careers)
	require.NoError(t, err)
	return c
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestMatch_HealthcareAssociateScenario(t *testing.T) {
	cat := mustCatalog(t,
		career("software-developer", types.SectorTechnology, types.EducationBachelor, 120000, "technology"),
		career("respiratory-therapist", types.SectorHealthcare, types.EducationAssociate, 70000, "healthcare"),
		career("accountant", types.SectorBusiness, types.EducationBachelor, 80000, "business"),
	)
	engine := NewEngine(cat)

	matches, err := engine.Match(context.Background(), Request{
		Profile: types.StudentProfile{Interests: []string{"Healthcare"}, EducationGoal: "associate"},
	})

	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "respiratory-therapist", matches[0].CareerID)
	assert.GreaterOrEqual(t, matches[0].MatchScore, 70)
}

func TestMatch_EmbeddedCatalogScenario(t *testing.T) {
	engine := NewEngine(defaultCatalog(t))
	matches, err := engine.Match(context.Background(), Request{
		Profile: types.StudentProfile{Interests: []string{"Healthcare"}, EducationGoal: "associate"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.SectorHealthcare, matches[0].Sector)
	assert.Equal(t, 75, matches[0].MatchScore)
	assert.Len(t, matches, DefaultLimit)
}

func TestMatch_TieBreaks(t *testing.T) {
	cat := mustCatalog(t,
		career("first", types.SectorBusiness, types.EducationBachelor, 50000, "business"),
		career("richer", types.SectorBusiness, types.EducationBachelor, 90000, "business"),
		career("second", types.SectorBusiness, types.EducationBachelor, 50000, "business"),
	)
	engine := NewEngine(cat)
	p := types.StudentProfile{Interests: []string{"business"}, EducationGoal: "bachelor"}

	for i := 0; i < 5; i++ {
		matches, err := engine.Match(context.Background(), Request{Profile: p})
		require.NoError(t, err)
		ids := []string{matches[0].CareerID, matches[1].CareerID, matches[2].CareerID}
		assert.Equal(t, []string{"richer", "first", "second"}, ids)
	}
}

func TestMatch_Limit(t *testing.T) {
	engine := NewEngine(defaultCatalog(t))
	p := profile.Build(types.Responses{}, types.PathHandsOn)

	matches, err := engine.Match(context.Background(), Request{Profile: p, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	engine = NewEngine(defaultCatalog(t), WithDefaultLimit(7))
	matches, err = engine.Match(context.Background(), Request{Profile: p})
	require.NoError(t, err)
	assert.Len(t, matches, 7)
}

func TestMatch_ExploringPathIsDiverse(t *testing.T) {
	engine := NewEngine(defaultCatalog(t))

	profiles := []types.StudentProfile{
		profile.Build(types.Responses{}, types.PathExploring),
		{Path: types.PathExploring, Interests: []string{"healthcare"}, EducationGoal: "associate"},
		{Path: types.PathExploring, Interests: []string{"technology", "science"}, EducationGoal: "bachelor", Traits: []string{"analytical"}},
	}
	for _, p := range profiles {
		matches, err := engine.Match(context.Background(), Request{Profile: p, Limit: 10})
		require.NoError(t, err)
		require.Len(t, matches, ExploringResultSize)

		sectors := map[types.Sector]bool{}
		for _, m := range matches {
			sectors[m.Sector] = true
		}
		assert.Len(t, sectors, 3, "sectors must be pairwise distinct: %+v", matches)
	}
}

func TestMatch_ExploringPathPicksBestPerSector(t *testing.T) {
	cat := mustCatalog(t,
		career("nurse", types.SectorHealthcare, types.EducationAssociate, 80000, "healthcare"),
		career("tech", types.SectorHealthcare, types.EducationAssociate, 60000, "healthcare"),
		career("medic", types.SectorHealthcare, types.EducationAssociate, 50000, "healthcare"),
		career("teacher", types.SectorEducation, types.EducationBachelor, 60000, "education"),
		career("clerk", types.SectorBusiness, types.EducationHighSchool, 30000, "business"),
	)
	engine := NewEngine(cat)
	p := types.StudentProfile{Path: types.PathExploring, Interests: []string{"healthcare"}, EducationGoal: "associate"}

	matches, err := engine.Match(context.Background(), Request{Profile: p})
	require.NoError(t, err)
	assert.Equal(t, []string{"nurse", "teacher", "clerk"},
		[]string{matches[0].CareerID, matches[1].CareerID, matches[2].CareerID})
}

func TestMatch_ExploringPathTooFewSectors(t *testing.T) {
	cat := mustCatalog(t,
		career("a", types.SectorHealthcare, types.EducationAssociate, 1, "healthcare"),
		career("b", types.SectorBusiness, types.EducationAssociate, 1, "business"),
	)
	_, err := NewEngine(cat).Match(context.Background(), Request{Profile: types.StudentProfile{Path: types.PathExploring}})
	assert.ErrorIs(t, err, ErrTooFewSectors)
}

func TestMatch_ExplicitCareerAlwaysFirst(t *testing.T) {
	engine := NewEngine(defaultCatalog(t))
	p := types.StudentProfile{
		Path:           types.PathCareerFocus,
		Interests:      []string{"healthcare", "helping_people", "science"},
		EducationGoal:  "associate",
		Traits:         []string{"caring", "patient"},
		ExplicitCareer: "photographer",
	}

	matches, err := engine.Match(context.Background(), Request{Profile: p})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "photographer", matches[0].CareerID)
	assert.True(t, matches[0].Explicit)
	assert.Equal(t, explicitFactor, matches[0].ReasoningFactors[0])
	assert.Less(t, matches[0].MatchScore, matches[1].MatchScore, "override is not a score bonus")

	for _, m := range matches[1:] {
		assert.NotEqual(t, "photographer", m.CareerID)
	}
}

func TestMatch_UnknownExplicitCareerIsLoggedAndExcluded(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	engine := NewEngine(defaultCatalog(t), WithLogger(zap.New(core)))
	p := types.StudentProfile{Interests: []string{"healthcare"}, ExplicitCareer: "Dragon Tamer"}

	matches, err := engine.Match(context.Background(), Request{Profile: p})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.False(t, m.Explicit)
	}
	assert.Equal(t, 1, logs.FilterMessage("named career not in catalog; ranking without it").Len())
}

func TestMatch_ScoresAlwaysInRange(t *testing.T) {
	engine := NewEngine(defaultCatalog(t))
	profiles := []types.StudentProfile{
		{},
		profile.Build(types.Responses{}, types.PathUndetermined),
		{Interests: []string{"healthcare"}, Constraints: []string{"earn_within_one_year", "minimize_debt"}, EducationGoal: "high_school"},
		{
			Interests:                 []string{"technology", "science", "creative", "business"},
			Traits:                    []string{"analytical", "independent", "creative"},
			EducationGoal:             "bachelor",
			WorkEnvironmentPreference: "remote",
			InterestsNarrative:        "I love coding apps and video games",
		},
	}
	for _, p := range profiles {
		matches, err := engine.Match(context.Background(), Request{Profile: p, Limit: 100})
		require.NoError(t, err)
		for _, m := range matches {
			assert.GreaterOrEqual(t, m.MatchScore, 0)
			assert.LessOrEqual(t, m.MatchScore, 100)
		}
	}
}

func TestMatch_FactorsCarryNoNumbers(t *testing.T) {
	engine := NewEngine(defaultCatalog(t))
	p := types.StudentProfile{
		Interests:                 []string{"healthcare", "helping_people"},
		Traits:                    []string{"caring"},
		EducationGoal:             "associate",
		WorkEnvironmentPreference: "hospital",
		Constraints:               []string{"earn_within_one_year"},
	}
	matches, err := engine.Match(context.Background(), Request{Profile: p, Limit: 100})
	require.NoError(t, err)
	for _, m := range matches {
		for _, f := range m.ReasoningFactors {
			assert.NotRegexp(t, `[0-9]`, f)
		}
	}
}

func TestComputeConstraintPenalty(t *testing.T) {
	p := &types.StudentProfile{Constraints: []string{"earn_within_one_year", "minimize_debt"}}

	quick := career("quick", types.SectorBusiness, types.EducationHighSchool, 1, "business")
	quick.MonthsToEntry = 3
	pen, _ := computeConstraintPenalty(p, &quick)
	assert.Equal(t, 0.0, pen)

	slow := career("slow", types.SectorBusiness, types.EducationAssociate, 1, "business")
	slow.MonthsToEntry = 24
	pen, kind := computeConstraintPenalty(p, &slow)
	assert.InDelta(t, slowEntryPenalty, pen, 1e-9)
	assert.True(t, kind.slowEntry)

	long := career("long", types.SectorBusiness, types.EducationBachelor, 1, "business")
	long.MonthsToEntry = 48
	pen, kind = computeConstraintPenalty(p, &long)
	assert.InDelta(t, verySlowEntryPenalty+debtPenalty, pen, 1e-9)
	assert.True(t, kind.debt)
}

func TestComputeInterestOverlap(t *testing.T) {
	c := career("dev", types.SectorTechnology, types.EducationBachelor, 1, "technology", "science", "creative")

	score, matched, narrative := computeInterestOverlap(&types.StudentProfile{Interests: []string{"technology"}}, &c)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, []string{"technology"}, matched)
	assert.False(t, narrative)

	score, _, narrative = computeInterestOverlap(&types.StudentProfile{
		Interests:          []string{"technology", "outdoors"},
		InterestsNarrative: "I spend weekends in the chemistry lab",
	}, &c)
	assert.InDelta(t, 0.75, score, 1e-9)
	assert.True(t, narrative)

	score, _, _ = computeInterestOverlap(&types.StudentProfile{}, &c)
	assert.Equal(t, 0.0, score)
}

func TestComputeEducationFit(t *testing.T) {
	c := career("x", types.SectorBusiness, types.EducationAssociate, 1, "business")
	tests := []struct {
		goal string
		want float64
	}{
		{types.EducationAssociate, 1},
		{types.EducationCertificate, 0.5},
		{types.EducationBachelor, 0.5},
		{types.EducationDoctorate, 0},
		{types.EducationUndecided, 0.5},
		{"", 0.5},
	}
	for _, tt := range tests {
		got, _ := computeEducationFit(&types.StudentProfile{EducationGoal: tt.goal}, &c)
		assert.Equal(t, tt.want, got, tt.goal)
	}
}

type stubLabor struct {
	estimates map[string]labor.Estimate
	err       error
}

func (s *stubLabor) Estimate(_ context.Context, _ string, _ []types.Career) (map[string]labor.Estimate, error) {
	return s.estimates, s.err
}

func TestMatch_LocalDemand(t *testing.T) {
	cat := mustCatalog(t, career("nurse", types.SectorHealthcare, types.EducationAssociate, 80000, "healthcare"))
	p := types.StudentProfile{Interests: []string{"healthcare"}}

	engine := NewEngine(cat, WithLaborProvider(&stubLabor{estimates: map[string]labor.Estimate{
		"nurse": {CareerID: "nurse", Demand: types.DemandHigh, Salary: 91000},
	}}))
	matches, err := engine.Match(context.Background(), Request{Profile: p, ZipCode: "60614"})
	require.NoError(t, err)
	assert.Equal(t, types.DemandHigh, matches[0].LocalDemand)
	assert.Equal(t, 91000, matches[0].EstimatedLocalSalary)

	withoutZip, err := engine.Match(context.Background(), Request{Profile: p})
	require.NoError(t, err)
	assert.Equal(t, types.DemandUnknown, withoutZip[0].LocalDemand)

	failing := NewEngine(cat, WithLaborProvider(&stubLabor{err: errors.New("upstream down")}))
	matches, err = failing.Match(context.Background(), Request{Profile: p, ZipCode: "60614"})
	require.NoError(t, err)
	assert.Equal(t, types.DemandUnknown, matches[0].LocalDemand)
	assert.Equal(t, matches[0].MatchScore, withoutZip[0].MatchScore, "labor data never changes scores")
}
