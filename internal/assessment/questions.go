// Package assessment implements the branching self-assessment: the question
// table, path selection, answer validation, progress and session transitions.
package assessment

import (
	"regexp"

	"github.com/jonathan/career-compass/internal/types"
)

// Question IDs shared by every path
const (
	QGrade                = "grade"
	QZipCode              = "zip_code"
	QCareerDirection      = "career_direction"
	QInterests            = "interests"
	QEducationGoal        = "education_goal"
	QSkills               = "skills"
	QTraits               = "traits"
	QWorkEnvironment      = "work_environment"
	QAcademicPerformance  = "academic_performance"
	QConstraints          = "constraints"
	QInterestsNarrative   = "interests_narrative"
	QExperienceNarrative  = "experience_narrative"
	QInspirationNarrative = "inspiration_narrative"
)

// Path-specific question IDs
const (
	QTradeArea              = "trade_area"
	QApprenticeshipInterest = "apprenticeship_interest"
	QPhysicalWorkComfort    = "physical_work_comfort"

	QCareerField    = "career_field"
	QSpecificCareer = "specific_career"
	QNamedCareer    = "named_career"

	QSectorCuriosity  = "sector_curiosity"
	QExplorationStyle = "exploration_style"
)

// Branching answer values
const (
	DirectionHandsOn   = "hands_on"
	DirectionFocused   = "career_focused"
	DirectionUndecided = "undecided"
)

const narrativeMaxLength = 2000

func opts(values ...string) []types.Option {
	out := make([]types.Option, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, types.Option{Value: values[i], Label: values[i+1]})
	}
	return out
}

var commonQuestions = []types.Question{
	{
		ID: QGrade, Type: types.QuestionSingleChoice, Required: true, Weight: 0.5,
		Prompt:  "What grade are you in?",
		Options: opts("9", "9th grade", "10", "10th grade", "11", "11th grade", "12", "12th grade", "graduated", "Already graduated"),
	},
	{
		ID: QZipCode, Type: types.QuestionFreeText, Required: true, Weight: 0.5,
		Prompt:    "What is your ZIP code?",
		MaxLength: 10,
		Pattern:   `^\d{5}(-\d{4})?$`,
	},
	{
		ID: QCareerDirection, Type: types.QuestionSingleChoice, Required: true, Weight: 1,
		Prompt: "Which best describes the kind of work you picture yourself doing?",
		Options: opts(
			DirectionHandsOn, "Hands-on work: building, fixing, or operating things",
			DirectionFocused, "Other work: I have a field or career in mind",
			DirectionUndecided, "I'm still figuring it out",
		),
	},
	{
		ID: QInterests, Type: types.QuestionMultiChoice, Required: true, Weight: 1,
		Prompt: "Which areas interest you?",
		Options: opts(
			"healthcare", "Health and medicine",
			"technology", "Computers and technology",
			"creative", "Art, design, and media",
			"business", "Business and money",
			"construction", "Building and infrastructure",
			"public_service", "Public service and safety",
			"education", "Teaching and coaching",
			"science", "Science and research",
			"outdoors", "Working outdoors",
			"helping_people", "Helping people",
			"mechanical", "Machines and how things work",
		),
	},
	{
		ID: QEducationGoal, Type: types.QuestionSingleChoice, Required: true, Weight: 1,
		Prompt: "How much education after high school are you planning?",
		Options: opts(
			types.EducationHighSchool, "None, I want to start working",
			types.EducationCertificate, "A certificate or apprenticeship",
			types.EducationAssociate, "A two-year degree",
			types.EducationBachelor, "A four-year degree",
			types.EducationMaster, "A master's degree",
			types.EducationDoctorate, "A doctorate or professional degree",
			types.EducationUndecided, "Not sure yet",
		),
	},
	{
		ID: QSkills, Type: types.QuestionMultiChoice, Weight: 0.75,
		Prompt: "Which of these are you already good at?",
		Options: opts(
			"math", "Math",
			"writing", "Writing",
			"communication", "Talking with people",
			"problem_solving", "Solving puzzles and problems",
			"coding", "Coding",
			"drawing", "Drawing or design",
			"mechanical_repair", "Fixing things",
			"caregiving", "Taking care of others",
			"organization", "Staying organized",
			"public_speaking", "Public speaking",
			"teamwork", "Working on a team",
		),
	},
	{
		ID: QTraits, Type: types.QuestionMultiChoice, Weight: 0.75,
		Prompt: "Which words describe you?",
		Options: opts(
			"analytical", "Analytical",
			"creative", "Creative",
			"caring", "Caring",
			"hands_on", "Hands-on",
			"leadership", "A leader",
			"detail_oriented", "Detail-oriented",
			"social", "Outgoing",
			"independent", "Independent",
			"patient", "Patient",
		),
	},
	{
		ID: QWorkEnvironment, Type: types.QuestionSingleChoice, Weight: 0.5,
		Prompt: "Where would you most like to work?",
		Options: opts(
			"outdoors", "Outdoors",
			"office", "An office",
			"hospital", "A hospital or clinic",
			"workshop", "A shop or job site",
			"classroom", "A classroom",
			"studio", "A studio",
			"remote", "From home",
			"no_preference", "No preference",
		),
	},
	{
		ID: QAcademicPerformance, Type: types.QuestionMatrix, Weight: 0.5,
		Prompt:  "How are you doing in each subject?",
		Rows:    []string{"math", "science", "english", "social_studies", "arts", "technology"},
		Options: opts("strong", "Strong", "average", "Average", "developing", "Still developing"),
	},
	{
		ID: QConstraints, Type: types.QuestionMultiChoice, Weight: 0.5,
		Prompt: "Do any of these apply to you?",
		Options: opts(
			"earn_within_one_year", "I need to earn income within a year",
			"minimize_debt", "I want to avoid student debt",
			"stay_local", "I want to stay close to home",
			"flexible_schedule", "I need a flexible schedule",
		),
	},
	{
		ID: QInterestsNarrative, Type: types.QuestionFreeText, Weight: 0.25,
		Prompt:    "Tell us about something you love doing.",
		MaxLength: narrativeMaxLength,
	},
	{
		ID: QExperienceNarrative, Type: types.QuestionFreeText, Weight: 0.25,
		Prompt:    "Describe a job, project, or activity you've done.",
		MaxLength: narrativeMaxLength,
	},
	{
		ID: QInspirationNarrative, Type: types.QuestionFreeText, Weight: 0.25,
		Prompt:    "Who or what inspires your future plans?",
		MaxLength: narrativeMaxLength,
	},
}

// pathQuestions is the per-path conditional question table.
var pathQuestions = map[types.PathID][]types.Question{
	types.PathHandsOn: {
		{
			ID: QTradeArea, Type: types.QuestionSingleChoice, Required: true, Weight: 1,
			Prompt: "Which hands-on area interests you most?",
			Options: opts(
				"electrical", "Electrical",
				"carpentry", "Carpentry and construction",
				"automotive", "Automotive",
				"welding", "Welding",
				"hvac", "Heating and cooling",
				"plumbing", "Plumbing",
				"health_technician", "Medical equipment and patient support",
				"it_support", "Computer and network repair",
			),
		},
		{
			ID: QApprenticeshipInterest, Type: types.QuestionRating, Required: true, Weight: 0.75,
			Prompt: "How interested are you in a paid apprenticeship?",
			Min:    1, Max: 5,
		},
		{
			ID: QPhysicalWorkComfort, Type: types.QuestionRating, Weight: 0.5,
			Prompt: "How comfortable are you with physically demanding work?",
			Min:    1, Max: 5,
		},
	},
	types.PathCareerFocus: {
		{
			ID: QCareerField, Type: types.QuestionSingleChoice, Required: true, Weight: 1,
			Prompt: "Which field are you aiming for?",
			Options: opts(
				string(types.SectorHealthcare), "Healthcare",
				string(types.SectorInfrastructure), "Building and infrastructure",
				string(types.SectorTechnology), "Technology",
				string(types.SectorCreative), "Creative arts and media",
				string(types.SectorBusiness), "Business",
				string(types.SectorPublicService), "Public service",
				string(types.SectorEducation), "Education",
			),
		},
		{
			ID: QSpecificCareer, Type: types.QuestionSingleChoice, Required: true, Weight: 0.5,
			Prompt:  "Do you already know the exact career you want?",
			Options: opts("yes", "Yes", "no", "Not yet"),
		},
		{
			ID: QNamedCareer, Type: types.QuestionFreeText, Required: true, Weight: 1,
			Prompt:    "Which career?",
			MaxLength: 120,
			Trigger:   &types.Trigger{ParentID: QSpecificCareer, Value: "yes"},
		},
	},
	types.PathExploring: {
		{
			ID: QSectorCuriosity, Type: types.QuestionRating, Required: true, Weight: 0.75,
			Prompt: "How open are you to careers you have never heard of?",
			Min:    1, Max: 5,
		},
		{
			ID: QExplorationStyle, Type: types.QuestionSingleChoice, Weight: 0.5,
			Prompt:  "How do you like to explore?",
			Options: opts("try_many", "Try a little of everything", "deep_dive", "Go deep on one thing"),
		},
	},
}

// compiled free-text patterns, keyed by question ID
var patterns = compilePatterns()

// questionIndex maps every question ID, on any path, to its definition.
var questionIndex = indexQuestions()

func compilePatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	add := func(qs []types.Question) {
		for _, q := range qs {
			if q.Pattern != "" {
				out[q.ID] = regexp.MustCompile(q.Pattern)
			}
		}
	}
	add(commonQuestions)
	for _, p := range []types.PathID{types.PathHandsOn, types.PathCareerFocus, types.PathExploring} {
		add(pathQuestions[p])
	}
	return out
}

func indexQuestions() map[string]types.Question {
	out := make(map[string]types.Question)
	for _, q := range commonQuestions {
		out[q.ID] = q
	}
	for _, p := range []types.PathID{types.PathHandsOn, types.PathCareerFocus, types.PathExploring} {
		for _, q := range pathQuestions[p] {
			out[q.ID] = q
		}
	}
	return out
}

// LookupQuestion returns the definition of a question on any path.
func LookupQuestion(id string) (types.Question, bool) {
	q, ok := questionIndex[id]
	return q, ok
}

// QuestionsForPath returns the ordered union of the common questions and the
// given path's conditional questions. An undetermined path yields only the
// common questions.
func QuestionsForPath(path types.PathID) []types.Question {
	extra := pathQuestions[path]
	out := make([]types.Question, 0, len(commonQuestions)+len(extra))
	out = append(out, commonQuestions...)
	out = append(out, extra...)
	return out
}

// pathOf returns the path a question belongs to, or PathUndetermined for common questions.
func pathOf(id string) types.PathID {
	for p, qs := range pathQuestions {
		for _, q := range qs {
			if q.ID == id {
				return p
			}
		}
	}
	return types.PathUndetermined
}
