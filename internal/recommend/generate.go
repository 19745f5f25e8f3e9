package recommend

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/prompts"
	"github.com/jonathan/career-compass/internal/schemas"
	"github.com/jonathan/career-compass/internal/types"
)

// Result is the outcome of one generative attempt. Exactly one of
// Recommendation and Err is meaningful.
type Result struct {
	Recommendation types.Recommendation
	Err            error
}

// generatedCourse mirrors the course object in provider output.
type generatedCourse struct {
	Course    string `json:"course"`
	Subject   string `json:"subject"`
	Relevance string `json:"relevance"`
	Reason    string `json:"reason"`
}

type generatedRecommendation struct {
	Pathway     []types.PathwayStep `json:"pathway"`
	Timeline    string              `json:"timeline"`
	SkillGaps   []types.SkillGap    `json:"skill_gaps"`
	ActionItems []types.ActionItem  `json:"action_items"`
	Courses     []generatedCourse   `json:"courses"`
}

// buildPrompt renders the recommendation request for one career.
func buildPrompt(in Input, match types.CareerMatch, career types.Career) (string, error) {
	p := in.Profile
	data := map[string]string{
		"Grade":             gradeLabel(in.grade()),
		"CareerTitle":       career.Title,
		"Sector":            string(career.Sector),
		"RequiredEducation": strings.ReplaceAll(career.RequiredEducation, "_", " "),
		"Certifications":    joinOrNone(career.Certifications),
		"MatchReasons":      joinOrNone(match.ReasoningFactors),
		"Interests":         joinOrNone(p.Interests),
		"Skills":            joinOrNone(p.Skills),
		"EducationGoal":     p.EducationGoal,
		"Constraints":       joinOrNone(p.Constraints),
		"Academics":         academics(p.AcademicPerformance),
		"ZipCode":           orNone(in.zip()),
		"Narratives":        joinOrNone(nonEmpty(p.Narratives())),
	}
	prompt, err := prompts.Render(prompts.CareerRecommendation, data)
	if err != nil {
		return "", fmt.Errorf("failed to render recommendation prompt: %w", err)
	}
	return prompt, nil
}

// parseGenerated turns provider text into a recommendation for career.
// The text must be a JSON object that satisfies the recommendation schema.
func parseGenerated(text string, career types.Career) (types.Recommendation, error) {
	cleaned := llm.CleanJSONBlock(text)
	if strings.TrimSpace(cleaned) == "" {
		return types.Recommendation{}, &ProviderMalformedResponseError{CareerID: career.ID, Reason: "empty response"}
	}
	if err := schemas.Validate(schemas.Recommendation, []byte(cleaned)); err != nil {
		return types.Recommendation{}, &ProviderMalformedResponseError{CareerID: career.ID, Reason: "schema validation failed", Cause: err}
	}

	var g generatedRecommendation
	if err := json.Unmarshal([]byte(cleaned), &g); err != nil {
		return types.Recommendation{}, &ProviderMalformedResponseError{CareerID: career.ID, Reason: "invalid JSON", Cause: err}
	}

	sort.SliceStable(g.Pathway, func(i, j int) bool { return g.Pathway[i].Order < g.Pathway[j].Order })
	for i := range g.Pathway {
		g.Pathway[i].Order = i + 1
	}

	courses := make([]types.CourseSuggestion, 0, len(g.Courses))
	for _, c := range g.Courses {
		courses = append(courses, types.CourseSuggestion{
			Course:    c.Course,
			Subject:   c.Subject,
			Relevance: c.Relevance,
			CareerIDs: []string{career.ID},
			Reason:    c.Reason,
		})
	}

	return types.Recommendation{
		CareerID:    career.ID,
		CareerTitle: career.Title,
		Sector:      career.Sector,
		Pathway:     g.Pathway,
		Timeline:    g.Timeline,
		SkillGaps:   g.SkillGaps,
		ActionItems: g.ActionItems,
		Courses:     courses,
		Source:      types.SourceGenerated,
	}, nil
}

func gradeLabel(grade string) string {
	switch grade {
	case "9":
		return "9th"
	case "10":
		return "10th"
	case "11":
		return "11th"
	case "12":
		return "12th"
	case "graduated":
		return "recently graduated 12th"
	default:
		return "high school"
	}
}

func academics(perf map[string]string) string {
	if len(perf) == 0 {
		return "none"
	}
	subjects := make([]string, 0, len(perf))
	for s := range perf {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	parts := make([]string, len(subjects))
	for i, s := range subjects {
		parts[i] = subjectLabel(s) + ": " + perf[s]
	}
	return strings.Join(parts, ", ")
}

func joinOrNone(list []string) string {
	if len(list) == 0 {
		return "none"
	}
	return strings.Join(list, "; ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func nonEmpty(list []string) []string {
	var out []string
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
