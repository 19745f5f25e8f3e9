package recommend

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-compass/internal/prompts"
	"github.com/jonathan/career-compass/internal/types"
)

// Output bounds shared by both recommendation paths
const (
	minSkillGaps   = 2
	maxSkillGaps   = 4
	minActionItems = 2
	maxActionItems = 6
)

// Academic performance levels
const (
	levelStrong     = "strong"
	levelDeveloping = "developing"
)

// Fallback builds the recommendation for career from fixed, sector-specific
// rules. Its output depends only on its arguments.
func Fallback(profile types.StudentProfile, grade string, match types.CareerMatch, career types.Career) types.Recommendation {
	lib, ok := libraries[career.Sector]
	if !ok {
		lib = libraries[types.SectorBusiness]
	}

	return types.Recommendation{
		CareerID:    career.ID,
		CareerTitle: titleOf(match, career),
		Sector:      career.Sector,
		Pathway:     fallbackPathway(profile, career, lib),
		Timeline:    timelineFor(career.MonthsToEntry),
		SkillGaps:   fallbackSkillGaps(profile, lib),
		ActionItems: fallbackActions(profile, grade, career, lib),
		Courses:     fallbackCourses(profile, career, lib),
		Source:      types.SourceFallback,
	}
}

func titleOf(match types.CareerMatch, career types.Career) string {
	if career.Title != "" {
		return career.Title
	}
	return match.Title
}

func fallbackPathway(profile types.StudentProfile, career types.Career, lib sectorLibrary) []types.PathwayStep {
	steps, ok := pathwayTemplates[career.RequiredEducation]
	if !ok {
		steps = pathwayTemplates[types.EducationHighSchool]
	}

	out := make([]types.PathwayStep, 0, len(steps))
	for _, tmpl := range steps {
		step := types.PathwayStep{
			Title:       fmt.Sprintf(tmpl.Title, career.Title),
			Description: fmt.Sprintf(tmpl.Description, career.Title),
			Duration:    tmpl.Duration,
		}
		switch tmpl {
		case stepCredential:
			if len(career.Certifications) == 0 {
				continue
			}
			step.Title = fmt.Sprintf(tmpl.Title, career.Certifications[0])
		case stepPrepare:
			if subj := strongSubject(profile, lib); subj != "" {
				step.Description = strings.TrimSuffix(step.Description, ".") +
					", building on your strength in " + subjectLabel(subj) + "."
			}
		}
		step.Order = len(out) + 1
		out = append(out, step)
	}
	return out
}

// timelineFor renders months of post-secondary preparation.
func timelineFor(months int) string {
	switch {
	case months <= 0:
		return "Ready to start right after high school"
	case months < 12:
		return fmt.Sprintf("About %d months of training after high school", months)
	case months < 18:
		return "About 1 year after high school"
	default:
		return fmt.Sprintf("About %d years after high school", (months+6)/12)
	}
}

// fallbackSkillGaps lists sector skills the student does not already claim.
// When too few remain, skills the student has are kept as lower-priority
// practice items so the list never drops below the minimum.
func fallbackSkillGaps(profile types.StudentProfile, lib sectorLibrary) []types.SkillGap {
	var gaps, covered []types.SkillGap
	for _, s := range lib.Skills {
		gap := types.SkillGap{Skill: s.Skill, Importance: s.Importance, Acquisition: s.Acquisition}
		if coveredBy(profile, s.Covers) {
			covered = append(covered, gap)
			continue
		}
		gaps = append(gaps, gap)
	}
	for len(gaps) < minSkillGaps && len(covered) > 0 {
		gap := covered[0]
		gap.Importance = types.ImportanceHelpful
		gap.Acquisition = "Keep practicing, you already list this as a strength"
		gaps = append(gaps, gap)
		covered = covered[1:]
	}
	if len(gaps) > maxSkillGaps {
		gaps = gaps[:maxSkillGaps]
	}
	return gaps
}

func coveredBy(profile types.StudentProfile, skills []string) bool {
	for _, s := range skills {
		if profile.HasSkill(s) {
			return true
		}
	}
	return false
}

func fallbackActions(profile types.StudentProfile, grade string, career types.Career, lib sectorLibrary) []types.ActionItem {
	var entries []actionEntry

	if subj := weakSubject(profile, lib); subj != "" {
		entries = append(entries, actionEntry{
			types.PriorityHigh, whenNow, types.CategoryAcademic,
			"Get extra help in " + subjectLabel(subj) + " through tutoring or teacher office hours",
		})
	}
	entries = append(entries, lib.Actions[:2]...)
	if len(career.Certifications) > 0 {
		entries = append(entries, actionEntry{
			types.PriorityMedium, whenPostHigh, types.CategoryCertification,
			"Look up the requirements for the " + career.Certifications[0] + " credential",
		})
	}
	if profile.HasConstraint("earn_within_one_year") {
		entries = append(entries, actionEntry{
			types.PriorityHigh, whenPostHigh, types.CategoryExperience,
			"Look for paid training or earn-while-you-learn programs for " + career.Title + "s",
		})
	}
	if rank, ok := types.EducationRank(career.RequiredEducation); ok && rank >= 2 && profile.HasConstraint("minimize_debt") {
		entries = append(entries, actionEntry{
			types.PriorityMedium, whenSchool, types.CategoryExploration,
			"Compare community college, scholarship, and employer-paid options to limit debt",
		})
	}
	entries = append(entries, lib.Actions[2:]...)

	if len(entries) > maxActionItems {
		entries = entries[:maxActionItems]
	}
	out := make([]types.ActionItem, len(entries))
	for i, e := range entries {
		out[i] = types.ActionItem{
			Priority:    e.Priority,
			Timeline:    timelineText(e.When, grade),
			Category:    e.Category,
			Description: e.Description,
		}
	}
	return out
}

func timelineText(when, grade string) string {
	graduated := grade == "graduated"
	switch when {
	case whenNow:
		return "This semester"
	case whenSummer:
		return "This summer"
	case whenSchool:
		if graduated {
			return "In the next six months"
		}
		return "Before graduation"
	default:
		if graduated {
			return "Within the next year"
		}
		return "After high school"
	}
}

func fallbackCourses(profile types.StudentProfile, career types.Career, lib sectorLibrary) []types.CourseSuggestion {
	reason := courseReason(career.Title)
	out := make([]types.CourseSuggestion, len(lib.Courses))
	for i, c := range lib.Courses {
		relevance := types.RelevanceMedium
		if i < 2 {
			relevance = types.RelevanceHigh
		}
		r := reason
		if c.Subject != "" && profile.AcademicPerformance[c.Subject] == levelStrong {
			r = reason + ", building on your strength in " + subjectLabel(c.Subject)
		}
		out[i] = types.CourseSuggestion{
			Course:    c.Course,
			Subject:   c.Subject,
			Relevance: relevance,
			CareerIDs: []string{career.ID},
			Reason:    r,
		}
	}
	return out
}

func courseReason(title string) string {
	reason, err := prompts.Render(prompts.CoursePlanReason, map[string]string{"CareerTitle": title})
	if err != nil {
		return "Builds toward " + title
	}
	return reason
}

// strongSubject returns the first subject taught by the sector's courses in
// which the student reports strong performance.
func strongSubject(profile types.StudentProfile, lib sectorLibrary) string {
	return subjectAt(profile, lib, levelStrong)
}

func weakSubject(profile types.StudentProfile, lib sectorLibrary) string {
	return subjectAt(profile, lib, levelDeveloping)
}

func subjectAt(profile types.StudentProfile, lib sectorLibrary, level string) string {
	for _, c := range lib.Courses {
		if c.Subject != "" && profile.AcademicPerformance[c.Subject] == level {
			return c.Subject
		}
	}
	return ""
}

func subjectLabel(subject string) string {
	return strings.ReplaceAll(subject, "_", " ")
}
