// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/explain"
	"github.com/jonathan/career-compass/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// fit pads or truncates line to exactly width runes.
func fit(line string, width int) string {
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", fit(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// bulletList writes up to limit items and a trailing "... and N more".
func bulletList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintProfile outputs a human-readable summary of the student profile.
func (p *Printer) PrintProfile(profile *types.StudentProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Path:       %s\n", profile.Path)
	if profile.Grade != "" {
		fmt.Fprintf(&sb, "Grade:      %s\n", profile.Grade)
	}
	if profile.EducationGoal != "" {
		fmt.Fprintf(&sb, "Education:  %s\n", profile.EducationGoal)
	}
	if profile.ExplicitCareer != "" {
		fmt.Fprintf(&sb, "Named:      %s\n", profile.ExplicitCareer)
	}
	sb.WriteString("\n")

	if len(profile.Interests) > 0 {
		sb.WriteString("Interests:\n")
		bulletList(&sb, profile.Interests, maxItemsToShow)
	}
	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		bulletList(&sb, profile.Skills, 3)
	}
	if len(profile.AcademicPerformance) > 0 {
		subjects := make([]string, 0, len(profile.AcademicPerformance))
		for subject, level := range profile.AcademicPerformance {
			subjects = append(subjects, subject+": "+level)
		}
		sort.Strings(subjects)
		sb.WriteString("Academics:\n")
		bulletList(&sb, subjects, maxItemsToShow)
	}
	if len(profile.Constraints) > 0 {
		sb.WriteString("Constraints:\n")
		bulletList(&sb, profile.Constraints, 3)
	}

	p.printBox("STUDENT PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked matches with their explanation sentences.
func (p *Printer) PrintMatches(matches []types.CareerMatch) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Careers ranked: %d\n\n", len(matches))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		fmt.Fprintf(&sb, "#%d  %s (%s)\n", i+1, m.Title, m.Sector)
		fmt.Fprintf(&sb, "    Score: %d  Demand: %s", m.MatchScore, m.LocalDemand)
		if m.EstimatedLocalSalary > 0 {
			fmt.Fprintf(&sb, "  Salary: $%d", m.EstimatedLocalSalary)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "    %s\n", explain.Sentence(m))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more careers", len(matches)-maxItemsToShow)
	}

	p.printBox("CAREER MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs one box per recommendation and the merged
// course plan.
func (p *Printer) PrintRecommendations(set *types.RecommendationSet) {
	if set == nil || len(set.Recommendations) == 0 {
		return
	}

	for _, rec := range set.Recommendations {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Source:   %s\n", rec.Source)
		fmt.Fprintf(&sb, "Timeline: %s\n\n", rec.Timeline)

		sb.WriteString("Pathway:\n")
		for _, step := range rec.Pathway {
			fmt.Fprintf(&sb, "  %d. %s\n", step.Order, step.Title)
		}

		sb.WriteString("\nSkill gaps:\n")
		gaps := make([]string, len(rec.SkillGaps))
		for i, g := range rec.SkillGaps {
			gaps[i] = fmt.Sprintf("%s [%s]", g.Skill, g.Importance)
		}
		bulletList(&sb, gaps, maxItemsToShow)

		sb.WriteString("\nNext steps:\n")
		actions := make([]string, len(rec.ActionItems))
		for i, a := range rec.ActionItems {
			actions[i] = fmt.Sprintf("(%s) %s", a.Priority, a.Description)
		}
		bulletList(&sb, actions, 3)

		p.printBox("RECOMMENDATION: "+strings.ToUpper(rec.CareerTitle), strings.TrimSuffix(sb.String(), "\n"))
	}

	if len(set.CoursePlan) > 0 {
		var sb strings.Builder
		courses := make([]string, len(set.CoursePlan))
		for i, c := range set.CoursePlan {
			courses[i] = fmt.Sprintf("%s [%s]", c.Course, c.Relevance)
		}
		bulletList(&sb, courses, 8)
		p.printBox("COURSE PLAN", strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintValidation outputs blocking errors and warnings.
func (p *Printer) PrintValidation(result *assessment.ValidationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.IsValid {
		sb.WriteString("✓ Responses are valid\n")
	} else {
		fmt.Fprintf(&sb, "✗ %d blocking error(s)\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "  • %s: %s\n", e.QuestionID, e.Message)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(&sb, "\n%d warning(s):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(&sb, "  • %s: %s\n", w.QuestionID, w.Message)
		}
	}

	p.printBox("VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProgress outputs a progress bar and the next question.
func (p *Printer) PrintProgress(progress *assessment.ProgressResult) {
	if progress == nil {
		return
	}

	const barWidth = 40
	filled := progress.Percent * barWidth / 100
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s%s] %d%%\n", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), progress.Percent)
	fmt.Fprintf(&sb, "Required answered: %d of %d\n", progress.Answered, progress.Required)
	if progress.NextQuestionID != "" {
		fmt.Fprintf(&sb, "Next question:     %s", progress.NextQuestionID)
	}

	p.printBox("PROGRESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStep outputs a one-line pipeline progress message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "[VERBOSE] %-10s %s\n", step, message)
}
