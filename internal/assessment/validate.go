package assessment

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-compass/internal/types"
)

// ValidationResult is the outcome of validating a response set.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// HasBlocking reports whether any blocking error was found.
func (r *ValidationResult) HasBlocking() bool {
	return len(r.Errors) > 0
}

// Validate checks responses against the questions of path. When path is
// empty the branching answer in responses decides it. Issues are reported
// in question order, then unknown IDs in lexical order.
func Validate(responses types.Responses, path types.PathID) ValidationResult {
	result := ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
	add := func(e ValidationError) {
		if e.Blocking {
			result.Errors = append(result.Errors, e)
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}

	active := effectivePath(responses, path)
	if path != types.PathUndetermined && !path.Valid() {
		add(outOfRange(QCareerDirection, "unknown path %q", path))
		active = types.PathUndetermined
	}

	seen := make(map[string]bool, len(responses))
	for _, q := range QuestionsForPath(active) {
		seen[q.ID] = true
		a, answered := responses[q.ID]
		if answered && a.IsEmpty() {
			answered = false
		}

		if !triggered(q, responses) {
			if answered {
				add(invalidConditional(q.ID, "answer supplied but its trigger condition was not met; it is ignored"))
			}
			continue
		}
		if !answered {
			if q.Required {
				add(missingRequired(q.ID))
			}
			continue
		}
		if e := CheckAnswer(q, a); e != nil {
			add(*e)
			continue
		}
		if q.ID == QCareerDirection && path.Valid() {
			if chosen := DeterminePath(a.First()); chosen != path {
				add(outOfRange(q.ID, "branching answer selects %s but %s was requested", chosen, path))
			}
		}
	}

	for _, id := range responses.SortedKeys() {
		if seen[id] {
			continue
		}
		if _, known := LookupQuestion(id); known {
			add(invalidConditional(id, "question does not belong to the active path; it is ignored"))
			continue
		}
		add(unknownQuestion(id))
	}

	result.IsValid = !result.HasBlocking()
	return result
}

// Relevant returns only the answers that count for path: answers to
// triggered questions visible on that path. Warning-level answers are
// dropped.
func Relevant(responses types.Responses, path types.PathID) types.Responses {
	active := effectivePath(responses, path)
	out := make(types.Responses)
	for _, q := range QuestionsForPath(active) {
		a, ok := responses[q.ID]
		if !ok || a.IsEmpty() || !triggered(q, responses) {
			continue
		}
		out[q.ID] = a
	}
	return out.Clone()
}

// CheckAnswer validates one non-empty answer against its question and
// returns a blocking error when the value is out of range.
func CheckAnswer(q types.Question, a types.Answer) *ValidationError {
	var issue *ValidationError
	fail := func(format string, args ...any) {
		e := outOfRange(q.ID, format, args...)
		issue = &e
	}

	switch q.Type {
	case types.QuestionSingleChoice:
		values := a.List()
		if len(values) != 1 {
			fail("expected exactly one choice, got %d", len(values))
			break
		}
		if _, ok := CanonicalOption(q, values[0]); !ok {
			fail("%q is not one of the allowed choices", values[0])
		}
	case types.QuestionMultiChoice:
		for _, v := range a.List() {
			if _, ok := CanonicalOption(q, v); !ok {
				fail("%q is not one of the allowed choices", v)
				break
			}
		}
	case types.QuestionRating:
		n, ok := RatingValue(a)
		if !ok {
			fail("expected a whole-number rating")
			break
		}
		if n < q.Min || n > q.Max {
			fail("rating %d is outside %d-%d", n, q.Min, q.Max)
		}
	case types.QuestionFreeText:
		text := strings.TrimSpace(a.First())
		if q.MaxLength > 0 && utf8.RuneCountInString(text) > q.MaxLength {
			fail("answer exceeds %d characters", q.MaxLength)
			break
		}
		if re, ok := patterns[q.ID]; ok && !re.MatchString(text) {
			fail("%q is not in the expected format", text)
		}
	case types.QuestionMatrix:
		if len(a.Matrix) == 0 {
			fail("expected a subject to rating map")
			break
		}
		rows := make([]string, 0, len(a.Matrix))
		for row := range a.Matrix {
			rows = append(rows, row)
		}
		sort.Strings(rows)
		for _, row := range rows {
			if !q.HasRow(row) {
				fail("%q is not a recognized row", row)
				break
			}
			if _, ok := CanonicalOption(q, a.Matrix[row]); !ok {
				fail("%q is not an allowed value for %s", a.Matrix[row], row)
				break
			}
		}
	}
	return issue
}

// CanonicalOption returns the option value matching v, comparing case- and
// separator-insensitively.
func CanonicalOption(q types.Question, v string) (string, bool) {
	n := normalizeAnswer(v)
	for _, opt := range q.Options {
		if normalizeAnswer(opt.Value) == n {
			return opt.Value, true
		}
	}
	return "", false
}

// RatingValue extracts a rating from a numeric or digit-text answer.
func RatingValue(a types.Answer) (int, bool) {
	if a.Rating != nil {
		return *a.Rating, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(a.First()))
	if err != nil {
		return 0, false
	}
	return n, true
}
