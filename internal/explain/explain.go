// Package explain renders match reasoning as short human-readable sentences.
package explain

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// Summary pairs a match with its rendered sentence.
type Summary struct {
	CareerID string `json:"career_id"`
	Title    string `json:"title"`
	Sentence string `json:"sentence"`
}

// Sentence renders "{score}% match because {factors}." using only the
// factors already on the match. Factors are lowercased and comma-joined;
// blank factors are skipped.
func Sentence(m types.CareerMatch) string {
	factors := make([]string, 0, len(m.ReasoningFactors))
	for _, f := range m.ReasoningFactors {
		f = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(f), "."))
		if f == "" {
			continue
		}
		factors = append(factors, strings.ToLower(f))
	}
	if len(factors) == 0 {
		return fmt.Sprintf("%d%% match based on your overall profile.", m.MatchScore)
	}
	return fmt.Sprintf("%d%% match because %s.", m.MatchScore, strings.Join(factors, ", "))
}

// Summaries renders every match, preserving order.
func Summaries(matches []types.CareerMatch) []Summary {
	out := make([]Summary, len(matches))
	for i, m := range matches {
		out[i] = Summary{CareerID: m.CareerID, Title: m.Title, Sentence: Sentence(m)}
	}
	return out
}
