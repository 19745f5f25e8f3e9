package recommend

import "github.com/jonathan/career-compass/internal/types"

var relevanceRank = map[string]int{
	types.RelevanceHigh:   3,
	types.RelevanceMedium: 2,
	types.RelevanceLow:    1,
}

// capRelevance lowers relevance to the ceiling allowed for a career at rank.
// Only the top career contributes high-relevance courses.
func capRelevance(relevance string, rank int) string {
	ceiling := types.RelevanceHigh
	switch {
	case rank == 1:
		ceiling = types.RelevanceMedium
	case rank >= 2:
		ceiling = types.RelevanceLow
	}
	if relevanceRank[relevance] == 0 || relevanceRank[relevance] > relevanceRank[ceiling] {
		return ceiling
	}
	return relevance
}

// coursePlan merges course suggestions across ranked recommendations.
// Courses are keyed by name; a course keeps its highest relevance and
// collects every career it serves. Order is first appearance.
func coursePlan(recs []types.Recommendation) []types.CourseSuggestion {
	plan := []types.CourseSuggestion{}
	index := make(map[string]int)

	for rank, rec := range recs {
		for _, c := range rec.Courses {
			relevance := capRelevance(c.Relevance, rank)
			i, seen := index[c.Course]
			if !seen {
				index[c.Course] = len(plan)
				plan = append(plan, types.CourseSuggestion{
					Course:    c.Course,
					Subject:   c.Subject,
					Relevance: relevance,
					CareerIDs: []string{rec.CareerID},
					Reason:    c.Reason,
				})
				continue
			}
			if relevanceRank[relevance] > relevanceRank[plan[i].Relevance] {
				plan[i].Relevance = relevance
			}
			if !contains(plan[i].CareerIDs, rec.CareerID) {
				plan[i].CareerIDs = append(plan[i].CareerIDs, rec.CareerID)
			}
		}
	}
	return plan
}

func contains(list []string, v string) bool {
	for _, have := range list {
		if have == v {
			return true
		}
	}
	return false
}
