package assessment

import "github.com/jonathan/career-compass/internal/types"

// ProgressResult reports how far a response set is through its path.
type ProgressResult struct {
	Percent        int    `json:"percent"`
	NextQuestionID string `json:"next_question_id,omitempty"`
	Answered       int    `json:"answered"`
	Required       int    `json:"required"`
}

// Progress computes answered-required over total-required for the triggered
// questions of path, as a whole percentage rounded down. NextQuestionID is
// the first unanswered required question, else the first unanswered
// optional one, else empty.
func Progress(responses types.Responses, path types.PathID) ProgressResult {
	active := effectivePath(responses, path)
	if !active.Valid() {
		active = types.PathUndetermined
	}

	var res ProgressResult
	var nextOptional string
	for _, q := range QuestionsForPath(active) {
		if !triggered(q, responses) {
			continue
		}
		a, ok := responses[q.ID]
		answered := ok && !a.IsEmpty()
		if q.Required {
			res.Required++
			if answered {
				res.Answered++
			} else if res.NextQuestionID == "" {
				res.NextQuestionID = q.ID
			}
			continue
		}
		if !answered && nextOptional == "" {
			nextOptional = q.ID
		}
	}

	if res.NextQuestionID == "" {
		res.NextQuestionID = nextOptional
	}
	if res.Required == 0 {
		res.Percent = 100
		return res
	}
	res.Percent = res.Answered * 100 / res.Required
	return res
}
