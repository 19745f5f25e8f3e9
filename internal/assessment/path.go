package assessment

import (
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// branchingTable maps normalized branching answers to paths.
var branchingTable = map[string]types.PathID{
	DirectionHandsOn: types.PathHandsOn,
	"hands_on_work":  types.PathHandsOn,
	"trades":         types.PathHandsOn,
	"path_a":         types.PathHandsOn,

	DirectionFocused: types.PathCareerFocus,
	"other_work":     types.PathCareerFocus,
	"professional":   types.PathCareerFocus,
	"path_b":         types.PathCareerFocus,

	DirectionUndecided: types.PathExploring,
	"exploring":        types.PathExploring,
	"not_sure":         types.PathExploring,
	"path_c":           types.PathExploring,
}

// normalizeAnswer lowercases s and folds spaces and hyphens into underscores.
func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// DeterminePath maps a branching answer to a path. It is total: answers
// outside the table select the exploring path.
func DeterminePath(answer string) types.PathID {
	if p, ok := branchingTable[normalizeAnswer(answer)]; ok {
		return p
	}
	return types.PathExploring
}

// knownBranchingAnswer reports whether answer is in the branching table.
func knownBranchingAnswer(answer string) bool {
	_, ok := branchingTable[normalizeAnswer(answer)]
	return ok
}

// effectivePath returns path when set, otherwise the path selected by the
// branching answer in responses, otherwise PathUndetermined.
func effectivePath(responses types.Responses, path types.PathID) types.PathID {
	if path != types.PathUndetermined {
		return path
	}
	if a, ok := responses[QCareerDirection]; ok && !a.IsEmpty() {
		return DeterminePath(a.First())
	}
	return types.PathUndetermined
}

// State is the tagged state machine position: a phase plus, once the
// branching question is answered, the active path.
type State struct {
	Phase types.Phase
	Path  types.PathID
}

// StateOf returns the state carried by a session.
func StateOf(s *types.Session) State {
	return State{Phase: s.Phase, Path: s.Path}
}

// Questions returns the questions visible in this state.
func (st State) Questions() []types.Question {
	return QuestionsForPath(st.Path)
}

// Active reports whether a path has been chosen and the session is still open.
func (st State) Active() bool {
	return st.Phase == types.PhasePathActive && st.Path.Valid()
}

// triggered reports whether q's trigger condition holds in responses.
func triggered(q types.Question, responses types.Responses) bool {
	if q.Trigger == nil {
		return true
	}
	parent, ok := responses[q.Trigger.ParentID]
	if !ok {
		return false
	}
	for _, v := range parent.List() {
		if normalizeAnswer(v) == normalizeAnswer(q.Trigger.Value) {
			return true
		}
	}
	return false
}
