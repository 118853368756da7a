// Package engine holds the pure questionnaire pipeline: visibility
// filtering, dimension scoring and response-quality assessment. Everything
// here is deterministic over immutable inputs and safe for concurrent use.
package engine

import "pathfinder/internal/model"

// MatchesAnswers evaluates a condition set against the current answers.
// Used for showIf gating: a term whose question has no answer yet fails
// closed, so gated questions never show before their gate is answered.
func MatchesAnswers(set *model.ConditionSet, answers model.AnswerMap) bool {
	if set == nil || set.IsEmpty() || set.Always {
		return true
	}

	if len(set.AnyOf) > 0 {
		for i := range set.AnyOf {
			if MatchesAnswers(&set.AnyOf[i], answers) {
				return true
			}
		}
		return false
	}

	for id, term := range set.Terms {
		if !answers.IsSet(id) {
			return false
		}
		current := answers.String(id)
		switch term.Kind {
		case model.TermEquals:
			if current != term.Equals {
				return false
			}
		case model.TermIn:
			if !contains(term.In, current) {
				return false
			}
		default:
			// Bounds terms have no meaning against answers.
			return false
		}
	}
	return true
}

// MatchesScores evaluates a condition set against finalized dimension
// scores. A term naming an unset dimension is skipped rather than failed,
// per the silent-defaults policy.
func MatchesScores(set *model.ConditionSet, scores map[string]int) bool {
	if set == nil || set.IsEmpty() || set.Always {
		return true
	}

	if len(set.AnyOf) > 0 {
		for i := range set.AnyOf {
			if MatchesScores(&set.AnyOf[i], scores) {
				return true
			}
		}
		return false
	}

	for dim, term := range set.Terms {
		score, ok := scores[dim]
		if !ok {
			continue
		}
		if term.Kind != model.TermRange {
			continue
		}
		if term.Min != nil && score < *term.Min {
			return false
		}
		if term.Max != nil && score > *term.Max {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
