package engine

import (
	"math"
	"time"

	"pathfinder/internal/model"
)

// NeutralScore is the finalized value for a dimension no answer
// contributed to. An unscored dimension means "unknown", not "worst".
const NeutralScore = 50

type runningScore struct {
	total float64
	count int
}

// CalculateScores walks every question in declared order and accumulates
// the score maps of the selected options, then finalizes each dimension as
// the rounded average clamped to 0-100. Single-choice contributes the
// matched option once; multi-choice contributes each selected option once,
// so permuting a selection never changes the result.
func CalculateScores(answers model.AnswerMap, questionnaire *model.Questionnaire, cfg *model.ScoringConfig) map[string]int {
	running := make(map[string]*runningScore, len(cfg.Dimensions))
	for _, dim := range cfg.Dimensions {
		running[dim] = &runningScore{}
	}

	questionnaire.EachQuestion(func(_ *model.Section, question *model.Question) {
		if !answers.IsSet(question.ID) {
			return
		}

		switch question.Type {
		case model.QuestionTypeSingle:
			if opt := question.FindOption(answers.String(question.ID)); opt != nil {
				addScores(running, opt.Score)
			}
		case model.QuestionTypeMulti:
			for _, value := range answers.List(question.ID) {
				if opt := question.FindOption(value); opt != nil {
					addScores(running, opt.Score)
				}
			}
		}
	})

	final := make(map[string]int, len(running))
	for dim, acc := range running {
		if acc.count == 0 {
			final[dim] = NeutralScore
			continue
		}
		avg := int(math.Round(acc.total / float64(acc.count)))
		final[dim] = clamp(avg, 0, 100)
	}
	return final
}

func addScores(running map[string]*runningScore, score map[string]int) {
	for dim, weight := range score {
		acc, ok := running[dim]
		if !ok {
			// Undeclared dimension in an option: ignored, not an error.
			continue
		}
		acc.total += float64(weight)
		acc.count++
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DetermineRecommendation evaluates path thresholds in fixed priority
// order: A, then B, then the fallback C. First match wins.
func DetermineRecommendation(scores map[string]int, cfg *model.ScoringConfig) string {
	thresholds := cfg.Recommendations.Thresholds

	if thresholds.A.Conditions != nil && MatchesScores(thresholds.A.Conditions, scores) {
		return model.PathA
	}
	if thresholds.B.Conditions != nil && MatchesScores(thresholds.B.Conditions, scores) {
		return model.PathB
	}
	return model.PathC
}

// GetModifiers returns every modifier whose condition matches, in declared
// order. Modifiers are not exclusive; zero or many may apply.
func GetModifiers(scores map[string]int, cfg *model.ScoringConfig) []model.Modifier {
	var applicable []model.Modifier
	for _, mod := range cfg.Recommendations.Modifiers {
		if MatchesScores(&mod.Condition, scores) {
			applicable = append(applicable, mod)
		}
	}
	return applicable
}

// GetDrivers returns matching driver keys in declared order, truncated to
// the configured maximum. The cap avoids information overload; drivers are
// not ranked by score magnitude.
func GetDrivers(scores map[string]int, cfg *model.ScoringConfig) []string {
	var keys []string
	for _, tpl := range cfg.Drivers.Templates {
		if MatchesScores(&tpl.Condition, scores) {
			keys = append(keys, tpl.Key)
		}
	}
	if max := cfg.Drivers.MaxDrivers; max > 0 && len(keys) > max {
		keys = keys[:max]
	}
	return keys
}

// GenerateScoringResult composes scores, recommendation, modifiers and
// drivers into one immutable snapshot with a generation timestamp.
func GenerateScoringResult(answers model.AnswerMap, questionnaire *model.Questionnaire, cfg *model.ScoringConfig) *model.ScoringResult {
	scores := CalculateScores(answers, questionnaire, cfg)

	return &model.ScoringResult{
		Scores:         scores,
		Recommendation: DetermineRecommendation(scores, cfg),
		Modifiers:      GetModifiers(scores, cfg),
		Drivers:        GetDrivers(scores, cfg),
		GeneratedAt:    time.Now().UTC(),
	}
}
