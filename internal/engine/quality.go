package engine

import "pathfinder/internal/model"

// Quality reason codes. Each appears at most once per assessment.
const (
	ReasonSpeeding       = "speeding"
	ReasonAttentionCheck = "attention_check_failed"
	ReasonContradictions = "contradictions"
	ReasonStraightLining = "straight_lining"
	ReasonPerfectProfile = "perfect_profile"
)

// Contradiction codes for the cross-question consistency rules.
const (
	ContradictionAttendance  = "attendance_mismatch"
	ContradictionPerformance = "performance_mismatch"
	ContradictionFinancial   = "financial_mismatch"
)

// speedingSecondsPerQuestion is the minimum plausible reading/response
// time per item.
const speedingSecondsPerQuestion = 3

// straightLiningMinSample is the minimum number of tallied single-choice
// answers before the straight-lining check applies at all.
const straightLiningMinSample = 5

// AssessDataQuality runs the independent quality checks over one answer
// snapshot and folds them into a single risk classification. Risk is a
// monotone max across checks: a check may raise it, never lower it.
func AssessDataQuality(answers model.AnswerMap, questionnaire *model.Questionnaire, cfg *model.ScoringConfig, metadata model.SubmissionMetadata) model.QualityAssessment {
	contradictions := checkContradictions(answers)
	straightLining := checkStraightLining(answers, questionnaire)
	speeding := checkSpeeding(metadata.CompletionDurationSeconds, questionnaire.TotalQuestions)
	attention := checkAttention(answers, questionnaire)
	perfect := checkPerfectProfile(answers, questionnaire, cfg)

	assessment := model.QualityAssessment{
		Risk:    model.RiskLow,
		Reasons: []string{},
		Metrics: model.QualityMetrics{
			CompletionSeconds:  metadata.CompletionDurationSeconds,
			AttentionPassed:    attention,
			ContradictionCount: len(contradictions),
			StraightlineScore:  straightLining.score,
		},
	}

	bump := func(level model.RiskLevel, reason string) {
		assessment.Risk = assessment.Risk.Escalate(level)
		for _, existing := range assessment.Reasons {
			if existing == reason {
				return
			}
		}
		assessment.Reasons = append(assessment.Reasons, reason)
	}

	if speeding {
		bump(model.RiskHigh, ReasonSpeeding)
	}
	if attention != nil && !*attention {
		bump(model.RiskHigh, ReasonAttentionCheck)
	}
	if len(contradictions) > 0 {
		level := model.RiskMedium
		if len(contradictions) >= 2 {
			level = model.RiskHigh
		}
		bump(level, ReasonContradictions)
	}
	if straightLining.suspicious {
		level := model.RiskMedium
		if speeding {
			level = model.RiskHigh
		}
		bump(level, ReasonStraightLining)
	}
	if perfect {
		bump(model.RiskMedium, ReasonPerfectProfile)
	}

	return assessment
}

// Contradictions returns the matched cross-question consistency rule
// codes. Exported for reporting; the assessment only needs the count.
func Contradictions(answers model.AnswerMap) []string {
	return checkContradictions(answers)
}

func checkContradictions(answers model.AnswerMap) []string {
	var found []string

	// Claims to always attend while flagging attendance as a blocker.
	if answers.String("attendance") == "always" && answers.Contains("schoolBlockers", "attendance") {
		found = append(found, ContradictionAttendance)
	}

	// Claims high marks while flagging comprehension as a blocker.
	if answers.String("marksRange") == "above70" && answers.Contains("schoolBlockers", "understanding") {
		found = append(found, ContradictionPerformance)
	}

	// Claims adequate finances while flagging lack of resources.
	if answers.String("financialSituation") == "okay" && answers.Contains("schoolBlockers", "noResources") {
		found = append(found, ContradictionFinancial)
	}

	return found
}

type straightLineResult struct {
	suspicious bool
	score      int
	dominant   int
}

func checkStraightLining(answers model.AnswerMap, questionnaire *model.Questionnaire) straightLineResult {
	var positionCounts [5]int
	tallied := 0

	questionnaire.EachQuestion(func(_ *model.Section, question *model.Question) {
		if question.Type != model.QuestionTypeSingle || question.IsAttentionCheck() {
			return
		}
		if !answers.IsSet(question.ID) {
			return
		}
		index := question.OptionIndex(answers.String(question.ID))
		if index >= 0 && index < len(positionCounts) {
			positionCounts[index]++
			tallied++
		}
	})

	if tallied < straightLiningMinSample {
		return straightLineResult{}
	}

	maxFreq, dominant := 0, 0
	for pos, freq := range positionCounts {
		if freq > maxFreq {
			maxFreq = freq
			dominant = pos
		}
	}

	ratio := float64(maxFreq) / float64(tallied)
	return straightLineResult{
		suspicious: ratio > 0.8,
		score:      int(ratio*100 + 0.5),
		dominant:   dominant,
	}
}

// checkAttention returns nil when no attention check was answered
// (unknown, not penalized), false when a required check is unanswered or
// any answered check mismatches its expected value, true otherwise.
func checkAttention(answers model.AnswerMap, questionnaire *model.Questionnaire) *bool {
	answered := 0
	failed := 0
	requiredMissing := false
	total := 0

	questionnaire.EachQuestion(func(_ *model.Section, question *model.Question) {
		if !question.IsAttentionCheck() {
			return
		}
		total++

		if !answers.IsSet(question.ID) {
			if question.Required {
				requiredMissing = true
			}
			return
		}

		answered++
		if answers.String(question.ID) != question.AttentionCheck.Expected {
			failed++
		}
	})

	if total == 0 {
		return nil
	}
	if requiredMissing {
		return boolPtr(false)
	}
	if answered == 0 {
		return nil
	}
	return boolPtr(failed == 0)
}

// checkPerfectProfile flags the implausible combination of maximal
// academic readiness with zero support need.
func checkPerfectProfile(answers model.AnswerMap, questionnaire *model.Questionnaire, cfg *model.ScoringConfig) bool {
	scores := CalculateScores(answers, questionnaire, cfg)
	return scores[model.DimAcademicReadiness] == 100 && scores[model.DimSupportNeed] == 0
}

func checkSpeeding(durationSeconds *int, totalQuestions int) bool {
	if durationSeconds == nil || *durationSeconds <= 0 {
		return false
	}
	return *durationSeconds < totalQuestions*speedingSecondsPerQuestion
}

func boolPtr(b bool) *bool { return &b }
