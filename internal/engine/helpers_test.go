package engine

import "pathfinder/internal/model"

func intPtr(v int) *int { return &v }

func equals(v string) model.Term {
	return model.Term{Kind: model.TermEquals, Equals: v}
}

func oneOf(values ...string) model.Term {
	return model.Term{Kind: model.TermIn, In: values}
}

func atLeast(v int) model.Term {
	return model.Term{Kind: model.TermRange, Min: intPtr(v)}
}

func atMost(v int) model.Term {
	return model.Term{Kind: model.TermRange, Max: intPtr(v)}
}

func between(lo, hi int) model.Term {
	return model.Term{Kind: model.TermRange, Min: intPtr(lo), Max: intPtr(hi)}
}

func scoredOption(value string, score map[string]int) model.Option {
	return model.Option{Value: value, Label: value, Score: score}
}

// testQuestionnaire builds a compact document covering every branching and
// scoring shape the engine handles.
func testQuestionnaire() *model.Questionnaire {
	q := &model.Questionnaire{
		Version:        "test",
		TotalQuestions: 10,
		Sections: []model.Section{
			{
				ID: "school",
				Questions: []model.Question{
					{
						ID:       "attendance",
						Type:     model.QuestionTypeSingle,
						Required: true,
						Options: []model.Option{
							scoredOption("always", map[string]int{"academicReadiness": 80, "supportNeed": 20}),
							scoredOption("often", map[string]int{"academicReadiness": 65, "supportNeed": 35}),
							scoredOption("sometimes", map[string]int{"academicReadiness": 45, "supportNeed": 55}),
							scoredOption("rarely", map[string]int{"academicReadiness": 25, "supportNeed": 75}),
							scoredOption("notInSchool", map[string]int{"academicReadiness": 10, "supportNeed": 85}),
						},
					},
					{
						ID:       "marksRange",
						Type:     model.QuestionTypeSingle,
						Required: true,
						ShowIf: &model.ConditionSet{Terms: map[string]model.Term{
							"attendance": oneOf("always", "often", "sometimes"),
						}},
						Options: []model.Option{
							scoredOption("above70", map[string]int{"academicReadiness": 100, "supportNeed": 0}),
							scoredOption("between50and70", map[string]int{"academicReadiness": 60, "supportNeed": 40}),
							scoredOption("below50", map[string]int{"academicReadiness": 30, "supportNeed": 70}),
							scoredOption("notSure", map[string]int{"academicReadiness": 45, "supportNeed": 50}),
						},
					},
					{
						ID:   "schoolBlockers",
						Type: model.QuestionTypeMulti,
						ShowIf: &model.ConditionSet{AnyOf: []model.ConditionSet{
							{Terms: map[string]model.Term{"attendance": oneOf("sometimes", "rarely", "notInSchool")}},
							{Terms: map[string]model.Term{"marksRange": oneOf("below50", "notSure")}},
						}},
						MaxSelections: 3,
						Options: []model.Option{
							scoredOption("transport", map[string]int{"constraintLoad": 80}),
							scoredOption("understanding", map[string]int{"supportNeed": 75}),
							scoredOption("noResources", map[string]int{"constraintLoad": 75}),
							scoredOption("attendance", map[string]int{"constraintLoad": 70}),
						},
					},
				},
			},
			{
				ID: "circumstances",
				Questions: []model.Question{
					{
						ID:       "financialSituation",
						Type:     model.QuestionTypeSingle,
						Required: true,
						Options: []model.Option{
							scoredOption("okay", map[string]int{"constraintLoad": 20}),
							scoredOption("tight", map[string]int{"constraintLoad": 55}),
							scoredOption("difficult", map[string]int{"constraintLoad": 85}),
						},
					},
					{
						ID:       "transportAccess",
						Type:     model.QuestionTypeSingle,
						Required: true,
						Options: []model.Option{
							scoredOption("easy", map[string]int{"constraintLoad": 15}),
							scoredOption("manageable", map[string]int{"constraintLoad": 40}),
							scoredOption("difficult", map[string]int{"constraintLoad": 70}),
							scoredOption("veryDifficult", map[string]int{"constraintLoad": 90}),
						},
					},
					{
						ID:       "safety",
						Type:     model.QuestionTypeSingle,
						Required: true,
						Options: []model.Option{
							scoredOption("yes", map[string]int{"wellbeingFlag": 15}),
							scoredOption("mostly", map[string]int{"wellbeingFlag": 45}),
							scoredOption("no", map[string]int{"wellbeingFlag": 90}),
						},
					},
				},
			},
			{
				ID: "preferences",
				Questions: []model.Question{
					{
						ID:       "learningStyle",
						Type:     model.QuestionTypeSingle,
						Required: true,
						Options: []model.Option{
							scoredOption("doing", map[string]int{"practicalPreference": 90}),
							scoredOption("watching", map[string]int{"practicalPreference": 65}),
							scoredOption("listening", map[string]int{"practicalPreference": 40}),
							scoredOption("reading", map[string]int{"practicalPreference": 15}),
							scoredOption("mixed", map[string]int{"practicalPreference": 50}),
						},
					},
					{
						ID:             "attentionCheck1",
						Type:           model.QuestionTypeSingle,
						Required:       true,
						AttentionCheck: &model.AttentionCheck{Expected: "agree"},
						Options: []model.Option{
							{Value: "stronglyAgree", Label: "Strongly agree"},
							{Value: "agree", Label: "Agree"},
							{Value: "neutral", Label: "Neutral"},
							{Value: "disagree", Label: "Disagree"},
							{Value: "stronglyDisagree", Label: "Strongly disagree"},
						},
					},
				},
			},
			{
				ID: "wrapup",
				Questions: []model.Question{
					{ID: "anythingElse", Type: model.QuestionTypeTextArea},
					{ID: "consent_agree", Type: model.QuestionTypeConsent, Required: true},
				},
			},
		},
	}
	return q
}

func testScoring() *model.ScoringConfig {
	cfg := &model.ScoringConfig{
		Dimensions: []string{
			"academicReadiness",
			"practicalPreference",
			"supportNeed",
			"constraintLoad",
			"wellbeingFlag",
		},
	}

	cfg.Recommendations.Thresholds.A = model.PathThreshold{
		Conditions: &model.ConditionSet{Terms: map[string]model.Term{
			"academicReadiness": atLeast(55),
			"constraintLoad":    atMost(50),
		}},
	}
	cfg.Recommendations.Thresholds.B = model.PathThreshold{
		Conditions: &model.ConditionSet{AnyOf: []model.ConditionSet{
			{Terms: map[string]model.Term{"practicalPreference": atLeast(60)}},
			{Terms: map[string]model.Term{
				"academicReadiness":   atMost(40),
				"practicalPreference": atLeast(45),
			}},
		}},
	}
	cfg.Recommendations.Modifiers = []model.Modifier{
		{Key: "structured_support", Condition: model.ConditionSet{Terms: map[string]model.Term{"supportNeed": atLeast(60)}}},
		{Key: "wellbeing_resources", Condition: model.ConditionSet{Terms: map[string]model.Term{"wellbeingFlag": atLeast(55)}}},
		{Key: "flexible_options", Condition: model.ConditionSet{Terms: map[string]model.Term{"constraintLoad": atLeast(60)}}},
	}
	cfg.Drivers.MaxDrivers = 3
	cfg.Drivers.Templates = []model.DriverTemplate{
		{Key: "strong_academics", Condition: model.ConditionSet{Terms: map[string]model.Term{"academicReadiness": atLeast(70)}}},
		{Key: "hands_on_learner", Condition: model.ConditionSet{Terms: map[string]model.Term{"practicalPreference": atLeast(65)}}},
		{Key: "needs_support", Condition: model.ConditionSet{Terms: map[string]model.Term{"supportNeed": atLeast(65)}}},
		{Key: "heavy_constraints", Condition: model.ConditionSet{Terms: map[string]model.Term{"constraintLoad": atLeast(65)}}},
		{Key: "wellbeing_priority", Condition: model.ConditionSet{Terms: map[string]model.Term{"wellbeingFlag": atLeast(65)}}},
		{Key: "building_basics", Condition: model.ConditionSet{Terms: map[string]model.Term{"academicReadiness": atMost(40)}}},
	}
	return cfg
}
