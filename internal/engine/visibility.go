package engine

import (
	"math"
	"strings"

	"pathfinder/internal/model"
)

// IsVisible reports whether a question should currently be shown. A
// question with no showIf is always visible; otherwise every condition
// must pass against the current answers.
func IsVisible(question *model.Question, answers model.AnswerMap) bool {
	if question.ShowIf == nil {
		return true
	}
	return MatchesAnswers(question.ShowIf, answers)
}

// VisibleQuestions filters a section's questions by visibility, preserving
// declared order.
func VisibleQuestions(section *model.Section, answers model.AnswerMap) []*model.Question {
	var visible []*model.Question
	for i := range section.Questions {
		if IsVisible(&section.Questions[i], answers) {
			visible = append(visible, &section.Questions[i])
		}
	}
	return visible
}

// FlatQuestion pairs a visible question with its section.
type FlatQuestion struct {
	Section  *model.Section
	Question *model.Question
}

// Flatten concatenates visible questions across all sections in declared
// order. This sequence is the single source of truth for step numbering
// and progress.
func Flatten(sections []model.Section, answers model.AnswerMap) []FlatQuestion {
	var flat []FlatQuestion
	for s := range sections {
		section := &sections[s]
		for _, q := range VisibleQuestions(section, answers) {
			flat = append(flat, FlatQuestion{Section: section, Question: q})
		}
	}
	return flat
}

// Progress converts a zero-based question index into a 0-100 percentage.
func Progress(currentIndex, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(currentIndex) / float64(totalQuestions) * 100))
}

// IsAnswered reports whether a question blocks forward navigation.
// Non-required questions always pass. Required multi-choice needs a
// non-empty selection, free text a non-whitespace value, consent the
// literal true.
func IsAnswered(question *model.Question, answers model.AnswerMap) bool {
	if !question.Required {
		return true
	}

	value, ok := answers[question.ID]
	if !ok || value == nil {
		return false
	}

	switch question.Type {
	case model.QuestionTypeMulti:
		return len(answers.List(question.ID)) > 0
	case model.QuestionTypeText, model.QuestionTypeTextArea:
		return strings.TrimSpace(answers.String(question.ID)) != ""
	case model.QuestionTypeConsent:
		return answers.Bool(question.ID)
	}
	return true
}
