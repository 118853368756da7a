package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// QuestionType defines how a question is answered and validated.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"   // one option
	QuestionTypeMulti    QuestionType = "multi"    // zero or more options
	QuestionTypeText     QuestionType = "text"     // short free text
	QuestionTypeTextArea QuestionType = "textarea" // long free text
	QuestionTypeConsent  QuestionType = "consent"  // must be agreed to proceed
)

// IsChoice reports whether the type carries an option list.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingle || t == QuestionTypeMulti
}

// IsFreeText reports whether answers are free-form text. Free-text answers
// are stripped from the main answer map at submission time.
func (t QuestionType) IsFreeText() bool {
	return t == QuestionTypeText || t == QuestionTypeTextArea
}

// Option is one selectable choice. Score maps dimension names to the
// weight this choice contributes when selected. LabelHoliday is the label
// variant shown outside school terms; presentation picks between the two.
type Option struct {
	Value        string         `yaml:"value" json:"value"`
	Label        string         `yaml:"label" json:"label"`
	LabelHoliday string         `yaml:"labelHoliday,omitempty" json:"labelHoliday,omitempty"`
	Score        map[string]int `yaml:"score,omitempty" json:"score,omitempty"`
}

// AttentionCheck marks a question as an attention trap with a known
// expected answer.
type AttentionCheck struct {
	Expected string `yaml:"expected" json:"expected"`
}

// UnmarshalYAML accepts both the bare-literal and the {expected: ...}
// document shapes.
func (a *AttentionCheck) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&a.Expected)
	}
	type plain AttentionCheck
	return node.Decode((*plain)(a))
}

// Question is one questionnaire item, immutable after load.
type Question struct {
	ID             string          `yaml:"id" json:"id"`
	Label          string          `yaml:"label" json:"label"`
	Type           QuestionType    `yaml:"type" json:"type"`
	Required       bool            `yaml:"required" json:"required"`
	Options        []Option        `yaml:"options,omitempty" json:"options,omitempty"`
	ShowIf         *ConditionSet   `yaml:"showIf,omitempty" json:"showIf,omitempty"`
	AttentionCheck *AttentionCheck `yaml:"attentionCheck,omitempty" json:"attentionCheck,omitempty"`
	MaxSelections  int             `yaml:"maxSelections,omitempty" json:"maxSelections,omitempty"`
}

// IsAttentionCheck reports whether the question carries an expected answer.
func (q *Question) IsAttentionCheck() bool {
	return q.AttentionCheck != nil && q.AttentionCheck.Expected != ""
}

// FindOption returns the option with the given value, or nil.
func (q *Question) FindOption(value string) *Option {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i]
		}
	}
	return nil
}

// OptionIndex returns the ordinal position of an option value, or -1.
func (q *Question) OptionIndex(value string) int {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return i
		}
	}
	return -1
}

// Section groups questions in declared order.
type Section struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title,omitempty" json:"title,omitempty"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Questionnaire is the full question document, loaded once at startup and
// read-only for the process lifetime.
type Questionnaire struct {
	Version        string    `yaml:"version" json:"version"`
	TotalQuestions int       `yaml:"totalQuestions" json:"totalQuestions"`
	Sections       []Section `yaml:"sections" json:"sections"`
}

// LoadQuestionnaire reads and parses a questionnaire document.
func LoadQuestionnaire(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire: %w", err)
	}

	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parse questionnaire: %w", err)
	}

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("questionnaire %q: %w", path, err)
	}
	return &q, nil
}

// Validate checks the document shape. Shape errors are fatal at load time,
// never recoverable per submission.
func (q *Questionnaire) Validate() error {
	if len(q.Sections) == 0 {
		return fmt.Errorf("no sections declared")
	}
	if q.Version == "" {
		q.Version = "1.0.0"
	}

	seen := make(map[string]bool)
	count := 0
	for _, section := range q.Sections {
		for i := range section.Questions {
			question := &section.Questions[i]
			if question.ID == "" {
				return fmt.Errorf("section %q: question %d has no id", section.ID, i)
			}
			if seen[question.ID] {
				return fmt.Errorf("duplicate question id %q", question.ID)
			}
			seen[question.ID] = true

			if question.Type.IsChoice() && len(question.Options) == 0 {
				return fmt.Errorf("question %q: choice type with no options", question.ID)
			}
			if question.MaxSelections > 0 && question.Type != QuestionTypeMulti {
				return fmt.Errorf("question %q: maxSelections only applies to multi", question.ID)
			}
			count++
		}
	}

	if q.TotalQuestions == 0 {
		q.TotalQuestions = count
	}
	return nil
}

// EachQuestion walks every question in declared section order.
func (q *Questionnaire) EachQuestion(fn func(section *Section, question *Question)) {
	for s := range q.Sections {
		section := &q.Sections[s]
		for i := range section.Questions {
			fn(section, &section.Questions[i])
		}
	}
}

// FindQuestion returns the question with the given id, or nil.
func (q *Questionnaire) FindQuestion(id string) *Question {
	var found *Question
	q.EachQuestion(func(_ *Section, question *Question) {
		if question.ID == id {
			found = question
		}
	})
	return found
}
