// Package submission assembles answer snapshots into the canonical
// submission payload - the one wire contract the delivery side accepts.
package submission

import (
	"time"

	"github.com/google/uuid"

	"pathfinder/internal/engine"
	"pathfinder/internal/model"
)

// Bands for the derived categorical fields.
const (
	BandHigh    = "high"
	BandMedium  = "medium"
	BandLow     = "low"
	BandUnknown = "unknown"
)

// consentQuestionID is the consent flag stripped from the main answer map;
// consent is a gate, not a questionnaire answer.
const consentQuestionID = "consent_agree"

// Assembler produces submission payloads from completed answer maps. It is
// a pure transformation: the id source and clock are injectable so tests
// can pin them down.
type Assembler struct {
	questionnaire *model.Questionnaire
	scoring       *model.ScoringConfig

	now   func() time.Time
	newID func() string
}

// NewAssembler creates an assembler over the loaded configuration
// documents.
func NewAssembler(questionnaire *model.Questionnaire, scoring *model.ScoringConfig) *Assembler {
	return &Assembler{
		questionnaire: questionnaire,
		scoring:       scoring,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithClock overrides the timestamp source. Returns the assembler for
// chaining in tests.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// WithIDSource overrides the submission id source.
func (a *Assembler) WithIDSource(newID func() string) *Assembler {
	a.newID = newID
	return a
}

// GeneratePayload builds the canonical payload for one completed run.
// startedAt may be nil when the start time was never recorded; elapsed
// seconds are then unknown rather than zero. The payload is immutable once
// returned: retries must send it verbatim.
func (a *Assembler) GeneratePayload(answers model.AnswerMap, language string, startedAt *time.Time, deviceLocale string) *model.SubmissionPayload {
	createdAt := a.now().UTC()

	scores := engine.CalculateScores(answers, a.questionnaire, a.scoring)
	freeText := a.extractFreeText(answers)

	// The main answer map excludes free text and the consent flag.
	remaining := make(model.AnswerMap, len(answers))
	for id, value := range answers {
		if _, isFreeText := freeText[id]; isFreeText {
			continue
		}
		if id == consentQuestionID {
			continue
		}
		remaining[id] = value
	}

	var elapsed *int
	if startedAt != nil {
		seconds := int(createdAt.Sub(*startedAt).Round(time.Second) / time.Second)
		elapsed = &seconds
	}

	metadata := model.SubmissionMetadata{
		CompletionDurationSeconds: elapsed,
		DeviceLocale:              deviceLocale,
	}

	payload := &model.SubmissionPayload{
		SubmissionID:         a.newID(),
		CreatedAt:            createdAt,
		QuestionnaireVersion: a.questionnaire.Version,
		LanguageUsed:         language,
		Answers:              remaining,
		DerivedFields: model.DerivedFields{
			AttendanceBand:          attendanceBand(answers.String("attendance")),
			PracticalPreferenceBand: practicalBand(scores[model.DimPracticalPreference]),
			ConstraintFlags:         engine.ConstraintFlags(answers),
		},
		DataQuality: engine.AssessDataQuality(answers, a.questionnaire, a.scoring, metadata),
		Metadata:    metadata,
	}
	if len(freeText) > 0 {
		payload.FreeTextFields = freeText
	}

	return payload
}

func (a *Assembler) extractFreeText(answers model.AnswerMap) map[string]string {
	freeText := make(map[string]string)
	a.questionnaire.EachQuestion(func(_ *model.Section, question *model.Question) {
		if !question.Type.IsFreeText() {
			return
		}
		if value := answers.String(question.ID); value != "" {
			freeText[question.ID] = value
		}
	})
	return freeText
}

func attendanceBand(attendance string) string {
	switch attendance {
	case "always", "often":
		return BandHigh
	case "sometimes":
		return BandMedium
	case "rarely", "notInSchool":
		return BandLow
	}
	return BandUnknown
}

func practicalBand(score int) string {
	switch {
	case score >= 60:
		return BandHigh
	case score >= 40:
		return BandMedium
	}
	return BandLow
}
