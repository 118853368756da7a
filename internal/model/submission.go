package model

import "time"

// RiskLevel classifies response quality, ordered low < medium < high.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) rank() int {
	switch r {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	}
	return 0
}

// Escalate returns the higher of the two levels. Risk only ever moves up
// within one assessment.
func (r RiskLevel) Escalate(to RiskLevel) RiskLevel {
	if to.rank() > r.rank() {
		return to
	}
	return r
}

// QualityMetrics are the raw measurements behind a quality assessment.
// AttentionPassed is a tri-state: nil means no attention check was
// answered, which is unknown rather than a failure.
type QualityMetrics struct {
	CompletionSeconds  *int  `json:"completion_seconds" bson:"completion_seconds"`
	AttentionPassed    *bool `json:"attention_passed" bson:"attention_passed"`
	ContradictionCount int   `json:"contradiction_count" bson:"contradiction_count"`
	StraightlineScore  int   `json:"straightline_score" bson:"straightline_score"`
}

// QualityAssessment is the aggregate risk signal for one submission.
type QualityAssessment struct {
	Risk    RiskLevel      `json:"risk" bson:"risk"`
	Reasons []string       `json:"reasons" bson:"reasons"`
	Metrics QualityMetrics `json:"metrics" bson:"metrics"`
}

// SubmissionMetadata travels with a payload: timing plus device locale.
type SubmissionMetadata struct {
	CompletionDurationSeconds *int   `json:"completion_duration_seconds" bson:"completion_duration_seconds"`
	DeviceLocale              string `json:"device_locale" bson:"device_locale"`
}

// DerivedFields are categorical buckets computed at assembly time so the
// receiving side never needs the scoring configuration.
type DerivedFields struct {
	AttendanceBand          string   `json:"attendance_band" bson:"attendance_band"`
	PracticalPreferenceBand string   `json:"practical_preference_band" bson:"practical_preference_band"`
	ConstraintFlags         []string `json:"constraint_flags" bson:"constraint_flags"`
}

// SubmissionPayload is the canonical, versioned submission record - the
// single wire contract exposed to the delivery side. Once assembled it is
// immutable: retries send it verbatim, scores and timestamps are never
// recomputed.
type SubmissionPayload struct {
	SubmissionID         string             `json:"submission_id" bson:"submission_id"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	QuestionnaireVersion string             `json:"questionnaire_version" bson:"questionnaire_version"`
	LanguageUsed         string             `json:"language_used" bson:"language_used"`
	Answers              AnswerMap          `json:"answers" bson:"answers"`
	FreeTextFields       map[string]string  `json:"free_text_fields,omitempty" bson:"free_text_fields,omitempty"`
	DerivedFields        DerivedFields      `json:"derived_fields" bson:"derived_fields"`
	DataQuality          QualityAssessment  `json:"data_quality" bson:"data_quality"`
	Metadata             SubmissionMetadata `json:"metadata" bson:"metadata"`
}

// QueuedSubmission wraps a payload awaiting redelivery. RetryCount tracks
// unsuccessful attempts; the item leaves the queue only on confirmed
// delivery.
type QueuedSubmission struct {
	Payload    SubmissionPayload `json:"payload"`
	QueuedAt   time.Time         `json:"queued_at"`
	RetryCount int               `json:"retry_count"`
}
