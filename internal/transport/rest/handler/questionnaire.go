package handler

import (
	"net/http"
	"time"

	"pathfinder/internal/calendar"
	"pathfinder/internal/model"
)

// QuestionnaireHandler serves the questionnaire documents to clients
type QuestionnaireHandler struct {
	questionnaire *model.Questionnaire
	scoring       *model.ScoringConfig
	calendar      *calendar.Calendar
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(q *model.Questionnaire, s *model.ScoringConfig, cal *calendar.Calendar) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaire: q, scoring: s, calendar: cal}
}

// QuestionnaireResponse bundles the documents the client needs to run the
// questionnaire with the current term status
type QuestionnaireResponse struct {
	Questionnaire *model.Questionnaire `json:"questionnaire"`
	Scoring       *model.ScoringConfig `json:"scoring"`
	TermStatus    calendar.Status      `json:"term_status"`
}

// Get handles GET /v1/questionnaire
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, QuestionnaireResponse{
		Questionnaire: h.questionnaire,
		Scoring:       h.scoring,
		TermStatus:    h.calendar.StatusAt(time.Now()),
	})
}
