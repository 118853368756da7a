package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pathfinder/internal/model"
	"pathfinder/internal/repository"
	"pathfinder/internal/service"
)

// SubmissionIntake accepts inbound payloads and serves the archive.
type SubmissionIntake interface {
	Accept(ctx context.Context, payload *model.SubmissionPayload) (string, error)
	GetByID(ctx context.Context, submissionID string) (*model.SubmissionPayload, error)
	List(ctx context.Context, limit int64) ([]*model.SubmissionPayload, error)
}

// SubmissionHandler handles submission endpoints
type SubmissionHandler struct {
	submissionSvc SubmissionIntake
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc SubmissionIntake) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// SubmitResponse is the acknowledgement body for an accepted submission
type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
}

// Submit handles POST /v1/submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload model.SubmissionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.submissionSvc.Accept(r.Context(), &payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process submission")
		return
	}

	writeJSON(w, http.StatusAccepted, SubmitResponse{
		SubmissionID: payload.SubmissionID,
		Status:       status,
	})
}

// List handles GET /v1/submissions (admin)
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	submissions, err := h.submissionSvc.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	if submissions == nil {
		submissions = []*model.SubmissionPayload{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}

// Get handles GET /v1/submissions/{submissionId} (admin)
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	submissionID := mux.Vars(r)["submissionId"]

	submission, err := h.submissionSvc.GetByID(r.Context(), submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get submission")
		return
	}

	writeJSON(w, http.StatusOK, submission)
}
