package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pathfinder/internal/config"
	"pathfinder/internal/model"
)

// RelayService forwards accepted submissions to the mail-relay API. With
// no API key configured it runs in log-only mode so local development
// never needs credentials.
type RelayService struct {
	cfg    config.DeliveryConfig
	client *http.Client
	log    *zap.Logger
}

// NewRelayService creates a new relay service.
func NewRelayService(cfg config.DeliveryConfig, log *zap.Logger) *RelayService {
	return &RelayService{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		log:    log,
	}
}

// IsEnabled reports whether a real relay endpoint is configured.
func (s *RelayService) IsEnabled() bool {
	return s.cfg.APIKey != ""
}

// Relay delivers one payload. The payload is sent verbatim as a JSON
// attachment with a short text summary; the submission id in the subject
// lets the receiving side deduplicate retries.
func (s *RelayService) Relay(ctx context.Context, payload *model.SubmissionPayload) error {
	if !s.IsEnabled() {
		s.log.Info("Relay disabled, logging submission instead",
			zap.String("submission_id", payload.SubmissionID),
			zap.String("risk", string(payload.DataQuality.Risk)),
		)
		return nil
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	subject := fmt.Sprintf("Path Finder Submission - %s", shortID(payload.SubmissionID))
	body := fmt.Sprintf(
		"New questionnaire submission received.\n\nSubmission ID: %s\nSubmitted At: %s\nLanguage: %s\nQuestions Answered: %d\n",
		payload.SubmissionID,
		payload.CreatedAt.Format(time.RFC3339),
		payload.LanguageUsed,
		len(payload.Answers),
	)

	reqBody := map[string]any{
		"from":    s.cfg.From,
		"to":      []string{s.cfg.Recipient},
		"subject": subject,
		"text":    body,
		"attachments": []map[string]string{
			{
				"filename": fmt.Sprintf("submission-%s.json", payload.SubmissionID),
				"content":  base64.StdEncoding.EncodeToString(raw),
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay submission %s: %w", payload.SubmissionID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("relay rejected submission %s: %s", payload.SubmissionID, apiErr.Message)
		}
		return fmt.Errorf("relay rejected submission %s: status %d", payload.SubmissionID, resp.StatusCode)
	}

	s.log.Info("Submission relayed", zap.String("submission_id", payload.SubmissionID))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
