package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pathfinder/internal/cache"
	"pathfinder/internal/model"
	"pathfinder/internal/repository"
	"pathfinder/internal/store"
)

// Submission statuses reported back to the client.
const (
	StatusDelivered = "delivered"
	StatusQueued    = "queued"
	StatusDuplicate = "duplicate"
)

var ErrInvalidPayload = errors.New("invalid submission payload")

// Relayer delivers one payload to the outbound channel.
type Relayer interface {
	Relay(ctx context.Context, payload *model.SubmissionPayload) error
}

// SubmissionService is the intake path: validate, deduplicate, archive,
// relay - and queue for retry when the relay fails. Submissions are never
// discarded.
type SubmissionService struct {
	repo  repository.SubmissionRepository
	dedup cache.DedupCache
	queue store.SubmissionQueue
	relay Relayer
	log   *zap.Logger
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(repo repository.SubmissionRepository, dedup cache.DedupCache, queue store.SubmissionQueue, relay Relayer, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		repo:  repo,
		dedup: dedup,
		queue: queue,
		relay: relay,
		log:   log,
	}
}

// Validate checks the wire-contract required fields.
func Validate(payload *model.SubmissionPayload) error {
	if payload.SubmissionID == "" {
		return fmt.Errorf("%w: missing required field: submission_id", ErrInvalidPayload)
	}
	if payload.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing required field: created_at", ErrInvalidPayload)
	}
	if len(payload.Answers) == 0 {
		return fmt.Errorf("%w: missing required field: answers", ErrInvalidPayload)
	}
	return nil
}

// Accept processes one inbound payload and returns its status. A
// submission id seen before is acknowledged without reprocessing, so
// client retries are idempotent. Relay failure queues the payload
// verbatim rather than failing the request.
func (s *SubmissionService) Accept(ctx context.Context, payload *model.SubmissionPayload) (string, error) {
	if err := Validate(payload); err != nil {
		return "", err
	}

	first, err := s.dedup.MarkSeen(ctx, payload.SubmissionID)
	if err != nil {
		// Dedup is an optimization; a cache outage must not drop data.
		s.log.Warn("Dedup cache unavailable", zap.Error(err))
		first = true
	}
	if !first {
		s.log.Info("Duplicate submission acknowledged", zap.String("submission_id", payload.SubmissionID))
		return StatusDuplicate, nil
	}

	if err := s.repo.Insert(ctx, payload); err != nil {
		// The id was never durably handled; forget it so the client's
		// retry is processed as new instead of acknowledged as duplicate.
		if fErr := s.dedup.Forget(ctx, payload.SubmissionID); fErr != nil {
			s.log.Error("Failed to release dedup entry for unarchived submission",
				zap.String("submission_id", payload.SubmissionID),
				zap.Error(fErr),
			)
		}
		return "", fmt.Errorf("archive submission %s: %w", payload.SubmissionID, err)
	}

	if err := s.relay.Relay(ctx, payload); err != nil {
		s.log.Warn("Relay failed, queueing submission",
			zap.String("submission_id", payload.SubmissionID),
			zap.Error(err),
		)
		if qErr := s.queue.Enqueue(ctx, payload); qErr != nil {
			if fErr := s.dedup.Forget(ctx, payload.SubmissionID); fErr != nil {
				s.log.Error("Failed to release dedup entry for unqueued submission",
					zap.String("submission_id", payload.SubmissionID),
					zap.Error(fErr),
				)
			}
			return "", fmt.Errorf("queue submission %s: %w", payload.SubmissionID, qErr)
		}
		return StatusQueued, nil
	}

	return StatusDelivered, nil
}

// RetryPending replays queued payloads strictly sequentially: one relay
// attempt awaited per item, removal only on confirmed success, retry
// counter bumped on failure.
func (s *SubmissionService) RetryPending(ctx context.Context) (succeeded, failed int, err error) {
	items, err := s.queue.Pending(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read queue: %w", err)
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return succeeded, failed, ctx.Err()
		}

		if relayErr := s.relay.Relay(ctx, &item.Payload); relayErr != nil {
			failed++
			s.log.Warn("Retry failed",
				zap.String("submission_id", item.Payload.SubmissionID),
				zap.Int("retry_count", item.RetryCount+1),
				zap.Error(relayErr),
			)
			if err := s.queue.IncrementRetry(ctx, item.Payload.SubmissionID); err != nil {
				s.log.Error("Failed to update retry counter", zap.Error(err))
			}
			continue
		}

		succeeded++
		if err := s.queue.Remove(ctx, item.Payload.SubmissionID); err != nil {
			s.log.Error("Failed to remove delivered submission from queue",
				zap.String("submission_id", item.Payload.SubmissionID),
				zap.Error(err),
			)
		}
	}

	return succeeded, failed, nil
}

// GetByID fetches one archived submission.
func (s *SubmissionService) GetByID(ctx context.Context, submissionID string) (*model.SubmissionPayload, error) {
	return s.repo.GetByID(ctx, submissionID)
}

// List fetches the most recent archived submissions.
func (s *SubmissionService) List(ctx context.Context, limit int64) ([]*model.SubmissionPayload, error) {
	return s.repo.List(ctx, limit)
}
