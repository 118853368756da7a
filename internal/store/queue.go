// Package store provides the durable local queue for submissions whose
// delivery failed. The queue survives process restarts; items leave it
// only on confirmed delivery.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"pathfinder/internal/model"
)

// SubmissionQueue is the narrow interface the retry path depends on.
type SubmissionQueue interface {
	Enqueue(ctx context.Context, payload *model.SubmissionPayload) error
	Pending(ctx context.Context) ([]*model.QueuedSubmission, error)
	IncrementRetry(ctx context.Context, submissionID string) error
	Remove(ctx context.Context, submissionID string) error
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS submission_queue (
	submission_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	queued_at TIMESTAMP NOT NULL,
	retry_count INTEGER NOT NULL DEFAULT 0
);
`

type sqliteQueue struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSubmissionQueue opens (or creates) the queue database at path.
func NewSubmissionQueue(path string) (SubmissionQueue, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create queue schema: %w", err)
	}
	return &sqliteQueue{db: db}, nil
}

// Enqueue stores a payload verbatim. A payload already queued under the
// same submission id is left untouched, so re-queueing is idempotent.
func (q *sqliteQueue) Enqueue(ctx context.Context, payload *model.SubmissionPayload) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO submission_queue (submission_id, payload, queued_at, retry_count)
		VALUES (?, ?, ?, 0)
	`, payload.SubmissionID, string(data), time.Now().UTC())
	return err
}

// Pending returns queued items in enqueue order.
func (q *sqliteQueue) Pending(ctx context.Context) ([]*model.QueuedSubmission, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	rows, err := q.db.QueryContext(ctx, `
		SELECT payload, queued_at, retry_count
		FROM submission_queue
		ORDER BY queued_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.QueuedSubmission
	for rows.Next() {
		var (
			data       string
			queuedAt   time.Time
			retryCount int
		)
		if err := rows.Scan(&data, &queuedAt, &retryCount); err != nil {
			return nil, err
		}

		item := &model.QueuedSubmission{QueuedAt: queuedAt, RetryCount: retryCount}
		if err := json.Unmarshal([]byte(data), &item.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal queued payload: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (q *sqliteQueue) IncrementRetry(ctx context.Context, submissionID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, err := q.db.ExecContext(ctx, `
		UPDATE submission_queue SET retry_count = retry_count + 1 WHERE submission_id = ?
	`, submissionID)
	return err
}

func (q *sqliteQueue) Remove(ctx context.Context, submissionID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, err := q.db.ExecContext(ctx, `
		DELETE FROM submission_queue WHERE submission_id = ?
	`, submissionID)
	return err
}

func (q *sqliteQueue) Close() error {
	return q.db.Close()
}
