package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pathfinder/internal/model"
)

var ErrNotFound = errors.New("not found")

// SubmissionRepository archives accepted submission payloads.
type SubmissionRepository interface {
	Insert(ctx context.Context, payload *model.SubmissionPayload) error
	GetByID(ctx context.Context, submissionID string) (*model.SubmissionPayload, error)
	List(ctx context.Context, limit int64) ([]*model.SubmissionPayload, error)
}

type submissionRepository struct {
	collection *mongo.Collection
}

// NewSubmissionRepository creates the Mongo-backed archive.
func NewSubmissionRepository(db *mongo.Database) SubmissionRepository {
	return &submissionRepository{
		collection: db.Collection("submissions"),
	}
}

// Insert upserts on submission_id so a retried payload overwrites its own
// archive entry instead of adding a second document.
func (r *submissionRepository) Insert(ctx context.Context, payload *model.SubmissionPayload) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"submission_id": payload.SubmissionID},
		payload,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, submissionID string) (*model.SubmissionPayload, error) {
	var payload model.SubmissionPayload
	err := r.collection.FindOne(ctx, bson.M{"submission_id": submissionID}).Decode(&payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payload, nil
}

func (r *submissionRepository) List(ctx context.Context, limit int64) ([]*model.SubmissionPayload, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payloads []*model.SubmissionPayload
	if err = cursor.All(ctx, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}
