package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feedback-systems/ai-feedback-backend/internal/models"
)

// ErrNotFound covers both unknown and malformed submission ids, so callers
// can map either straight to a 404.
var ErrNotFound = errors.New("submission not found")

// SubmissionStore persists feedback submissions in a single collection.
type SubmissionStore struct {
	col *mongo.Collection
}

func NewSubmissionStore(m *Mongo, collection string) *SubmissionStore {
	return &SubmissionStore{col: m.Collection(collection)}
}

// Insert stores a new submission and returns its store-assigned id as hex.
func (s *SubmissionStore) Insert(ctx context.Context, sub *models.Submission) (string, error) {
	res, err := s.col.InsertOne(ctx, sub)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *SubmissionStore) Get(ctx context.Context, id string) (*models.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var sub models.Submission
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns a page of submissions, newest first, plus the total count of
// documents matching the filter regardless of the pagination window.
// ratingFilter of 0 means no filter.
func (s *SubmissionStore) List(ctx context.Context, limit, skip int64, ratingFilter int) ([]models.Submission, int64, error) {
	filter := bson.M{}
	if ratingFilter != 0 {
		filter["rating"] = ratingFilter
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

// Update applies a partial field merge and reports whether a document
// changed. Kept as a store primitive; no route currently reaches it.
func (s *SubmissionStore) Update(ctx context.Context, id string, fields bson.M) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Stats returns the total submission count and a per-rating breakdown for
// the dashboard.
func (s *SubmissionStore) Stats(ctx context.Context) (int64, map[int]int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, nil, err
	}

	byRating := make(map[int]int64, 5)
	for rating := 1; rating <= 5; rating++ {
		count, err := s.col.CountDocuments(ctx, bson.M{"rating": rating})
		if err != nil {
			return 0, nil, err
		}
		byRating[rating] = count
	}

	return total, byRating, nil
}
