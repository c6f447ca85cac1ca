package mongodb

import (
	"context"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure SpinHistoryRepository implements the interface
var _ repositories.SpinHistoryRepository = (*SpinHistoryRepository)(nil)

// SpinHistoryRepository handles MongoDB operations for SpinHistory.
// The collection is append-only.
type SpinHistoryRepository struct {
	collection *mongo.Collection
}

// NewSpinHistoryRepository creates a new SpinHistoryRepository
func NewSpinHistoryRepository(db *mongo.Database) *SpinHistoryRepository {
	return &SpinHistoryRepository{
		collection: db.Collection("spin_histories"),
	}
}

// Create appends one spin history row
func (r *SpinHistoryRepository) Create(ctx context.Context, history *models.SpinHistory) error {
	history.Touch(time.Now())
	res, err := r.collection.InsertOne(ctx, history)
	if err != nil {
		return err
	}
	history.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByParticipantID retrieves a participant's spin history, newest first
func (r *SpinHistoryRepository) FindByParticipantID(ctx context.Context, participantID primitive.ObjectID, page, limit int) ([]*models.SpinHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var histories []*models.SpinHistory
	opts := options.Find().
		SetSort(bson.D{{Key: "spunAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"participantId": participantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &histories); err != nil {
		return nil, err
	}
	if histories == nil {
		histories = []*models.SpinHistory{}
	}
	return histories, nil
}

// CountByRewardID counts history rows for a reward filtered by win flag
func (r *SpinHistoryRepository) CountByRewardID(ctx context.Context, rewardID primitive.ObjectID, won bool) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"rewardId": rewardID, "won": won})
}
