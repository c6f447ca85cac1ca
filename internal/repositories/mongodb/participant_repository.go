package mongodb

import (
	"context"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure ParticipantRepository implements the interface
var _ repositories.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository handles MongoDB operations for Participant
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *mongo.Database) *ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// Create inserts a new participant
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	participant.Touch(time.Now())
	res, err := r.collection.InsertOne(ctx, participant)
	if err != nil {
		return err
	}
	participant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a participant by ID
func (r *ParticipantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &participant, nil
}

// FindByPhone finds a participant of an event by phone number
func (r *ParticipantRepository) FindByPhone(ctx context.Context, eventID primitive.ObjectID, phone string) (*models.Participant, error) {
	var participant models.Participant
	filter := bson.M{"eventId": eventID, "phone": phone}
	err := r.collection.FindOne(ctx, filter).Decode(&participant)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &participant, nil
}

// FindByEventID retrieves all participants of an event
func (r *ParticipantRepository) FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]*models.Participant, error) {
	var participants []*models.Participant
	cursor, err := r.collection.Find(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []*models.Participant{}
	}
	return participants, nil
}

// Update updates an existing participant unconditionally
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	participant.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": participant.ID}, participant)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a participant by ID
func (r *ParticipantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// UpdateVersioned replaces the participant only if the stored version still
// matches. The quota ledger relies on this to serialize counter decrements.
func (r *ParticipantRepository) UpdateVersioned(ctx context.Context, participant *models.Participant) error {
	expected := participant.Version
	participant.Version = expected + 1
	participant.UpdatedAt = time.Now()
	filter := bson.M{"_id": participant.ID, "version": expected}
	res, err := r.collection.ReplaceOne(ctx, filter, participant)
	if err != nil {
		participant.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		participant.Version = expected
		return repositories.ErrVersionConflict
	}
	return nil
}

// Count returns the number of participants
func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
