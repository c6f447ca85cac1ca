package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure EventRepository implements the interface
var _ repositories.EventRepository = (*EventRepository)(nil)

// EventRepository handles MongoDB operations for Event
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.Touch(time.Now())
	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	event.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds an event by ID
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &event, nil
}

// FindByCode finds an event by its unique code
func (r *EventRepository) FindByCode(ctx context.Context, code string) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&event)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &event, nil
}

// FindAll retrieves all events
func (r *EventRepository) FindAll(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// Update updates an existing event unconditionally
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes an event by ID
func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// UpdateVersioned replaces the event only if the stored version still matches
func (r *EventRepository) UpdateVersioned(ctx context.Context, event *models.Event) error {
	expected := event.Version
	event.Version = expected + 1
	event.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": event.ID, "version": expected}, event)
	if err != nil {
		event.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		event.Version = expected
		return repositories.ErrVersionConflict
	}
	return nil
}

// mapNotFound converts the driver's no-documents error to the repository error
func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	return err
}
