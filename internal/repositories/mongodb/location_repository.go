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

// Compile-time check to ensure LocationRepository implements the interface
var _ repositories.LocationRepository = (*LocationRepository)(nil)

// LocationRepository handles MongoDB operations for EventLocation
type LocationRepository struct {
	collection *mongo.Collection
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{
		collection: db.Collection("locations"),
	}
}

// Create inserts a new location
func (r *LocationRepository) Create(ctx context.Context, location *models.EventLocation) error {
	location.Touch(time.Now())
	res, err := r.collection.InsertOne(ctx, location)
	if err != nil {
		return err
	}
	location.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a location by ID
func (r *LocationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.EventLocation, error) {
	var location models.EventLocation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &location, nil
}

// FindByEventID retrieves all locations of an event
func (r *LocationRepository) FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]*models.EventLocation, error) {
	var locations []*models.EventLocation
	cursor, err := r.collection.Find(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []*models.EventLocation{}
	}
	return locations, nil
}

// Update updates an existing location
func (r *LocationRepository) Update(ctx context.Context, location *models.EventLocation) error {
	location.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": location.ID}, location)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a location by ID
func (r *LocationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
