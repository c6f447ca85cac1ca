package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// EventLocation scopes rewards and participants to one venue of an event.
type EventLocation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventID   primitive.ObjectID `bson:"eventId" json:"eventId"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	Status    string             `bson:"status" json:"status"`
	AuditInfo `bson:",inline"`
}

// IsActive reports whether the location currently accepts spins.
func (l *EventLocation) IsActive() bool {
	return l.Status == StatusActive
}
