package models

import "time"

// Lifecycle statuses shared by all aggregates.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusExpired  = "EXPIRED"
)

// AuditInfo carries the creation and modification timestamps embedded inline
// in every persisted document.
type AuditInfo struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Touch stamps a freshly created document.
func (a *AuditInfo) Touch(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
