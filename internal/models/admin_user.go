package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AdminUser is an operator account for the admin API.
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	AuditInfo `bson:",inline"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the minted JWT back to the operator.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
