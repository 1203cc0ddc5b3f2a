package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session backs a refresh token. Logging out flips Valid to false.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Valid     bool               `bson:"valid" json:"valid"`
	UserAgent string             `bson:"userAgent" json:"userAgent"`
	IP        string             `bson:"ip" json:"ip"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the session can still mint tokens at now
func (s Session) Active(now time.Time) bool {
	return s.Valid && now.Before(s.ExpiresAt)
}
