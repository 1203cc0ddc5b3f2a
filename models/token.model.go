package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VerifyEmailTokenTTL   = 24 * time.Hour
	PasswordResetTokenTTL = time.Hour
)

// VerifyEmailToken is the 8 digit code mailed for address verification
type VerifyEmailToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// PasswordResetToken is the secret embedded in a reset link
type PasswordResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (t PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t VerifyEmailToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
