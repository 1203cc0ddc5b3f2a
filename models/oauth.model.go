package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OAuthProvider string

const (
	ProviderGoogle OAuthProvider = "google"
	ProviderGitHub OAuthProvider = "github"
)

// OAuthAccount links a user to an identity at an external provider
type OAuthAccount struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            primitive.ObjectID `bson:"userId"`
	Provider          OAuthProvider      `bson:"provider"`
	ProviderAccountID string             `bson:"providerAccountId"`
	CreatedAt         time.Time          `bson:"createdAt"`
}
