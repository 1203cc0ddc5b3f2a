package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
