package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	Purchase  primitive.ObjectID `bson:"purchase" json:"purchase"`
	Comment   string             `bson:"comment" json:"comment"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewView carries the reviewed purchase and the author
type ReviewView struct {
	Review
	Purchase *Purchase `json:"purchase"`
	User     *User     `json:"user"`
}
