package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a message left through the contact form
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Message   string             `bson:"message" json:"message" validate:"required"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ContactView struct {
	Contact
	User *User `json:"user"`
}
