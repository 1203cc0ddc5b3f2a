package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required,max=500"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	Reviews     float64            `bson:"reviews" json:"reviews" validate:"gte=0,lte=5"`
	Rating      float64            `bson:"rating,omitempty" json:"rating,omitempty" validate:"gte=0,lte=5"`
	Sizes       []int              `bson:"sizes" json:"sizes"`
	Image       string             `bson:"image" json:"image" validate:"required"`
	Brand       string             `bson:"brand" json:"brand" validate:"required"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
