package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinItemQuantity = 1
	MaxItemQuantity = 100
)

// CartItem is one product line in a user's cart
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartItemView is a cart item with its product resolved
type CartItemView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      primitive.ObjectID `json:"user"`
	Product   *Product           `json:"product"`
	Size      string             `json:"size,omitempty"`
	Quantity  int                `json:"quantity"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ValidQuantity reports whether q is within the per-line limits
func ValidQuantity(q int) bool {
	return q >= MinItemQuantity && q <= MaxItemQuantity
}
