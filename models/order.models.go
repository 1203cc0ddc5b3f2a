package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingStatus is the fulfilment state of a purchase
type ShippingStatus string

const (
	ShippingPlaced         ShippingStatus = "placed"
	ShippingPacked         ShippingStatus = "packed"
	ShippingShipped        ShippingStatus = "shipped"
	ShippingOutForDelivery ShippingStatus = "out-for-delivery"
	ShippingDelivered      ShippingStatus = "delivered"
	ShippingCancelled      ShippingStatus = "cancelled"
)

// shippingOrder is the forward path; cancelled sits outside it
var shippingOrder = map[ShippingStatus]int{
	ShippingPlaced:         0,
	ShippingPacked:         1,
	ShippingShipped:        2,
	ShippingOutForDelivery: 3,
	ShippingDelivered:      4,
}

func (s ShippingStatus) Valid() bool {
	_, ok := shippingOrder[s]
	return ok || s == ShippingCancelled
}

// Terminal reports whether no further transitions are possible
func (s ShippingStatus) Terminal() bool {
	return s == ShippingDelivered || s == ShippingCancelled
}

// CanTransitionTo allows forward moves (skipping steps is fine) and
// cancellation of anything that has not been delivered.
func (s ShippingStatus) CanTransitionTo(next ShippingStatus) bool {
	if !s.Valid() || !next.Valid() || s.Terminal() || s == next {
		return false
	}
	if next == ShippingCancelled {
		return true
	}
	return shippingOrder[next] > shippingOrder[s]
}

// Purchase represents a single-product order placed by a user
type Purchase struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Product        primitive.ObjectID `bson:"product" json:"product"`
	Size           string             `bson:"size,omitempty" json:"size,omitempty"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingStatus ShippingStatus     `bson:"shippingStatus" json:"shippingStatus"`
	PaymentMethod  PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus  PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID  *string            `bson:"transactionId" json:"transactionId"`
	Review         string             `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HoldsStock reports whether the purchase still reserves product stock
func (p Purchase) HoldsStock() bool {
	return p.ShippingStatus != ShippingCancelled && p.ShippingStatus != ShippingDelivered
}

// PurchaseView is a purchase with product and buyer resolved
type PurchaseView struct {
	Purchase
	Product *Product `json:"product"`
	User    *User    `json:"user,omitempty"`
}
