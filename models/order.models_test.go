package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ShippingStatus
		allowed  bool
	}{
		{ShippingPlaced, ShippingPacked, true},
		{ShippingPlaced, ShippingShipped, true},
		{ShippingPacked, ShippingOutForDelivery, true},
		{ShippingOutForDelivery, ShippingDelivered, true},
		{ShippingShipped, ShippingCancelled, true},
		{ShippingPlaced, ShippingCancelled, true},
		{ShippingPacked, ShippingPlaced, false},
		{ShippingPlaced, ShippingPlaced, false},
		{ShippingDelivered, ShippingCancelled, false},
		{ShippingCancelled, ShippingPlaced, false},
		{ShippingPlaced, ShippingStatus("lost"), false},
		{ShippingStatus("lost"), ShippingPacked, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestPurchaseHoldsStock(t *testing.T) {
	assert.True(t, Purchase{ShippingStatus: ShippingPlaced}.HoldsStock())
	assert.True(t, Purchase{ShippingStatus: ShippingShipped}.HoldsStock())
	assert.False(t, Purchase{ShippingStatus: ShippingDelivered}.HoldsStock())
	assert.False(t, Purchase{ShippingStatus: ShippingCancelled}.HoldsStock())
}

func TestPaymentMethodInitialStatus(t *testing.T) {
	assert.Equal(t, PaymentPending, PaymentCOD.InitialStatus())
	assert.Equal(t, PaymentPaid, PaymentJazzCash.InitialStatus())
	assert.Equal(t, PaymentPaid, PaymentEasyPaisa.InitialStatus())
	assert.False(t, PaymentMethod("card").Valid())
	assert.True(t, PaymentFailed.Valid())
	assert.False(t, PaymentStatus("completed").Valid())
}

func TestUserPublicStripsPassword(t *testing.T) {
	u := User{Name: "Ada", Password: "hash"}
	assert.Empty(t, u.Public().Password)
	assert.Equal(t, "hash", u.Password)
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
