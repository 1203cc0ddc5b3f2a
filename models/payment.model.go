package models

// PaymentMethod is how a purchase is paid for
type PaymentMethod string

const (
	PaymentCOD       PaymentMethod = "COD"
	PaymentJazzCash  PaymentMethod = "JazzCash"
	PaymentEasyPaisa PaymentMethod = "EasyPaisa"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentJazzCash, PaymentEasyPaisa:
		return true
	}
	return false
}

// InitialStatus is the payment status a new purchase starts with.
// Wallet payments are confirmed client side before the purchase is placed.
func (m PaymentMethod) InitialStatus() PaymentStatus {
	if m == PaymentJazzCash || m == PaymentEasyPaisa {
		return PaymentPaid
	}
	return PaymentPending
}

// PaymentStatus tracks settlement of a purchase
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}
