package enum

import "strings"

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentGCash PaymentMethod = "gcash"
)

// IsValid reports whether the payment method is a known value.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentGCash
}

// IsCash reports whether the method tenders physical cash. Non-cash
// methods carry a confirmation reference instead of a tendered amount.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentCash
}

// Display returns the uppercase label printed on receipts.
func (m PaymentMethod) Display() string {
	return strings.ToUpper(string(m))
}
