package domain

import (
	"errors"
	"math"
	"time"
)

// PaymentMethod selects the gateway a payment is processed through.
// "manual" covers admin-recorded payments with no external gateway.
type PaymentMethod string

const (
	MethodPaystack PaymentMethod = "paystack"
	MethodPayPal   PaymentMethod = "paypal"
	MethodManual   PaymentMethod = "manual"
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

var ErrPaymentNotFound = errors.New("payment not found")
var ErrPaymentTerminal = errors.New("payment already in a terminal state")
var ErrUnsupportedCurrency = errors.New("unsupported currency")
var ErrAmountBelowMinimum = errors.New("amount below currency minimum")
var ErrProviderUnavailable = errors.New("payment provider unavailable")
var ErrProviderDisabled = errors.New("payment method not enabled")

// CurrencyMinimums maps each supported currency to its minimum charge in
// major units.
var CurrencyMinimums = map[string]float64{
	"NGN": 100,
	"USD": 1,
	"GHS": 1,
	"ZAR": 10,
	"KES": 100,
}

// ValidateAmount checks the currency is supported and the amount meets its
// minimum.
func ValidateAmount(amount float64, currency string) error {
	minAmount, ok := CurrencyMinimums[currency]
	if !ok {
		return ErrUnsupportedCurrency
	}
	if amount < minAmount {
		return ErrAmountBelowMinimum
	}
	return nil
}

// ToMinorUnits converts a major-unit amount to the provider's minor unit.
// Amounts are stored in major units; conversion happens only at the provider
// call boundary.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// IsTerminal reports whether no further automatic transition occurs.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// Payment belongs to one user. Exactly one provider reference set is
// populated, consistent with Method: PaystackReference for paystack,
// PayPalOrderID for paypal, neither for manual.
type Payment struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	UserID            string        `json:"user_id" bson:"user_id"`
	Amount            float64       `json:"amount" bson:"amount"`
	Currency          string        `json:"currency" bson:"currency"`
	Description       string        `json:"description,omitempty" bson:"description,omitempty"`
	Method            PaymentMethod `json:"payment_method" bson:"payment_method"`
	Status            PaymentStatus `json:"status" bson:"status"`
	PaystackReference string        `json:"paystack_reference,omitempty" bson:"paystack_reference,omitempty"`
	PayPalOrderID     string        `json:"paypal_order_id,omitempty" bson:"paypal_order_id,omitempty"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" bson:"updated_at"`
}

// CorrelationID returns the populated provider reference, if any.
func (p *Payment) CorrelationID() string {
	switch p.Method {
	case MethodPaystack:
		return p.PaystackReference
	case MethodPayPal:
		return p.PayPalOrderID
	}
	return ""
}

// ApplyVerification maps a provider terminal outcome onto the payment.
// Terminal states are sticky: verifying a payment already in a terminal state
// returns ErrPaymentTerminal and leaves the record unmodified, so a stale
// out-of-order verify can never overwrite a completed payment.
func (p *Payment) ApplyVerification(success bool, at time.Time) error {
	if p.Status.IsTerminal() {
		return ErrPaymentTerminal
	}
	if success {
		p.Status = PaymentCompleted
		t := at.UTC()
		p.CompletedAt = &t
	} else {
		p.Status = PaymentFailed
	}
	p.UpdatedAt = at.UTC()
	return nil
}
