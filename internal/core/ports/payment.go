package ports

import (
	"context"

	"github.com/autocarepro/autocare-api/internal/core/domain"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	// FindByReference looks a payment up by its provider correlation id.
	FindByReference(ctx context.Context, method domain.PaymentMethod, reference string) (*domain.Payment, error)
	// ListByUser returns payments for one user, newest first; an empty
	// userID returns all payments (admin listing).
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
}

// InitializeResult is what a provider returns when a transaction is opened.
type InitializeResult struct {
	// RedirectURL is where the client completes the checkout.
	RedirectURL string
	// Reference is the provider's correlation id for the transaction.
	Reference string
}

// VerifyResult is the provider's terminal verdict for a transaction.
type VerifyResult struct {
	Success bool
	// RawStatus is the provider's own status string, logged server-side only.
	RawStatus string
}

// PaymentProvider is the gateway capability implemented once per provider
// and selected by the payment method.
type PaymentProvider interface {
	Method() domain.PaymentMethod
	// Initialize opens a transaction for the amount (major units; the
	// implementation converts to the provider's minor unit) and returns the
	// redirect URL plus correlation reference.
	Initialize(ctx context.Context, amount float64, currency, description, userEmail string) (*InitializeResult, error)
	// Verify fetches the provider's terminal status for the reference.
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// InitializePaymentInput carries a checkout request.
type InitializePaymentInput struct {
	Amount      float64
	Currency    string
	Description string
}

// InitializePaymentResult is returned to the client after initialization.
type InitializePaymentResult struct {
	Payment     *domain.Payment
	RedirectURL string
	Reference   string
}

// PaymentConfig is the public provider/currency configuration.
type PaymentConfig struct {
	Currencies map[string]float64 // currency -> minimum charge, major units
	Providers  map[string]bool    // method -> enabled
}

// PaymentService defines payment use cases.
type PaymentService interface {
	Config(ctx context.Context) PaymentConfig
	Initialize(ctx context.Context, actor domain.Actor, method domain.PaymentMethod, in InitializePaymentInput) (*InitializePaymentResult, error)
	// Verify resolves the payment behind reference against the provider and
	// applies the terminal outcome. Terminal records are returned unchanged.
	Verify(ctx context.Context, actor domain.Actor, method domain.PaymentMethod, reference string) (*domain.Payment, error)
	History(ctx context.Context, actor domain.Actor) ([]*domain.Payment, error)
	// ListAll returns every payment. Admin only.
	ListAll(ctx context.Context, actor domain.Actor) ([]*domain.Payment, error)
	// Refund moves a completed payment to refunded. Admin only.
	Refund(ctx context.Context, actor domain.Actor, id string) (*domain.Payment, error)
}
