package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// PaymentService orchestrates checkout against the configured providers.
// The local row is always written before the provider is called, and a
// provider failure never moves a payment forward on its own.
type PaymentService struct {
	repo      ports.PaymentRepository
	userRepo  ports.UserRepository
	providers map[domain.PaymentMethod]ports.PaymentProvider
	relay     ports.RelayPublisher
	log       zerolog.Logger
}

func NewPaymentService(
	repo ports.PaymentRepository,
	userRepo ports.UserRepository,
	providers []ports.PaymentProvider,
	relay ports.RelayPublisher,
	log zerolog.Logger,
) *PaymentService {
	byMethod := make(map[domain.PaymentMethod]ports.PaymentProvider, len(providers))
	for _, p := range providers {
		byMethod[p.Method()] = p
	}
	return &PaymentService{repo: repo, userRepo: userRepo, providers: byMethod, relay: relay, log: log}
}

func (s *PaymentService) Config(ctx context.Context) ports.PaymentConfig {
	cfg := ports.PaymentConfig{
		Currencies: domain.CurrencyMinimums,
		Providers: map[string]bool{
			string(domain.MethodPaystack): false,
			string(domain.MethodPayPal):   false,
			string(domain.MethodManual):   true,
		},
	}
	for method := range s.providers {
		cfg.Providers[string(method)] = true
	}
	return cfg
}

func (s *PaymentService) Initialize(ctx context.Context, actor domain.Actor, method domain.PaymentMethod, in ports.InitializePaymentInput) (*ports.InitializePaymentResult, error) {
	if err := domain.ValidateAmount(in.Amount, in.Currency); err != nil {
		return nil, err
	}

	provider, ok := s.providers[method]
	if !ok {
		return nil, domain.ErrProviderDisabled
	}

	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	// Pending row first; the provider reference is attached after the call.
	now := time.Now().UTC()
	payment := &domain.Payment{
		UserID:      actor.UserID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
		Method:      method,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	payment, err = s.repo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	result, err := provider.Initialize(ctx, in.Amount, in.Currency, in.Description, user.Email)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", payment.ID).Str("method", string(method)).Msg("provider initialize failed")
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, method)
	}

	switch method {
	case domain.MethodPaystack:
		payment.PaystackReference = result.Reference
	case domain.MethodPayPal:
		payment.PayPalOrderID = result.Reference
	}
	payment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("method", string(method)).
		Str("reference", result.Reference).
		Float64("amount", in.Amount).
		Str("currency", in.Currency).
		Msg("payment initialized")

	return &ports.InitializePaymentResult{
		Payment:     payment,
		RedirectURL: result.RedirectURL,
		Reference:   result.Reference,
	}, nil
}

// Verify resolves the payment behind the provider reference and applies the
// provider's terminal verdict. A payment already in a terminal state is
// returned unchanged, so a stale verify cannot revert a completed record. A
// provider transport error leaves the status untouched; the caller may retry.
func (s *PaymentService) Verify(ctx context.Context, actor domain.Actor, method domain.PaymentMethod, reference string) (*domain.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, method, reference)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, payment.UserID); err != nil {
		return nil, err
	}

	if payment.Status.IsTerminal() {
		return payment, nil
	}

	provider, ok := s.providers[method]
	if !ok {
		return nil, domain.ErrProviderDisabled
	}

	result, err := provider.Verify(ctx, reference)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", payment.ID).Str("reference", reference).Msg("provider verify failed")
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, method)
	}

	if err := payment.ApplyVerification(result.Success, time.Now().UTC()); err != nil {
		return payment, nil
	}
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("status", string(payment.Status)).
		Str("provider_status", result.RawStatus).
		Msg("payment verified")

	if payment.Status == domain.PaymentCompleted {
		s.relay.Publish(ports.ChannelAdmin, newRelayEvent(ports.EventPaymentNotification, payment))
	}

	return payment, nil
}

func (s *PaymentService) History(ctx context.Context, actor domain.Actor) ([]*domain.Payment, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *PaymentService) ListAll(ctx context.Context, actor domain.Actor) ([]*domain.Payment, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByUser(ctx, "")
}

// Refund is the only path out of the completed terminal state.
func (s *PaymentService) Refund(ctx context.Context, actor domain.Actor, id string) (*domain.Payment, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentCompleted {
		return nil, domain.ErrPaymentTerminal
	}

	payment.Status = domain.PaymentRefunded
	payment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info().Str("payment_id", payment.ID).Msg("payment refunded")
	return payment, nil
}
