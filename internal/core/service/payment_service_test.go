package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

type stubPaymentRepo struct {
	payments map[string]*domain.Payment
	seq      int
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[string]*domain.Payment)}
}

func clonePayment(p *domain.Payment) *domain.Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	copy := clonePayment(p)
	if copy.ID == "" {
		r.seq++
		copy.ID = "pay_" + strconv.Itoa(r.seq)
	}
	r.payments[copy.ID] = clonePayment(copy)
	return clonePayment(copy), nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(p), nil
}

func (r *stubPaymentRepo) FindByReference(_ context.Context, method domain.PaymentMethod, reference string) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.Method != method {
			continue
		}
		switch method {
		case domain.MethodPaystack:
			if p.PaystackReference == reference {
				return clonePayment(p), nil
			}
		case domain.MethodPayPal:
			if p.PayPalOrderID == reference {
				return clonePayment(p), nil
			}
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *stubPaymentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if userID != "" && p.UserID != userID {
			continue
		}
		out = append(out, clonePayment(p))
	}
	return out, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, p *domain.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return domain.ErrPaymentNotFound
	}
	r.payments[p.ID] = clonePayment(p)
	return nil
}

// stubProvider is a scriptable in-memory gateway.
type stubProvider struct {
	method     domain.PaymentMethod
	reference  string
	initErr    error
	verifyErr  error
	success    bool
	initCalls  int
	verifyRefs []string
}

func (p *stubProvider) Method() domain.PaymentMethod { return p.method }

func (p *stubProvider) Initialize(_ context.Context, amount float64, currency, description, userEmail string) (*ports.InitializeResult, error) {
	p.initCalls++
	if p.initErr != nil {
		return nil, p.initErr
	}
	return &ports.InitializeResult{RedirectURL: "https://checkout.example/" + p.reference, Reference: p.reference}, nil
}

func (p *stubProvider) Verify(_ context.Context, reference string) (*ports.VerifyResult, error) {
	p.verifyRefs = append(p.verifyRefs, reference)
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	return &ports.VerifyResult{Success: p.success, RawStatus: "scripted"}, nil
}

func newPaymentFixture(t *testing.T, providers ...ports.PaymentProvider) (*PaymentService, *stubPaymentRepo, *recordingRelay) {
	t.Helper()
	repo := newStubPaymentRepo()
	userRepo := newStubUserRepo()
	if _, err := userRepo.Create(context.Background(), &domain.User{ID: "user_1", Name: "John", Email: "john@example.com", Role: domain.RoleUser}); err != nil {
		t.Fatalf("fixture user: %v", err)
	}
	relay := &recordingRelay{}
	return NewPaymentService(repo, userRepo, providers, relay, zerolog.Nop()), repo, relay
}

func TestPaymentService_Initialize_Paystack(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "ps_ref_1"}
	svc, repo, _ := newPaymentFixture(t, provider)
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	result, err := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN", Description: "oil change",
	})
	if err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if result.Reference != "ps_ref_1" || result.RedirectURL == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored, _ := repo.FindByID(context.Background(), result.Payment.ID)
	if stored.Status != domain.PaymentPending {
		t.Fatalf("expected pending, got %s", stored.Status)
	}
	// Exactly one provider reference set is populated.
	if stored.PaystackReference != "ps_ref_1" || stored.PayPalOrderID != "" {
		t.Fatalf("correlation fields inconsistent: %+v", stored)
	}
	if stored.CorrelationID() != "ps_ref_1" {
		t.Fatalf("unexpected correlation id: %s", stored.CorrelationID())
	}
}

func TestPaymentService_Initialize_AmountValidation(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "r"}
	svc, _, _ := newPaymentFixture(t, provider)
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	if _, err := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 10, Currency: "XXX",
	}); !errors.Is(err, domain.ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}

	if _, err := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 50, Currency: "NGN",
	}); !errors.Is(err, domain.ErrAmountBelowMinimum) {
		t.Fatalf("expected ErrAmountBelowMinimum, got %v", err)
	}
	if provider.initCalls != 0 {
		t.Fatalf("provider must not be called on validation failure")
	}
}

func TestPaymentService_Initialize_DisabledProvider(t *testing.T) {
	svc, _, _ := newPaymentFixture(t) // no providers configured
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	if _, err := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN",
	}); !errors.Is(err, domain.ErrProviderDisabled) {
		t.Fatalf("expected ErrProviderDisabled, got %v", err)
	}
}

func TestPaymentService_Initialize_ProviderFailure(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, initErr: errors.New("gateway down")}
	svc, repo, _ := newPaymentFixture(t, provider)
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	_, err := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN",
	})
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	// The pending row remains without a reference; the provider failure does
	// not move it forward.
	payments, _ := repo.ListByUser(context.Background(), "user_1")
	if len(payments) != 1 || payments[0].Status != domain.PaymentPending || payments[0].PaystackReference != "" {
		t.Fatalf("unexpected payment state after provider failure: %+v", payments)
	}
}

func TestPaymentService_Verify_Completes(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "ps_ok", success: true}
	svc, repo, relay := newPaymentFixture(t, provider)
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	result, _ := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN",
	})

	payment, err := svc.Verify(context.Background(), actor, domain.MethodPaystack, result.Reference)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if payment.Status != domain.PaymentCompleted {
		t.Fatalf("expected completed, got %s", payment.Status)
	}
	if payment.CompletedAt == nil {
		t.Fatalf("completion timestamp not stamped")
	}

	stored, _ := repo.FindByID(context.Background(), payment.ID)
	if stored.Status != domain.PaymentCompleted {
		t.Fatalf("completed status not persisted: %s", stored.Status)
	}

	names := relay.names(ports.ChannelAdmin)
	if len(names) != 1 || names[0] != ports.EventPaymentNotification {
		t.Fatalf("expected payment-notification on admin channel, got %v", names)
	}
}

func TestPaymentService_Verify_TerminalIsSticky(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "ps_sticky", success: true}
	svc, repo, _ := newPaymentFixture(t, provider)
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	result, _ := svc.Initialize(context.Background(), actor, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN",
	})
	if _, err := svc.Verify(context.Background(), actor, domain.MethodPaystack, result.Reference); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}

	// A later verify carrying a failed provider status must not revert the
	// completed record.
	provider.success = false
	payment, err := svc.Verify(context.Background(), actor, domain.MethodPaystack, result.Reference)
	if err != nil {
		t.Fatalf("second verify returned error: %v", err)
	}
	if payment.Status != domain.PaymentCompleted {
		t.Fatalf("terminal state overwritten: %s", payment.Status)
	}
	stored, _ := repo.FindByID(context.Background(), payment.ID)
	if stored.Status != domain.PaymentCompleted {
		t.Fatalf("persisted state overwritten: %s", stored.Status)
	}
	// The provider is not consulted for a terminal record.
	if len(provider.verifyRefs) != 1 {
		t.Fatalf("provider verify called %d times, want 1", len(provider.verifyRefs))
	}
}

func TestPaymentService_Verify_OwnershipEnforced(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "ps_own", success: true}
	svc, _, _ := newPaymentFixture(t, provider)
	owner := domain.Actor{UserID: "user_1", Role: domain.RoleUser}
	stranger := domain.Actor{UserID: "user_2", Role: domain.RoleUser}

	result, _ := svc.Initialize(context.Background(), owner, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN",
	})

	if _, err := svc.Verify(context.Background(), stranger, domain.MethodPaystack, result.Reference); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPaymentService_Verify_ProviderFailureLeavesPending(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPayPal, reference: "pp_1", success: true}
	svc, repo, _ := newPaymentFixture(t, provider)
	actor := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	result, _ := svc.Initialize(context.Background(), actor, domain.MethodPayPal, ports.InitializePaymentInput{
		Amount: 20, Currency: "USD",
	})

	provider.verifyErr = errors.New("timeout")
	if _, err := svc.Verify(context.Background(), actor, domain.MethodPayPal, result.Reference); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), result.Payment.ID)
	if stored.Status != domain.PaymentPending {
		t.Fatalf("transport error must leave status untouched, got %s", stored.Status)
	}

	// Retry succeeds once the provider recovers.
	provider.verifyErr = nil
	payment, err := svc.Verify(context.Background(), actor, domain.MethodPayPal, result.Reference)
	if err != nil {
		t.Fatalf("retry verify failed: %v", err)
	}
	if payment.Status != domain.PaymentCompleted {
		t.Fatalf("expected completed after retry, got %s", payment.Status)
	}
}

func TestPaymentService_Refund(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "ps_refund", success: true}
	svc, _, _ := newPaymentFixture(t, provider)
	owner := domain.Actor{UserID: "user_1", Role: domain.RoleUser}
	admin := domain.Actor{UserID: "admin_1", Role: domain.RoleAdmin}

	result, _ := svc.Initialize(context.Background(), owner, domain.MethodPaystack, ports.InitializePaymentInput{
		Amount: 5000, Currency: "NGN",
	})

	// Refund requires a completed payment.
	if _, err := svc.Refund(context.Background(), admin, result.Payment.ID); !errors.Is(err, domain.ErrPaymentTerminal) {
		t.Fatalf("expected ErrPaymentTerminal for pending refund, got %v", err)
	}

	_, _ = svc.Verify(context.Background(), owner, domain.MethodPaystack, result.Reference)

	if _, err := svc.Refund(context.Background(), owner, result.Payment.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin refund, got %v", err)
	}

	payment, err := svc.Refund(context.Background(), admin, result.Payment.ID)
	if err != nil {
		t.Fatalf("Refund returned error: %v", err)
	}
	if payment.Status != domain.PaymentRefunded {
		t.Fatalf("expected refunded, got %s", payment.Status)
	}
}

func TestPaymentService_Config(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack}
	svc, _, _ := newPaymentFixture(t, provider)

	cfg := svc.Config(context.Background())
	if cfg.Currencies["NGN"] != 100 || cfg.Currencies["USD"] != 1 {
		t.Fatalf("unexpected currency minimums: %+v", cfg.Currencies)
	}
	if !cfg.Providers[string(domain.MethodPaystack)] {
		t.Fatalf("configured provider should be enabled")
	}
	if cfg.Providers[string(domain.MethodPayPal)] {
		t.Fatalf("unconfigured provider should be disabled")
	}
	if !cfg.Providers[string(domain.MethodManual)] {
		t.Fatalf("manual method is always enabled")
	}
}

func TestPaymentService_HistoryAndListAll(t *testing.T) {
	provider := &stubProvider{method: domain.MethodPaystack, reference: "ps_h"}
	svc, repo, _ := newPaymentFixture(t, provider)
	owner := domain.Actor{UserID: "user_1", Role: domain.RoleUser}
	admin := domain.Actor{UserID: "admin_1", Role: domain.RoleAdmin}

	_, _ = svc.Initialize(context.Background(), owner, domain.MethodPaystack, ports.InitializePaymentInput{Amount: 5000, Currency: "NGN"})
	_, _ = repo.Create(context.Background(), &domain.Payment{
		UserID: "user_2", Amount: 10, Currency: "USD", Method: domain.MethodManual,
		Status: domain.PaymentCompleted, CreatedAt: time.Now().UTC(),
	})

	mine, _ := svc.History(context.Background(), owner)
	if len(mine) != 1 || mine[0].UserID != "user_1" {
		t.Fatalf("history not scoped to caller: %+v", mine)
	}

	if _, err := svc.ListAll(context.Background(), owner); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin ListAll, got %v", err)
	}
	all, _ := svc.ListAll(context.Background(), admin)
	if len(all) != 2 {
		t.Fatalf("admin should see every payment, got %d", len(all))
	}
}
