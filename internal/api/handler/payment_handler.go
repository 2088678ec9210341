package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/api/metrics"
	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// PaymentHandler handles the checkout and payment-history endpoints.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type initializePaymentRequest struct {
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Currency    string  `json:"currency"    validate:"required,oneof=NGN USD GHS ZAR KES"`
	Description string  `json:"description"`
}

type verifyPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type checkoutData struct {
	Payment     *domain.Payment `json:"payment"`
	RedirectURL string          `json:"redirect_url"`
	Reference   string          `json:"reference"`
}

// Config handles GET /v1/payments/config — supported currencies, minimum
// charges, and which providers are enabled.
func (h *PaymentHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, OK(h.service.Config(c.Request().Context())))
}

// InitializePaystack handles POST /v1/payments/paystack/initialize.
//
// @Summary      Open a Paystack checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      initializePaymentRequest  true  "Checkout details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      502   {object}  envelope
// @Router       /v1/payments/paystack/initialize [post]
func (h *PaymentHandler) InitializePaystack(c echo.Context) error {
	return h.initialize(c, domain.MethodPaystack)
}

// VerifyPaystack handles POST /v1/payments/paystack/verify.
func (h *PaymentHandler) VerifyPaystack(c echo.Context) error {
	return h.verify(c, domain.MethodPaystack)
}

// CreatePayPalOrder handles POST /v1/payments/paypal/create-order.
func (h *PaymentHandler) CreatePayPalOrder(c echo.Context) error {
	return h.initialize(c, domain.MethodPayPal)
}

// CapturePayPalOrder handles POST /v1/payments/paypal/capture.
func (h *PaymentHandler) CapturePayPalOrder(c echo.Context) error {
	return h.verify(c, domain.MethodPayPal)
}

func (h *PaymentHandler) initialize(c echo.Context, method domain.PaymentMethod) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req initializePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Initialize(c.Request().Context(), actor, method, ports.InitializePaymentInput{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProviderUnavailable) {
			metrics.ProviderErrorsTotal.WithLabelValues(string(method)).Inc()
		}
		return err
	}

	metrics.PaymentsInitializedTotal.WithLabelValues(string(method), req.Currency).Inc()
	return c.JSON(http.StatusCreated, OK(checkoutData{
		Payment:     result.Payment,
		RedirectURL: result.RedirectURL,
		Reference:   result.Reference,
	}))
}

func (h *PaymentHandler) verify(c echo.Context, method domain.PaymentMethod) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.service.Verify(c.Request().Context(), actor, method, req.Reference)
	if err != nil {
		if errors.Is(err, domain.ErrProviderUnavailable) {
			metrics.ProviderErrorsTotal.WithLabelValues(string(method)).Inc()
		}
		return err
	}

	metrics.PaymentsVerifiedTotal.WithLabelValues(string(method), string(payment.Status)).Inc()
	return c.JSON(http.StatusOK, OK(payment))
}

// History handles GET /v1/payments — the caller's payment history.
func (h *PaymentHandler) History(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payments, err := h.service.History(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(payments))
}

// ListAll handles GET /v1/payments/all — admin only.
func (h *PaymentHandler) ListAll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payments, err := h.service.ListAll(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(payments))
}

// Refund handles POST /v1/payments/:id/refund — admin only.
func (h *PaymentHandler) Refund(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payment, err := h.service.Refund(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(payment))
}
