package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

const defaultHTTPTimeout = 15 * time.Second

// PaystackConfig carries the settings for the Paystack client.
type PaystackConfig struct {
	BaseURL     string // defaults to the live API host
	SecretKey   string
	CallbackURL string
}

// PaystackProvider implements ports.PaymentProvider against the Paystack
// transaction API. Amounts are converted to kobo/minor units at this boundary.
type PaystackProvider struct {
	baseURL     string
	secretKey   string
	callbackURL string
	client      *http.Client
	log         zerolog.Logger
}

func NewPaystackProvider(cfg PaystackConfig, log zerolog.Logger) *PaystackProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackProvider{
		baseURL:     baseURL,
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		client:      &http.Client{Timeout: defaultHTTPTimeout},
		log:         log,
	}
}

func (p *PaystackProvider) Method() domain.PaymentMethod {
	return domain.MethodPaystack
}

type paystackInitRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"` // minor units
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type paystackInitResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (p *PaystackProvider) Initialize(ctx context.Context, amount float64, currency, description, userEmail string) (*ports.InitializeResult, error) {
	body := paystackInitRequest{
		Email:       userEmail,
		Amount:      domain.ToMinorUnits(amount),
		Currency:    currency,
		CallbackURL: p.callbackURL,
	}

	var resp paystackInitResponse
	if err := p.do(ctx, http.MethodPost, "/transaction/initialize", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack initialize: %s", resp.Msg)
	}

	return &ports.InitializeResult{
		RedirectURL: resp.Data.AuthorizationURL,
		Reference:   resp.Data.Reference,
	}, nil
}

type paystackVerifyResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

func (p *PaystackProvider) Verify(ctx context.Context, reference string) (*ports.VerifyResult, error) {
	var resp paystackVerifyResponse
	if err := p.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack verify: %s", resp.Msg)
	}

	return &ports.VerifyResult{
		Success:   resp.Data.Status == "success",
		RawStatus: resp.Data.Status,
	}, nil
}

// do issues an authenticated JSON request. Provider error bodies are logged
// server-side only; callers receive a generic error.
func (p *PaystackProvider) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paystack request encode: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("paystack call: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		p.log.Error().Int("status", res.StatusCode).Str("path", path).Bytes("body", raw).Msg("paystack error response")
		return fmt.Errorf("paystack call: status %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("paystack response decode: %w", err)
	}
	return nil
}
