package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// PayPalConfig carries the settings for the PayPal client.
type PayPalConfig struct {
	BaseURL   string // defaults to the sandbox host
	ClientID  string
	Secret    string
	ReturnURL string
	CancelURL string
}

// PayPalProvider implements ports.PaymentProvider against the PayPal Orders
// v2 API. An OAuth2 client-credentials token is cached until shortly before
// expiry.
type PayPalProvider struct {
	baseURL   string
	clientID  string
	secret    string
	returnURL string
	cancelURL string
	client    *http.Client
	log       zerolog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPayPalProvider(cfg PayPalConfig, log zerolog.Logger) *PayPalProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api-m.sandbox.paypal.com"
	}
	return &PayPalProvider{
		baseURL:   baseURL,
		clientID:  cfg.ClientID,
		secret:    cfg.Secret,
		returnURL: cfg.ReturnURL,
		cancelURL: cfg.CancelURL,
		client:    &http.Client{Timeout: defaultHTTPTimeout},
		log:       log,
	}
}

func (p *PayPalProvider) Method() domain.PaymentMethod {
	return domain.MethodPayPal
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalOrderRequest struct {
	Intent        string `json:"intent"`
	PurchaseUnits []struct {
		Amount      paypalAmount `json:"amount"`
		Description string       `json:"description,omitempty"`
	} `json:"purchase_units"`
	ApplicationContext struct {
		ReturnURL string `json:"return_url,omitempty"`
		CancelURL string `json:"cancel_url,omitempty"`
	} `json:"application_context"`
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

func (p *PayPalProvider) Initialize(ctx context.Context, amount float64, currency, description, _ string) (*ports.InitializeResult, error) {
	var body paypalOrderRequest
	body.Intent = "CAPTURE"
	body.PurchaseUnits = make([]struct {
		Amount      paypalAmount `json:"amount"`
		Description string       `json:"description,omitempty"`
	}, 1)
	body.PurchaseUnits[0].Amount = paypalAmount{
		CurrencyCode: currency,
		Value:        fmt.Sprintf("%.2f", amount),
	}
	body.PurchaseUnits[0].Description = description
	body.ApplicationContext.ReturnURL = p.returnURL
	body.ApplicationContext.CancelURL = p.cancelURL

	var resp paypalOrderResponse
	if err := p.do(ctx, http.MethodPost, "/v2/checkout/orders", body, &resp); err != nil {
		return nil, err
	}

	approvalURL := ""
	for _, link := range resp.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}
	if resp.ID == "" || approvalURL == "" {
		return nil, fmt.Errorf("paypal create order: missing order id or approval link")
	}

	return &ports.InitializeResult{
		RedirectURL: approvalURL,
		Reference:   resp.ID,
	}, nil
}

// Verify captures the approved order; COMPLETED is the only success status.
func (p *PayPalProvider) Verify(ctx context.Context, reference string) (*ports.VerifyResult, error) {
	var resp paypalOrderResponse
	path := "/v2/checkout/orders/" + reference + "/capture"
	if err := p.do(ctx, http.MethodPost, path, struct{}{}, &resp); err != nil {
		return nil, err
	}

	return &ports.VerifyResult{
		Success:   resp.Status == "COMPLETED",
		RawStatus: resp.Status,
	}, nil
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached access token, refreshing it when expired.
func (p *PayPalProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("paypal token request: %w", err)
	}
	req.SetBasicAuth(p.clientID, p.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token call: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		p.log.Error().Int("status", res.StatusCode).Bytes("body", raw).Msg("paypal token error response")
		return "", fmt.Errorf("paypal token call: status %d", res.StatusCode)
	}

	var tr paypalTokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("paypal token decode: %w", err)
	}

	p.accessToken = tr.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn-60) * time.Second)
	return p.accessToken, nil
}

func (p *PayPalProvider) do(ctx context.Context, method, path string, body, out any) error {
	token, err := p.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paypal request encode: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paypal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("paypal call: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		p.log.Error().Int("status", res.StatusCode).Str("path", path).Bytes("body", raw).Msg("paypal error response")
		return fmt.Errorf("paypal call: status %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("paypal response decode: %w", err)
	}
	return nil
}
