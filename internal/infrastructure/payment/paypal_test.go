package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

// newPayPalTestServer serves the token endpoint plus the given order handler.
func newPayPalTestServer(t *testing.T, tokenCalls *int, orders http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenCalls != nil {
			*tokenCalls++
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client_id" || pass != "client_secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok_1", "expires_in": 3600})
	})
	mux.HandleFunc("/", orders)
	return httptest.NewServer(mux)
}

func TestPayPalProvider_Initialize(t *testing.T) {
	tokenCalls := 0
	srv := newPayPalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/checkout/orders" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok_1" {
			t.Fatalf("missing bearer token: %s", r.Header.Get("Authorization"))
		}

		var body paypalOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Intent != "CAPTURE" {
			t.Fatalf("expected CAPTURE intent, got %s", body.Intent)
		}
		// Major units are formatted with two decimals, never minor units.
		if body.PurchaseUnits[0].Amount.Value != "25.50" || body.PurchaseUnits[0].Amount.CurrencyCode != "USD" {
			t.Fatalf("unexpected amount: %+v", body.PurchaseUnits[0].Amount)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "ORDER123",
			"status": "CREATED",
			"links": []map[string]string{
				{"href": "https://api.sandbox.paypal.com/self", "rel": "self"},
				{"href": "https://www.sandbox.paypal.com/approve?token=ORDER123", "rel": "approve"},
			},
		})
	})
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{
		BaseURL: srv.URL, ClientID: "client_id", Secret: "client_secret",
	}, zerolog.Nop())

	result, err := p.Initialize(context.Background(), 25.5, "USD", "inspection", "")
	if err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if result.Reference != "ORDER123" {
		t.Fatalf("unexpected reference: %s", result.Reference)
	}
	if result.RedirectURL != "https://www.sandbox.paypal.com/approve?token=ORDER123" {
		t.Fatalf("approval link not selected: %s", result.RedirectURL)
	}
}

func TestPayPalProvider_TokenIsCached(t *testing.T) {
	tokenCalls := 0
	srv := newPayPalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "O1", "status": "CREATED",
			"links": []map[string]string{{"href": "https://x/approve", "rel": "approve"}},
		})
	})
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{BaseURL: srv.URL, ClientID: "client_id", Secret: "client_secret"}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := p.Initialize(context.Background(), 10, "USD", "", ""); err != nil {
			t.Fatalf("Initialize %d returned error: %v", i, err)
		}
	}
	if tokenCalls != 1 {
		t.Fatalf("expected a single token fetch, got %d", tokenCalls)
	}
}

func TestPayPalProvider_Verify(t *testing.T) {
	srv := newPayPalTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/checkout/orders/ORDER123/capture" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "ORDER123", "status": "COMPLETED"})
	})
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{BaseURL: srv.URL, ClientID: "client_id", Secret: "client_secret"}, zerolog.Nop())

	result, err := p.Verify(context.Background(), "ORDER123")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !result.Success || result.RawStatus != "COMPLETED" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPayPalProvider_Verify_NotCompleted(t *testing.T) {
	srv := newPayPalTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "ORDER123", "status": "DECLINED"})
	})
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{BaseURL: srv.URL, ClientID: "client_id", Secret: "client_secret"}, zerolog.Nop())

	result, err := p.Verify(context.Background(), "ORDER123")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if result.Success {
		t.Fatalf("only COMPLETED may verify as success, got %s", result.RawStatus)
	}
}

func TestPayPalProvider_TokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewPayPalProvider(PayPalConfig{BaseURL: srv.URL, ClientID: "bad", Secret: "bad"}, zerolog.Nop())

	if _, err := p.Initialize(context.Background(), 10, "USD", "", ""); err == nil {
		t.Fatalf("expected error when token fetch fails")
	}
}
