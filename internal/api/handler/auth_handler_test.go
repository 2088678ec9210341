package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/api"
	"github.com/autocarepro/autocare-api/internal/api/handler"
	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
	updateFn   func(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, userID, in)
}

func (s *stubAuthService) VerifyToken(token string) (domain.Actor, error) {
	return domain.Actor{}, domain.ErrInvalidCredentials
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "john@example.com" || in.Name != "John" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "user_1", Name: in.Name, Email: in.Email, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register",
		`{"name":"John","email":"john@example.com","password":"password123"}`, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success envelope")
	}
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	if user["email"] != "john@example.com" || user["role"] != "user" {
		t.Fatalf("unexpected user: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register",
		`{"name":"John","email":"john@example.com","password":"password123"}`, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if decodeEnvelope(t, rec)["success"] != false {
		t.Fatalf("expected failure envelope")
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register",
		`{"name":"J","email":"not-an-email","password":"short"}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	fields, ok := body["errors"].([]any)
	if !ok || len(fields) != 3 {
		t.Fatalf("expected three field errors, got %v", body["errors"])
	}
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register", `{"name":`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "john@example.com" || password != "password123" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed.jwt.token", &domain.User{ID: "user_1", Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"john@example.com","password":"password123"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["token"] != "signed.jwt.token" {
		t.Fatalf("token missing from response: %v", data)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"john@example.com","password":"wrong"}`, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserNotFound
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"password123"}`, nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "user_1", Name: "John", Email: "john@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Me, http.MethodGet, "/v1/auth/me", "", func(c echo.Context) {
		c.Set("user_id", "user_1")
		c.Set("role", "user")
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["name"] != "John" {
		t.Fatalf("unexpected profile: %v", data)
	}
}

func TestAuthHandler_UpdateMe(t *testing.T) {
	svc := &stubAuthService{
		updateFn: func(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
			if in.Name != "Johnny" || in.Phone != "+2348012345678" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: userID, Name: in.Name, Phone: in.Phone, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.UpdateMe, http.MethodPut, "/v1/auth/me",
		`{"name":"Johnny","phone":"+2348012345678"}`, func(c echo.Context) {
			c.Set("user_id", "user_1")
			c.Set("role", "user")
		})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
