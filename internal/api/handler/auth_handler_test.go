package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/core/ports"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (string, error) {
	return "", domain.ErrUnauthenticated
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Email != "a@x.com" || in.Password != "p1" || in.Company != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "tok-1",
				User:  &domain.User{ID: "u-1", Email: in.Email, Company: in.Company, PasswordHash: "secret-digest"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, metrics.New(prometheus.NewRegistry()))

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register", `{"email":"a@x.com","password":"p1","company":"Acme"}`), rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "tok-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "u-1" || user["email"] != "a@x.com" || user["company"] != "Acme" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked || strings.Contains(rec.Body.String(), "secret-digest") {
		t.Fatalf("digest must never be serialised")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newEcho()
	called := false
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			called = true
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, nil)

	for _, body := range []string{`{"email":"a@x.com","password":"p1"}`, `{}`, ``} {
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/register", body), httptest.NewRecorder())
		if err := handler.Register(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %q: expected ErrValidation, got %v", body, err)
		}
	}
	if called {
		t.Fatalf("service must not be called")
	}
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{}, nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register", `{"email":`), httptest.NewRecorder())
	if err := handler.Register(c); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, nil)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register", `{"email":"a@x.com","password":"p","company":"c"}`), httptest.NewRecorder())
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email == "a@x.com" && password == "p1" {
				return &ports.AuthResult{Token: "tok-2", User: &domain.User{ID: "u-1", Email: email, Company: "Acme"}}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p1"}`), rec)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Token != "tok-2" || resp.User.ID != "u-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"nope"}`), httptest.NewRecorder())
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
