package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

type stubAuthenticator struct {
	tokens map[string]string
	err    error
	got    string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	s.got = token
	if s.err != nil {
		return "", s.err
	}
	uid, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return uid, nil
}

func runAuth(t *testing.T, authn *stubAuthenticator, header string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth(authn)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authn := &stubAuthenticator{tokens: map[string]string{"tok-1": "u-1"}}

	c, called, err := runAuth(t, authn, "Bearer tok-1")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if UserID(c) != "u-1" {
		t.Fatalf("user id = %q, want u-1", UserID(c))
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	authn := &stubAuthenticator{tokens: map[string]string{"tok-1": "u-1"}}

	if _, called, err := runAuth(t, authn, "bearer tok-1"); err != nil || !called {
		t.Fatalf("called = %v, err = %v", called, err)
	}
	if authn.got != "tok-1" {
		t.Fatalf("token passed = %q", authn.got)
	}
}

func TestAuthMiddleware_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "tok-1"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &stubAuthenticator{tokens: map[string]string{"tok-1": "u-1"}}
			c, called, err := runAuth(t, authn, tt.header)
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
			if called {
				t.Fatalf("next must not be called")
			}
			if UserID(c) != "" {
				t.Fatalf("user id must not be set")
			}
		})
	}
}

func TestAuthMiddleware_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	_, called, err := runAuth(t, &stubAuthenticator{err: boom}, "Bearer tok-1")
	if !errors.Is(err, boom) || called {
		t.Fatalf("called = %v, err = %v", called, err)
	}
}

func TestCORS(t *testing.T) {
	e := echo.New()
	e.Pre(CORS())
	e.GET("/api/invoices", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodOptions, "/api/invoices", http.StatusOK},
		{http.MethodOptions, "/anything/at/all", http.StatusOK},
		{http.MethodGet, "/api/invoices", http.StatusTeapot},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
		if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
			t.Errorf("%s %s: allow-origin = %q", tt.method, tt.path, got)
		}
		if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); got != corsAllowMethods {
			t.Errorf("%s %s: allow-methods = %q", tt.method, tt.path, got)
		}
		if got := rec.Header().Get(echo.HeaderAccessControlAllowHeaders); got != corsAllowHeaders {
			t.Errorf("%s %s: allow-headers = %q", tt.method, tt.path, got)
		}
		if tt.method == http.MethodOptions && rec.Body.Len() != 0 {
			t.Errorf("preflight body must be empty, got %q", rec.Body.String())
		}
	}
}
