package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// stubGate authenticates exactly one token.
type stubGate struct {
	token string
	user  *domain.User
}

func (s *stubGate) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if s.user != nil && token == s.token {
		return s.user, nil
	}
	return nil, domain.ErrNotAuthenticated
}

func (s *stubGate) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, nil
}
func (s *stubGate) ActivateAccount(context.Context, string) error        { return nil }
func (s *stubGate) Login(context.Context, string, string) (string, error) { return "", nil }
func (s *stubGate) ForgotPassword(context.Context, string) error         { return nil }
func (s *stubGate) Logout(context.Context, string) error                 { return nil }
func (s *stubGate) SocialLogin(context.Context, ports.SocialProfile) (string, error) {
	return "", nil
}
func (s *stubGate) UpdateInfo(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubGate) UpdatePassword(context.Context, string, string, string) error { return nil }
func (s *stubGate) UploadProfilePic(context.Context, string, string) (ports.UploadResult, error) {
	return ports.UploadResult{}, nil
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	gate := &stubGate{token: "good-token", user: &domain.User{ID: "u1", Username: "alice"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(gate)(func(c echo.Context) error {
		called = true
		user, _ := c.Get(UserContextKey).(*domain.User)
		if user == nil || user.ID != "u1" {
			t.Fatalf("user not injected: %v", c.Get(UserContextKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_RawTokenHeader(t *testing.T) {
	e := echo.New()
	gate := &stubGate{token: "good-token", user: &domain.User{ID: "u1"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("raw header must be accepted: %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	gate := &stubGate{token: "good-token", user: &domain.User{ID: "u1"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	e := echo.New()
	gate := &stubGate{token: "good-token", user: &domain.User{ID: "u1"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
