package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func rbacContext(user *domain.User) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserContextKey, user)
	}
	return c
}

func TestRBAC_AllowedRole(t *testing.T) {
	c := rbacContext(&domain.User{ID: "u1", Role: domain.RoleManager})

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleManager)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRBAC_DeniedRoleIsOpaque(t *testing.T) {
	c := rbacContext(&domain.User{ID: "u1", Role: domain.RoleUser})

	handler := RBAC(domain.RoleAdmin, domain.RoleManager)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// a wrong role reads exactly like a missing session
	if err := handler(c); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRBAC_MissingUser(t *testing.T) {
	c := rbacContext(nil)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
