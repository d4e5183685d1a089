package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// UserContextKey is where Auth stores the authenticated *domain.User.
const UserContextKey = "user"

// Auth runs the authentication gate on every request: it extracts the
// bearer token, delegates verification to the auth service (signature,
// expiry, active flag, exact stored-token match) and injects the resolved
// user into the request context. Every miss surfaces as the same opaque
// failure.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				metrics.AuthFailuresTotal.Inc()
				return domain.ErrNotAuthenticated
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				metrics.AuthFailuresTotal.Inc()
				return domain.ErrNotAuthenticated
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. Both the
// "Bearer <token>" scheme and a raw token value are accepted; the web
// client historically sent the latter.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return header
}
