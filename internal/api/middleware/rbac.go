package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// RBAC permits the call only when the authenticated user's role is in the
// allow-list. There is no role hierarchy; each route group names its
// allowed roles explicitly. A miss raises the same opaque failure as the
// authentication gate, so callers cannot distinguish "no session" from
// "wrong role".
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserContextKey).(*domain.User)
			if user == nil {
				return domain.ErrNotAuthenticated
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}
