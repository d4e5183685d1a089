package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ctxUser extracts the user injected by the Auth middleware. Its presence
// proves the gate ran; a protected route without it is a wiring bug and
// collapses to the opaque failure like everything else.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}
