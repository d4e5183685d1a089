package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// AdminHandler exposes the moderation surface: user and contact listings
// and role-and-status updates. Routes are gated by RBAC(admin, manager).
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Users lists accounts with search, filter and pagination. The options
// bundle arrives in the request body so the filter map survives intact.
//
// @Summary      List users for moderation
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      listOptionsRequest  true  "Listing options"
// @Success      200   {object}  ports.UserPage
// @Failure      401   {object}  errorResponse
// @Router       /v1/admin/users/search [post]
func (h *AdminHandler) Users(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req listOptionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	page, err := h.admin.Users(c.Request().Context(), user, req.toPorts())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Contacts lists contact messages with search, filter and pagination.
func (h *AdminHandler) Contacts(c echo.Context) error {
	var req listOptionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	page, err := h.admin.Contacts(c.Request().Context(), req.toPorts())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateUser mutates a target account. Role assignment only takes effect
// for manager callers; the service enforces that rule.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.admin.UpdateUser(c.Request().Context(), user, ports.UpdateUserInput{
		ID:       c.Param("id"),
		Username: req.Username,
		Email:    req.Email,
		IsActive: req.IsActive,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
