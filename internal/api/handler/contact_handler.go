package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

// ContactHandler exposes the public contact form.
type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit stores a contact message. No authentication required.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.contacts.Submit(c.Request().Context(), req.Name, req.Email, req.Content); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, okResponse{OK: true})
}
