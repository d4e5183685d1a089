package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

// CategoryHandler exposes category reads and creation.
type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create adds a category. Any authenticated caller may create one; names
// are unique.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category name"
// @Success      201   {object}  domain.Category
// @Failure      409   {object}  errorResponse
// @Router       /v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.categories.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}
