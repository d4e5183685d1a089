package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

// PostHandler exposes post reads and writes.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Get returns one post with its full content and resolved references.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// List returns every post as a summary, newest first.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Page returns one page of summaries plus the total page count.
//
// @Summary      Get a page of posts
// @Tags         posts
// @Produce      json
// @Param        page  path      int  true  "Page number, 1-based"
// @Success      200   {object}  ports.PostPage
// @Router       /v1/posts/page/{page} [get]
func (h *PostHandler) Page(c echo.Context) error {
	page, err := strconv.ParseInt(c.Param("page"), 10, 64)
	if err != nil || page < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}

	result, err := h.posts.Page(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ByCategory returns the posts labelled with the named category. An
// unknown name is a 404, not an empty list.
func (h *PostHandler) ByCategory(c echo.Context) error {
	posts, err := h.posts.ByCategory(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Mine returns the authenticated caller's own posts.
func (h *PostHandler) Mine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.ByOwner(c.Request().Context(), user, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Create publishes a new post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post fields"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  validationResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.posts.Create(c.Request().Context(), user, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: post.ID})
}

// Update rewrites a post the caller owns; media dropped from the content
// is scheduled for deletion.
func (h *PostHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.posts.Update(c.Request().Context(), user, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post the caller owns along with its hosted media.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  okResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// DeleteMany removes a batch of the caller's posts.
func (h *PostHandler) DeleteMany(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req deletePostsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.posts.DeleteMany(c.Request().Context(), user, req.IDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
