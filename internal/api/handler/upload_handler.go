package handler

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// maxUploadBytes caps in-editor image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler serves the editor's image endpoints: multipart file
// uploads and fetch-by-URL. Uploaded assets land in the caller's staging
// buffer until the next post save reconciles them.
type UploadHandler struct {
	posts ports.PostService
}

func NewUploadHandler(posts ports.PostService) *UploadHandler {
	return &UploadHandler{posts: posts}
}

// File accepts a multipart upload under the "image" field, stores it and
// returns the hosted URL in the shape the editor expects.
//
// @Summary      Upload an editor image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  uploadedResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/upload-file [post]
func (h *UploadHandler) File(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image file")
	}
	if header.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(raw)
	}
	data := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)

	url, err := h.posts.StageUpload(c.Request().Context(), user, data)
	if err != nil {
		return err
	}
	metrics.MediaUploadsTotal.WithLabelValues("staged").Inc()
	return c.JSON(http.StatusOK, uploadedResponse{URL: url})
}

// FetchURL handles the editor's fetch-by-URL flow. The remote asset stays
// where it is; the URL is validated and echoed back unchanged, so only
// assets uploaded through File are subject to cleanup.
func (h *UploadHandler) FetchURL(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	var req fetchURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}
	return c.JSON(http.StatusOK, uploadedResponse{URL: req.URL})
}
