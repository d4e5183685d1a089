package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// AuthHandler exposes the identity surface: registration, activation,
// sessions and profile management.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new inactive account and emails its activation code.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  okResponse
// @Failure      400   {object}  validationResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, okResponse{OK: true})
}

// Activate flips the account active and consumes the one-time code.
//
// @Summary      Activate an account with a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      activateRequest  true  "Activation code"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  validationResponse
// @Router       /v1/auth/activate [post]
func (h *AuthHandler) Activate(c echo.Context) error {
	var req activateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.ActivateAccount(c.Request().Context(), req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Login verifies credentials and returns the freshly issued bearer token.
// Issuance invalidates every previous session for the account.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  validationResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// ForgotPassword regenerates the password and emails it to the account.
//
// @Summary      Request a regenerated password by email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  validationResponse
// @Router       /v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Logout clears the stored session token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  okResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateInfo changes username and, for email accounts, the email address.
func (h *AuthHandler) UpdateInfo(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.auth.UpdateInfo(c.Request().Context(), user.ID, req.Username, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdatePassword replaces the password after verifying the current one.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.UpdatePassword(c.Request().Context(), user.ID, req.Password, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// UploadProfilePic stores a new profile picture and schedules the
// previous one for deletion.
//
// @Summary      Upload a profile picture
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadProfilePicRequest  true  "Base64 image data"
// @Success      200   {object}  ports.UploadResult
// @Failure      401   {object}  errorResponse
// @Router       /v1/me/profile-pic [post]
func (h *AuthHandler) UploadProfilePic(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req uploadProfilePicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.UploadProfilePic(c.Request().Context(), user.ID, req.Image)
	if err != nil {
		return err
	}

	metrics.MediaUploadsTotal.WithLabelValues("profile_pic").Inc()
	return c.JSON(http.StatusOK, result)
}
