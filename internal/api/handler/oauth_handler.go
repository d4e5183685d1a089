package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-platform/internal/infrastructure/oauth"
	"github.com/inkwell/blog-platform/pkg/logger"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// OAuthHandler drives the social sign-on flow. The provider callback never
// puts the bearer token in a redirect URL: the token is parked in the
// ticket store and the front end redeems the one-time ticket over HTTPS.
type OAuthHandler struct {
	auth        ports.AuthService
	tickets     *redis.TicketStore
	providers   map[domain.AuthType]oauth.Provider
	frontendURL string
}

func NewOAuthHandler(auth ports.AuthService, tickets *redis.TicketStore, frontendURL string, providers ...oauth.Provider) *OAuthHandler {
	byName := make(map[domain.AuthType]oauth.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &OAuthHandler{
		auth:        auth,
		tickets:     tickets,
		providers:   byName,
		frontendURL: frontendURL,
	}
}

// Start redirects the browser to the provider's authorization page with a
// fresh CSRF state value pinned in a short-lived cookie.
func (h *OAuthHandler) Start(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return err
	}

	state, err := randomState()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not start sign-on")
	}
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusTemporaryRedirect, provider.AuthURL(state))
}

// Callback completes the exchange. On success the browser lands on the
// front end with a one-time ticket; on any failure it lands on the failure
// page with no detail about what went wrong.
func (h *OAuthHandler) Callback(c echo.Context) error {
	log := logger.Get()

	provider, err := h.provider(c)
	if err != nil {
		return err
	}

	if !h.validState(c) {
		log.Warn().Str("provider", string(provider.Name())).Msg("social sign-on state mismatch")
		return h.redirectFailure(c)
	}

	code := c.QueryParam("code")
	if code == "" {
		return h.redirectFailure(c)
	}

	ctx := c.Request().Context()
	profile, err := provider.Exchange(ctx, code)
	if err != nil {
		log.Warn().Err(err).Str("provider", string(provider.Name())).Msg("social sign-on exchange failed")
		return h.redirectFailure(c)
	}

	token, err := h.auth.SocialLogin(ctx, profile)
	if err != nil {
		log.Error().Err(err).Str("provider", string(provider.Name())).Msg("social sign-on upsert failed")
		return h.redirectFailure(c)
	}

	ticket, err := h.tickets.Issue(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("issuing sign-on ticket failed")
		return h.redirectFailure(c)
	}

	return c.Redirect(http.StatusTemporaryRedirect,
		h.frontendURL+"/passport/success?ticket="+url.QueryEscape(ticket))
}

// Success redeems a one-time ticket for the bearer token. A second
// redemption of the same ticket fails.
func (h *OAuthHandler) Success(c echo.Context) error {
	ticket := c.QueryParam("ticket")
	if ticket == "" {
		return domain.ErrNotAuthenticated
	}

	token, err := h.tickets.Redeem(c.Request().Context(), ticket)
	if err != nil {
		if errors.Is(err, redis.ErrTicketNotFound) {
			return domain.ErrNotAuthenticated
		}
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Failure is the landing endpoint for any aborted or failed exchange.
func (h *OAuthHandler) Failure(c echo.Context) error {
	return echo.NewHTTPError(http.StatusUnauthorized, "social sign-on failed")
}

func (h *OAuthHandler) provider(c echo.Context) (oauth.Provider, error) {
	p, ok := h.providers[domain.AuthType(c.Param("provider"))]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	}
	return p, nil
}

func (h *OAuthHandler) validState(c echo.Context) bool {
	cookie, err := c.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == c.QueryParam("state")
}

func (h *OAuthHandler) redirectFailure(c echo.Context) error {
	return c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/passport/failure")
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
