package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// RegisterInput is the payload for email/password registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// SocialProfile is the normalized identity returned by an external
// provider after a completed OAuth exchange.
type SocialProfile struct {
	Provider   domain.AuthType
	ProviderID string
	Email      string
	Username   string
}

// AuthService covers identity: registration, activation, sessions,
// profile management and the authentication gate.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	ActivateAccount(ctx context.Context, code string) error
	// Login verifies credentials and returns a freshly issued bearer token.
	// The token is stored on the user document and becomes the single valid
	// session credential, invalidating every previous session.
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context, userID string) error
	// Authenticate is the gate: signature, expiry, user lookup, active flag
	// and exact stored-token match. Every failure collapses to
	// domain.ErrNotAuthenticated.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// SocialLogin upserts the account for a completed provider exchange and
	// returns a freshly issued bearer token.
	SocialLogin(ctx context.Context, profile SocialProfile) (string, error)
	UpdateInfo(ctx context.Context, userID, username, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, password, newPassword string) error
	// UploadProfilePic stores the new image, destroys the previous
	// non-default one, and publishes the profile_pic.uploaded event.
	UploadProfilePic(ctx context.Context, userID, image string) (UploadResult, error)
}
