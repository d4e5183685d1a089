package service

import (
	"context"
	"crypto/rand"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 64
	codeLength     = 8
)

// AuthService implements identity: registration, activation, sessions and
// profile management. One bearer token per user: every issuance overwrites
// the stored token, so logging in anywhere ends all other sessions.
type AuthService struct {
	users     ports.UserRepository
	media     ports.MediaStore
	cleaner   ports.MediaCleaner
	mailer    ports.Mailer
	broker    ports.Broker
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	media ports.MediaStore,
	cleaner ports.MediaCleaner,
	mailer ports.Mailer,
	broker ports.Broker,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		media:     media,
		cleaner:   cleaner,
		mailer:    mailer,
		broker:    broker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	emailExists, err := s.emailTaken(ctx, email, domain.AuthEmail)
	if err != nil {
		return nil, err
	}
	usernameExists, err := s.usernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := domain.Validate(
		domain.Check{Failed: username == "", Field: domain.FieldUsername, Message: domain.MsgUsernameRequired},
		domain.Check{Failed: strings.Contains(username, " "), Field: domain.FieldUsername, Message: domain.MsgUsernameSpaces},
		domain.Check{Failed: usernameExists, Field: domain.FieldUsername, Message: domain.MsgUsernameTaken},
		domain.Check{Failed: email == "", Field: domain.FieldEmail, Message: domain.MsgEmailRequired},
		domain.Check{Failed: email != "" && !validEmail(email), Field: domain.FieldEmail, Message: domain.MsgEmailInvalid},
		domain.Check{Failed: emailExists, Field: domain.FieldEmail, Message: domain.MsgEmailTaken},
		domain.Check{Failed: !validPasswordLen(input.Password), Field: domain.FieldPassword, Message: domain.MsgPasswordLength},
	); err != nil {
		s.logger.Error().Err(err).Msg("register validation failed")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		ProfilePic:   domain.DefaultProfilePic,
		Code:         generateCode(codeLength),
		Role:         domain.RoleUser,
		AuthType:     domain.AuthEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendActivationCode(ctx, created.Email, created.Code); err != nil {
		s.logger.Error().Err(err).Str("email", created.Email).Msg("failed to send activation code")
		return nil, err
	}

	s.publish(ctx, ports.TopicUserRegistered, map[string]any{
		"user_id":  created.ID,
		"username": created.Username,
	})

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) ActivateAccount(ctx context.Context, code string) error {
	user, err := s.users.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if err := domain.Validate(
		domain.Check{Failed: user == nil || code == "", Field: domain.FieldCode, Message: domain.MsgCodeNotExist},
	); err != nil {
		return err
	}

	user.IsActive = true
	user.Code = ""
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email, domain.AuthEmail)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	matched := false
	if user != nil {
		matched = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}

	if err := domain.Validate(
		domain.Check{Failed: user == nil, Field: domain.FieldEmail, Message: domain.MsgEmailNotFound},
		domain.Check{Failed: user != nil && !user.IsActive, Field: domain.FieldEmail, Message: domain.MsgEmailNotActive},
		domain.Check{Failed: !matched, Field: domain.FieldPassword, Message: domain.MsgPasswordNoMatch},
	); err != nil {
		s.logger.Error().Err(err).Msg("login failed")
		return "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email, domain.AuthEmail)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if err := domain.Validate(
		domain.Check{Failed: user == nil, Field: domain.FieldEmail, Message: domain.MsgEmailNotFound},
	); err != nil {
		return err
	}

	newPassword := generateCode(codeLength)
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.mailer.SendNewPassword(ctx, user.Email, newPassword)
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.ErrNotAuthenticated
	}
	user.Token = ""
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// Authenticate is the gate for every protected operation. It verifies the
// HS256 signature and expiry, resolves the user, and requires the account
// to be active with a stored token exactly matching the presented one.
// Any miss yields the same opaque error so account state never leaks.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrNotAuthenticated
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil || user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !user.IsActive {
		return nil, domain.ErrNotAuthenticated
	}
	if user.Token != token {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

func (s *AuthService) SocialLogin(ctx context.Context, profile ports.SocialProfile) (string, error) {
	user, err := s.findSocialUser(ctx, profile)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	if user == nil {
		now := time.Now().UTC()
		user, err = s.users.Create(ctx, &domain.User{
			Username:   profile.Username,
			Email:      profile.Email,
			ProfilePic: domain.DefaultProfilePic,
			IsActive:   true,
			Role:       domain.RoleUser,
			AuthType:   profile.Provider,
			ProviderID: profile.ProviderID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return "", err
		}
		s.logger.Info().
			Str("user_id", user.ID).
			Str("provider", string(profile.Provider)).
			Msg("social account created")
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) findSocialUser(ctx context.Context, profile ports.SocialProfile) (*domain.User, error) {
	if profile.Provider == domain.AuthGitHub {
		return s.users.FindByProviderID(ctx, profile.ProviderID)
	}
	return s.users.FindByEmail(ctx, profile.Email, profile.Provider)
}

func (s *AuthService) UpdateInfo(ctx context.Context, userID, username, email string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	emailTaken := false
	if email != user.Email {
		emailTaken, err = s.emailTaken(ctx, email, user.AuthType)
		if err != nil {
			return nil, err
		}
	}
	usernameTaken := false
	if username != user.Username {
		usernameTaken, err = s.usernameTaken(ctx, username)
		if err != nil {
			return nil, err
		}
	}

	if err := domain.Validate(
		domain.Check{Failed: username == "", Field: domain.FieldUsername, Message: domain.MsgUsernameRequired},
		domain.Check{Failed: usernameTaken, Field: domain.FieldUsername, Message: domain.MsgUsernameTaken},
		domain.Check{Failed: email == "", Field: domain.FieldEmail, Message: domain.MsgEmailRequired},
		domain.Check{Failed: email != "" && !validEmail(email), Field: domain.FieldEmail, Message: domain.MsgEmailInvalid},
		domain.Check{Failed: emailTaken, Field: domain.FieldEmail, Message: domain.MsgEmailTaken},
	); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("update info validation failed")
		return nil, err
	}

	user.Username = username
	if !user.AuthType.Social() {
		user.Email = email
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, password, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	matched := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil

	if err := domain.Validate(
		domain.Check{Failed: !matched, Field: domain.FieldPassword, Message: domain.MsgPasswordNoMatch},
		domain.Check{Failed: !validPasswordLen(newPassword), Field: domain.FieldNewPassword, Message: domain.MsgPasswordLength},
	); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *AuthService) UploadProfilePic(ctx context.Context, userID, image string) (ports.UploadResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ports.UploadResult{}, err
	}

	result, err := s.media.Upload(ctx, image, user.ID)
	if err != nil {
		return ports.UploadResult{}, err
	}

	// Previous picture becomes unreachable once the document is saved;
	// best-effort delete, never blocking the response.
	if user.ProfilePic != domain.DefaultProfilePic && s.media.Hosted(user.ProfilePic) {
		s.cleaner.Enqueue(user.ProfilePic)
	}

	user.ProfilePic = result.URL
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return ports.UploadResult{}, err
	}

	s.publish(ctx, ports.TopicProfilePicUploaded, map[string]any{
		"user_id": user.ID,
		"image":   user.ProfilePic,
	})

	return result, nil
}

func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid": user.ID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	user.Token = token
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) emailTaken(ctx context.Context, email string, authType domain.AuthType) (bool, error) {
	existing, err := s.users.FindByEmail(ctx, email, authType)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing != nil, nil
}

func (s *AuthService) usernameTaken(ctx context.Context, username string) (bool, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing != nil, nil
}

func (s *AuthService) publish(ctx context.Context, topic string, payload any) {
	if err := s.broker.Publish(ctx, topic, payload); err != nil {
		s.logger.Error().Err(err).Str("topic", topic).Msg("publish failed")
	}
}

func validPasswordLen(password string) bool {
	n := len(strings.TrimSpace(password))
	return n >= minPasswordLen && n <= maxPasswordLen
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// generateCode returns a short random value used as a one-time activation
// code or a regenerated password.
func generateCode(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		seed := time.Now().UnixNano()
		for i := range b {
			b[i] = byte(seed >> (8 * (i % 8)))
		}
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
