package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// AdminService implements moderation: paginated/searchable user and
// contact listings and role-and-status updates on a target user.
type AdminService struct {
	users    ports.UserRepository
	contacts ports.ContactRepository
	logger   zerolog.Logger
}

func NewAdminService(users ports.UserRepository, contacts ports.ContactRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, contacts: contacts, logger: logger}
}

// Users lists accounts for moderation. Admin callers only ever see plain
// users: the restriction is injected into the filter server-side, widening
// whatever the client sent. The builder trusts filter contents as-is.
func (s *AdminService) Users(ctx context.Context, caller *domain.User, opts ports.ListOptions) (*ports.UserPage, error) {
	if caller.Role == domain.RoleAdmin {
		if opts.Filter == nil {
			opts.Filter = make(map[string]any, 1)
		}
		opts.Filter["role"] = string(domain.RoleUser)
	}

	users, count, err := s.users.List(ctx, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return &ports.UserPage{Users: users, Count: count}, nil
}

func (s *AdminService) Contacts(ctx context.Context, opts ports.ListOptions) (*ports.ContactPage, error) {
	contacts, count, err := s.contacts.List(ctx, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list contacts")
		return nil, err
	}
	return &ports.ContactPage{Contacts: contacts, Count: count}, nil
}

// UpdateUser mutates the target's username, active flag and, for manager
// callers only, the role. The admin role may administer users but never
// assign roles. Social accounts keep their provider-issued email.
func (s *AdminService) UpdateUser(ctx context.Context, caller *domain.User, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if err := domain.Validate(
		domain.Check{Failed: username == "", Field: domain.FieldUsername, Message: domain.MsgUsernameRequired},
		domain.Check{Failed: strings.Contains(username, " "), Field: domain.FieldUsername, Message: domain.MsgUsernameSpaces},
	); err != nil {
		return nil, err
	}

	user.Username = username
	user.IsActive = input.IsActive

	if caller.Role == domain.RoleManager && input.Role.Valid() {
		user.Role = input.Role
	}
	if !user.AuthType.Social() && strings.TrimSpace(input.Email) != "" {
		user.Email = strings.TrimSpace(input.Email)
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update user")
		return nil, err
	}
	return user, nil
}
