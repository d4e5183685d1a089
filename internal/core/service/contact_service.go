package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// ContactService implements contact-form intake. Messages are stored with
// replied=false and never mutated by this service.
type ContactService struct {
	contacts ports.ContactRepository
	logger   zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, name, email, content string) error {
	email = strings.TrimSpace(email)

	if err := domain.Validate(
		domain.Check{Failed: email == "", Field: domain.FieldEmail, Message: domain.MsgEmailRequired},
		domain.Check{Failed: email != "" && !validEmail(email), Field: domain.FieldEmail, Message: domain.MsgEmailInvalid},
		domain.Check{Failed: strings.TrimSpace(content) == "", Field: domain.FieldContent, Message: "Content is required"},
	); err != nil {
		s.logger.Error().Err(err).Msg("contact validation failed")
		return err
	}

	now := time.Now().UTC()
	_, err := s.contacts.Create(ctx, &domain.Contact{
		Name:      strings.TrimSpace(name),
		Email:     email,
		Content:   content,
		Replied:   false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
