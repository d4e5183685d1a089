package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// CategoryService implements category reads and creation. Any
// authenticated caller may create one; categories are never updated or
// deleted.
type CategoryService struct {
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := domain.Validate(
		domain.Check{Failed: name == "", Field: domain.FieldName, Message: "Name is required"},
	); err != nil {
		return nil, err
	}

	existing, err := s.categories.FindByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCategoryExists
	}

	now := time.Now().UTC()
	category, err := s.categories.Create(ctx, &domain.Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create category")
		return nil, err
	}
	return category, nil
}
