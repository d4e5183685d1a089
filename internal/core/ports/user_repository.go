package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail looks up a user by email scoped to one auth method.
	FindByEmail(ctx context.Context, email string, authType domain.AuthType) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByCode(ctx context.Context, code string) (*domain.User, error)
	FindByProviderID(ctx context.Context, providerID string) (*domain.User, error)
	// Update saves the whole document, last write wins.
	Update(ctx context.Context, user *domain.User) error
	// List applies keyword search (username, email), exact-match filter and
	// pagination, returning the page plus the total page count.
	List(ctx context.Context, opts ListOptions) ([]domain.User, int64, error)
}
