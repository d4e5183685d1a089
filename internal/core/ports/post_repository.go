package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// PostRepository defines persistence for posts. Read methods resolve the
// author and category references into their projections.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindAll returns summary projections of every post, newest first.
	FindAll(ctx context.Context) ([]domain.Post, error)
	// FindPage returns one page of summaries, newest first, plus the total
	// number of posts (counted before pagination).
	FindPage(ctx context.Context, pagination Pagination) ([]domain.Post, int64, error)
	FindByCategory(ctx context.Context, categoryID string) ([]domain.Post, error)
	FindByOwner(ctx context.Context, userID string) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, ids ...string) error
}

// CategoryRepository defines persistence for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
}

// ContactRepository defines persistence for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	// List applies keyword search (name, email), filter and pagination,
	// returning the page plus the total page count.
	List(ctx context.Context, opts ListOptions) ([]domain.Contact, int64, error)
}
