package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title         string
	Content       domain.Content
	Categories    []string
	BackgroundPic string
}

// PostPage is one page of post summaries plus the total page count.
type PostPage struct {
	Posts []domain.Post `json:"posts"`
	Count int64         `json:"count"`
}

// PostService covers post reads, writes and the media bookkeeping bound to
// them.
type PostService interface {
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Page(ctx context.Context, page int64) (*PostPage, error)
	// ByCategory resolves the category by name first; an unknown name is
	// domain.ErrCategoryNotFound, never an empty result.
	ByCategory(ctx context.Context, name string) ([]domain.Post, error)
	ByOwner(ctx context.Context, caller *domain.User, userID string) ([]domain.Post, error)
	Create(ctx context.Context, caller *domain.User, input PostInput) (*domain.Post, error)
	Update(ctx context.Context, caller *domain.User, id string, input PostInput) (*domain.Post, error)
	Delete(ctx context.Context, caller *domain.User, id string) error
	DeleteMany(ctx context.Context, caller *domain.User, ids []string) error
	// StageUpload uploads an asset and appends its URL to the caller's
	// staging buffer; the buffer is reconciled on the next post save.
	StageUpload(ctx context.Context, caller *domain.User, data string) (string, error)
}

// CategoryService covers category reads and creation.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
}

// ContactService covers contact-form intake.
type ContactService interface {
	Submit(ctx context.Context, name, email, content string) error
}

// UserPage is one page of users plus the total page count.
type UserPage struct {
	Users []domain.User `json:"users"`
	Count int64         `json:"count"`
}

// ContactPage is one page of contact messages plus the total page count.
type ContactPage struct {
	Contacts []domain.Contact `json:"contacts"`
	Count    int64            `json:"count"`
}

// UpdateUserInput is the moderation payload for a target user.
type UpdateUserInput struct {
	ID       string
	Username string
	Email    string
	IsActive bool
	Role     domain.Role
}

// AdminService covers moderation: listing users and contact messages and
// updating a target user's profile, status and role.
type AdminService interface {
	// Users lists accounts for moderation. Admin callers are restricted to
	// role=user server-side; managers see everyone.
	Users(ctx context.Context, caller *domain.User, opts ListOptions) (*UserPage, error)
	Contacts(ctx context.Context, opts ListOptions) (*ContactPage, error)
	// UpdateUser mutates the target. Only manager callers may change the
	// role field; email edits are ignored for social accounts.
	UpdateUser(ctx context.Context, caller *domain.User, input UpdateUserInput) (*domain.User, error)
}
