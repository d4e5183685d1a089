package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// PostService implements post CRUD and the media bookkeeping bound to it.
// The invariant it maintains: post.Images always mirrors the image URLs in
// post.Content, and any hosted asset that falls out of a saved revision
// (or never made it in from the author's staging buffer) is handed to the
// cleanup queue.
type PostService struct {
	posts      ports.PostRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	media      ports.MediaStore
	cleaner    ports.MediaCleaner
	broker     ports.Broker
	logger     zerolog.Logger
}

func NewPostService(
	posts ports.PostRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	media ports.MediaStore,
	cleaner ports.MediaCleaner,
	broker ports.Broker,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		posts:      posts,
		categories: categories,
		users:      users,
		media:      media,
		cleaner:    cleaner,
		broker:     broker,
		logger:     logger,
	}
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.FindAll(ctx)
}

func (s *PostService) Page(ctx context.Context, page int64) (*ports.PostPage, error) {
	pagination := ports.Pagination{Page: page, PerPage: ports.DefaultPerPage}
	posts, total, err := s.posts.FindPage(ctx, pagination)
	if err != nil {
		return nil, err
	}
	return &ports.PostPage{
		Posts: posts,
		Count: ports.PageCount(total, pagination),
	}, nil
}

func (s *PostService) ByCategory(ctx context.Context, name string) ([]domain.Post, error) {
	category, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.posts.FindByCategory(ctx, category.ID)
}

func (s *PostService) ByOwner(ctx context.Context, caller *domain.User, userID string) ([]domain.Post, error) {
	if caller.ID != userID {
		return nil, domain.ErrForbidden
	}
	return s.posts.FindByOwner(ctx, userID)
}

func (s *PostService) Create(ctx context.Context, caller *domain.User, input ports.PostInput) (*domain.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	background := domain.DefaultBackgroundPic
	if isInlineUpload(input.BackgroundPic) {
		result, err := s.media.Upload(ctx, input.BackgroundPic, caller.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("background upload failed")
			return nil, err
		}
		metrics.MediaUploadsTotal.WithLabelValues("background").Inc()
		background = result.URL
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:         strings.TrimSpace(input.Title),
		Content:       input.Content,
		BackgroundPic: background,
		CreatedBy:     caller.ID,
		Categories:    input.Categories,
		Images:        input.Content.ImageURLs(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	s.reconcileStagingBuffer(ctx, caller.ID, created.Images)

	if err := s.broker.Publish(ctx, ports.TopicPostCreated, map[string]any{
		"post_id": created.ID,
		"title":   created.Title,
		"author":  caller.Username,
	}); err != nil {
		s.logger.Error().Err(err).Str("topic", ports.TopicPostCreated).Msg("publish failed")
	}

	s.logger.Info().Str("post_id", created.ID).Str("user_id", caller.ID).Msg("post created")
	return created, nil
}

func (s *PostService) Update(ctx context.Context, caller *domain.User, id string, input ports.PostInput) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.CreatedBy != caller.ID {
		return nil, domain.ErrForbidden
	}
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	newImages := input.Content.ImageURLs()

	// URLs referenced by the previous revision but dropped from the new
	// content are dead once the save lands.
	for _, url := range diffURLs(post.Images, newImages) {
		if s.media.Hosted(url) {
			s.cleaner.Enqueue(url)
		}
	}

	background, err := s.replaceBackground(ctx, caller.ID, post.BackgroundPic, input.BackgroundPic)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Content = input.Content
	post.Categories = input.Categories
	post.Images = newImages
	post.BackgroundPic = background
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("post_id", id).Msg("failed to update post")
		return nil, err
	}

	s.reconcileStagingBuffer(ctx, caller.ID, newImages)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, caller *domain.User, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.CreatedBy != caller.ID {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.enqueuePostMedia(post)

	s.logger.Info().Str("post_id", id).Str("user_id", caller.ID).Msg("post deleted")
	return nil
}

func (s *PostService) DeleteMany(ctx context.Context, caller *domain.User, ids []string) error {
	owned := make([]string, 0, len(ids))
	posts := make([]*domain.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if post.CreatedBy != caller.ID {
			return domain.ErrForbidden
		}
		owned = append(owned, id)
		posts = append(posts, post)
	}

	if err := s.posts.Delete(ctx, owned...); err != nil {
		return err
	}
	for _, post := range posts {
		s.enqueuePostMedia(post)
	}
	return nil
}

func (s *PostService) StageUpload(ctx context.Context, caller *domain.User, data string) (string, error) {
	result, err := s.media.Upload(ctx, data, caller.ID)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return "", err
	}
	user.Images = append(user.Images, result.URL)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return result.URL, nil
}

// reconcileStagingBuffer clears the author's uploaded-but-unattached list.
// Staged URLs absent from the saved content never became reachable and are
// destroyed best-effort.
func (s *PostService) reconcileStagingBuffer(ctx context.Context, userID string, kept []string) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("staging reconcile: user lookup failed")
		return
	}
	if len(user.Images) == 0 {
		return
	}

	for _, url := range diffURLs(user.Images, kept) {
		if s.media.Hosted(url) {
			s.cleaner.Enqueue(url)
		}
	}

	user.Images = nil
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("staging reconcile: save failed")
	}
}

// replaceBackground resolves the post's new background picture. An inline
// data URI is uploaded and replaces the previous asset; the default
// placeholder resets it; anything else (the currently hosted URL echoed
// back) is kept as-is.
func (s *PostService) replaceBackground(ctx context.Context, folder, current, incoming string) (string, error) {
	switch {
	case isInlineUpload(incoming):
		result, err := s.media.Upload(ctx, incoming, folder)
		if err != nil {
			return "", err
		}
		metrics.MediaUploadsTotal.WithLabelValues("background").Inc()
		if s.media.Hosted(current) {
			s.cleaner.Enqueue(current)
		}
		return result.URL, nil
	case incoming == "" || incoming == domain.DefaultBackgroundPic:
		if incoming == domain.DefaultBackgroundPic && s.media.Hosted(current) {
			s.cleaner.Enqueue(current)
		}
		if incoming == "" {
			return current, nil
		}
		return domain.DefaultBackgroundPic, nil
	default:
		return current, nil
	}
}

// enqueuePostMedia hands every hosted asset of a deleted post to the
// cleanup queue, each URL exactly once.
func (s *PostService) enqueuePostMedia(post *domain.Post) {
	seen := make(map[string]struct{}, len(post.Images)+1)
	enqueue := func(url string) {
		if _, dup := seen[url]; dup || !s.media.Hosted(url) {
			return
		}
		seen[url] = struct{}{}
		s.cleaner.Enqueue(url)
	}

	enqueue(post.BackgroundPic)
	for _, url := range post.Images {
		enqueue(url)
	}
}

func validatePostInput(input ports.PostInput) error {
	return domain.Validate(
		domain.Check{Failed: strings.TrimSpace(input.Title) == "", Field: domain.FieldTitle, Message: "Title is required"},
		domain.Check{Failed: len(input.Content.Blocks) == 0, Field: domain.FieldContent, Message: "Content is required"},
	)
}

// isInlineUpload reports whether the value is editor-supplied image data
// rather than an already-hosted URL or the default placeholder.
func isInlineUpload(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// diffURLs returns the elements of prev that are absent from next.
func diffURLs(prev, next []string) []string {
	keep := make(map[string]struct{}, len(next))
	for _, url := range next {
		keep[url] = struct{}{}
	}
	var removed []string
	for _, url := range prev {
		if _, ok := keep[url]; !ok {
			removed = append(removed, url)
		}
	}
	return removed
}
