package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// In-memory doubles for the repository and infrastructure ports. They
// clone on the way in and out so tests cannot observe aliasing that the
// real MongoDB-backed implementations would never exhibit.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	listOpts  *ports.ListOptions
	listUsers []domain.User
	listTotal int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Images = append([]string(nil), u.Images...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email && existing.AuthType == user.AuthType {
			errs := make(domain.FieldErrors)
			errs.Taken(domain.FieldEmail)
			return nil, errs
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string, authType domain.AuthType) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.AuthType == authType {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.users {
		if code != "" && u.Code == code {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByProviderID(_ context.Context, providerID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ProviderID == providerID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, opts ports.ListOptions) ([]domain.User, int64, error) {
	r.listOpts = &opts
	return r.listUsers, r.listTotal, nil
}

type stubPostRepo struct {
	posts   map[string]*domain.Post
	nextID  int
	deleted []string
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	clone.Categories = append([]string(nil), p.Categories...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	copy := clonePost(post)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("post-%d", r.nextID)
	}
	r.posts[copy.ID] = clonePost(copy)
	return copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) FindAll(_ context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		out = append(out, *clonePost(p))
	}
	return out, nil
}

func (r *stubPostRepo) FindPage(_ context.Context, _ ports.Pagination) ([]domain.Post, int64, error) {
	all, _ := r.FindAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubPostRepo) FindByCategory(_ context.Context, categoryID string) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		for _, c := range p.Categories {
			if c == categoryID {
				out = append(out, *clonePost(p))
				break
			}
		}
	}
	return out, nil
}

func (r *stubPostRepo) FindByOwner(_ context.Context, userID string) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if p.CreatedBy == userID {
			out = append(out, *clonePost(p))
		}
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, ids ...string) error {
	for _, id := range ids {
		if _, ok := r.posts[id]; !ok {
			return domain.ErrPostNotFound
		}
		delete(r.posts, id)
		r.deleted = append(r.deleted, id)
	}
	return nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	nextID     int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if _, exists := r.categories[category.Name]; exists {
		return nil, domain.ErrCategoryExists
	}
	copy := *category
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("cat-%d", r.nextID)
	}
	r.categories[copy.Name] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	if c, ok := r.categories[name]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCategoryNotFound
}

type stubContactRepo struct {
	contacts []domain.Contact

	listOpts     *ports.ListOptions
	listContacts []domain.Contact
	listTotal    int64
}

func (r *stubContactRepo) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	copy := *contact
	copy.ID = fmt.Sprintf("contact-%d", len(r.contacts)+1)
	r.contacts = append(r.contacts, copy)
	clone := copy
	return &clone, nil
}

func (r *stubContactRepo) List(_ context.Context, opts ports.ListOptions) ([]domain.Contact, int64, error) {
	r.listOpts = &opts
	return r.listContacts, r.listTotal, nil
}

// stubMedia hosts every uploaded asset under mediaHost and records what
// gets destroyed.
const mediaHost = "https://media.test/"

type stubMedia struct {
	uploads   int
	destroyed []string
	failNext  bool
}

func (m *stubMedia) Upload(_ context.Context, _, folder string) (ports.UploadResult, error) {
	if m.failNext {
		m.failNext = false
		return ports.UploadResult{}, fmt.Errorf("upload rejected")
	}
	m.uploads++
	url := fmt.Sprintf("%s%s/asset-%d.png", mediaHost, folder, m.uploads)
	return ports.UploadResult{URL: url, PublicID: fmt.Sprintf("asset-%d", m.uploads)}, nil
}

func (m *stubMedia) Destroy(_ context.Context, url string) error {
	m.destroyed = append(m.destroyed, url)
	return nil
}

func (m *stubMedia) Hosted(url string) bool {
	return strings.HasPrefix(url, mediaHost)
}

// stubCleaner records enqueued URLs synchronously.
type stubCleaner struct {
	mu       sync.Mutex
	enqueued []string
}

func (c *stubCleaner) Enqueue(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enqueued = append(c.enqueued, url)
}

func (c *stubCleaner) urls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.enqueued...)
}

type stubMailer struct {
	activationCodes map[string]string
	newPasswords    map[string]string
}

func newStubMailer() *stubMailer {
	return &stubMailer{
		activationCodes: make(map[string]string),
		newPasswords:    make(map[string]string),
	}
}

func (m *stubMailer) SendActivationCode(_ context.Context, email, code string) error {
	m.activationCodes[email] = code
	return nil
}

func (m *stubMailer) SendNewPassword(_ context.Context, email, password string) error {
	m.newPasswords[email] = password
	return nil
}

type stubBroker struct {
	published []string
}

func (b *stubBroker) Publish(_ context.Context, topic string, _ any) error {
	b.published = append(b.published, topic)
	return nil
}

func (b *stubBroker) Subscribe(context.Context, string) (<-chan []byte, func(), error) {
	ch := make(chan []byte)
	close(ch)
	return ch, func() {}, nil
}
