package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	ProfilePic   string             `bson:"profile_pic"`
	IsActive     bool               `bson:"is_active"`
	Code         string             `bson:"code,omitempty"`
	Token        string             `bson:"token,omitempty"`
	Role         string             `bson:"role"`
	AuthType     string             `bson:"auth_type"`
	ProviderID   string             `bson:"provider_id,omitempty"`
	Images       []string           `bson:"images,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoUser(u *domain.User) (mongoUser, error) {
	doc := mongoUser{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		ProfilePic:   u.ProfilePic,
		IsActive:     u.IsActive,
		Code:         u.Code,
		Token:        u.Token,
		Role:         string(u.Role),
		AuthType:     string(u.AuthType),
		ProviderID:   u.ProviderID,
		Images:       u.Images,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return doc, fmt.Errorf("user id %q: %w", u.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (m mongoUser) toDomain() domain.User {
	return domain.User{
		ID:           m.ID.Hex(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		ProfilePic:   m.ProfilePic,
		IsActive:     m.IsActive,
		Code:         m.Code,
		Token:        m.Token,
		Role:         domain.Role(m.Role),
		AuthType:     domain.AuthType(m.AuthType),
		ProviderID:   m.ProviderID,
		Images:       m.Images,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoUser(user)
	if err != nil {
		return nil, err
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			errs := make(domain.FieldErrors, 1)
			errs.Taken(domain.FieldEmail)
			return nil, errs
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string, authType domain.AuthType) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "auth_type": string(authType)})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *UserRepository) FindByProviderID(ctx context.Context, providerID string) (*domain.User, error) {
	if providerID == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"provider_id": providerID})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := doc.toDomain()
	return &user, nil
}

// Update saves the whole document. Last write wins; there is no version
// compare.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoUser(user)
	if err != nil {
		return err
	}

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			errs := make(domain.FieldErrors, 1)
			errs.Taken(domain.FieldEmail)
			return errs
		}
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List runs the two-pass listing protocol: count on the un-paginated
// predicate, derive the page count, then fetch the page on a fresh cursor.
func (r *UserRepository) List(ctx context.Context, opts ports.ListOptions) ([]domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := NewListQuery(opts, "username", "email").Search().Filter()

	total, err := r.col.CountDocuments(ctx, q.Predicate())
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	cursor, err := r.col.Find(ctx, q.Predicate(), q.Sort("created_at", true).Pagination().FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, ports.PageCount(total, opts.Pagination), nil
}

// EnsureIndexes creates the uniqueness indexes the account model relies
// on: email unique per auth method, and provider_id unique when present.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "auth_type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "code", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
