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

const collectionPosts = "posts"

// PostRepository persists posts and resolves their author and category
// references on reads.
type PostRepository struct {
	col        *mongo.Collection
	users      *mongo.Collection
	categories *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		col:        db.Collection(collectionPosts),
		users:      db.Collection(collectionUsers),
		categories: db.Collection(collectionCategories),
	}
}

type mongoPost struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Title         string               `bson:"title"`
	Content       domain.Content       `bson:"content,omitempty"`
	BackgroundPic string               `bson:"background_pic"`
	CreatedBy     primitive.ObjectID   `bson:"created_by"`
	Categories    []primitive.ObjectID `bson:"categories,omitempty"`
	Images        []string             `bson:"images,omitempty"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func toMongoPost(p *domain.Post) (mongoPost, error) {
	doc := mongoPost{
		Title:         p.Title,
		Content:       p.Content,
		BackgroundPic: p.BackgroundPic,
		Images:        p.Images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return doc, fmt.Errorf("post id %q: %w", p.ID, err)
		}
		doc.ID = oid
	}
	owner, err := primitive.ObjectIDFromHex(p.CreatedBy)
	if err != nil {
		return doc, fmt.Errorf("post owner id %q: %w", p.CreatedBy, err)
	}
	doc.CreatedBy = owner
	for _, id := range p.Categories {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return doc, fmt.Errorf("category id %q: %w", id, err)
		}
		doc.Categories = append(doc.Categories, oid)
	}
	return doc, nil
}

func (m mongoPost) toDomain() domain.Post {
	post := domain.Post{
		ID:            m.ID.Hex(),
		Title:         m.Title,
		Content:       m.Content,
		BackgroundPic: m.BackgroundPic,
		CreatedBy:     m.CreatedBy.Hex(),
		Images:        m.Images,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, oid := range m.Categories {
		post.Categories = append(post.Categories, oid.Hex())
	}
	return post
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoPost(post)
	if err != nil {
		return nil, err
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	posts, err := r.resolveRefs(ctx, []mongoPost{doc})
	if err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// summaryProjection is the field set used by list reads; content is the
// heavy part of a post and lists never need it.
var summaryProjection = bson.M{
	"title":          1,
	"background_pic": 1,
	"created_by":     1,
	"categories":     1,
	"created_at":     1,
	"updated_at":     1,
}

func (r *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	return r.findSummaries(ctx, bson.M{}, nil)
}

func (r *PostRepository) FindByCategory(ctx context.Context, categoryID string) ([]domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return r.findSummaries(ctx, bson.M{"categories": oid}, nil)
}

func (r *PostRepository) FindByOwner(ctx context.Context, userID string) ([]domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findSummaries(ctx, bson.M{"created_by": oid}, nil)
}

// FindPage counts first on the full collection, then fetches one page on
// a fresh cursor.
func (r *PostRepository) FindPage(ctx context.Context, pagination ports.Pagination) ([]domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	q := NewListQuery(ports.ListOptions{Pagination: pagination}).Pagination()
	posts, err := r.findSummaries(ctx, bson.M{}, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) findSummaries(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if opts == nil {
		opts = options.Find()
	}
	opts.SetProjection(summaryProjection)
	opts.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoPost
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return r.resolveRefs(ctx, docs)
}

// resolveRefs batch-loads the authors and categories referenced by docs
// and attaches their projections.
func (r *PostRepository) resolveRefs(ctx context.Context, docs []mongoPost) ([]domain.Post, error) {
	userIDs := make(map[primitive.ObjectID]struct{})
	categoryIDs := make(map[primitive.ObjectID]struct{})
	for _, doc := range docs {
		userIDs[doc.CreatedBy] = struct{}{}
		for _, oid := range doc.Categories {
			categoryIDs[oid] = struct{}{}
		}
	}

	authors, err := r.loadAuthors(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	categories, err := r.loadCategories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		post := doc.toDomain()
		if author, ok := authors[doc.CreatedBy]; ok {
			post.Author = &author
		}
		for _, oid := range doc.Categories {
			if category, ok := categories[oid]; ok {
				post.CategoryRefs = append(post.CategoryRefs, category)
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *PostRepository) loadAuthors(ctx context.Context, ids map[primitive.ObjectID]struct{}) (map[primitive.ObjectID]domain.UserRef, error) {
	authors := make(map[primitive.ObjectID]domain.UserRef, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	in := make([]primitive.ObjectID, 0, len(ids))
	for oid := range ids {
		in = append(in, oid)
	}

	opts := options.Find().SetProjection(bson.M{"username": 1, "profile_pic": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": in}}, opts)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	for _, doc := range docs {
		authors[doc.ID] = domain.UserRef{
			ID:         doc.ID.Hex(),
			Username:   doc.Username,
			ProfilePic: doc.ProfilePic,
		}
	}
	return authors, nil
}

func (r *PostRepository) loadCategories(ctx context.Context, ids map[primitive.ObjectID]struct{}) (map[primitive.ObjectID]domain.Category, error) {
	categories := make(map[primitive.ObjectID]domain.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	in := make([]primitive.ObjectID, 0, len(ids))
	for oid := range ids {
		in = append(in, oid)
	}

	cursor, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": in}})
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	for _, doc := range docs {
		categories[doc.ID] = doc.toDomain()
	}
	return categories, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoPost(post)
	if err != nil {
		return err
	}

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return domain.ErrPostNotFound
		}
		oids = append(oids, oid)
	}

	_, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	return nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "categories", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
