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
)

const collectionCategories = "categories"

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

type mongoCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m mongoCategory) toDomain() domain.Category {
	return domain.Category{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCategory{
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCategoryExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	created := *category
	created.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, doc.toDomain())
	}
	return categories, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCategory
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	category := doc.toDomain()
	return &category, nil
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
