package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const collectionContacts = "contacts"

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContacts)}
}

type mongoContact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Content   string             `bson:"content"`
	Replied   bool               `bson:"replied"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m mongoContact) toDomain() domain.Contact {
	return domain.Contact{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Email:     m.Email,
		Content:   m.Content,
		Replied:   m.Replied,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoContact{
		Name:      contact.Name,
		Email:     contact.Email,
		Content:   contact.Content,
		Replied:   contact.Replied,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	created := *contact
	created.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// List runs the two-pass listing protocol over contact messages: count on
// the un-paginated predicate, then fetch the page on a fresh cursor.
func (r *ContactRepository) List(ctx context.Context, opts ports.ListOptions) ([]domain.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := NewListQuery(opts, "name", "email").Search().Filter()

	total, err := r.col.CountDocuments(ctx, q.Predicate())
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	cursor, err := r.col.Find(ctx, q.Predicate(), q.Sort("created_at", true).Pagination().FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoContact
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode contacts: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(docs))
	for _, doc := range docs {
		contacts = append(contacts, doc.toDomain())
	}
	return contacts, ports.PageCount(total, opts.Pagination), nil
}
