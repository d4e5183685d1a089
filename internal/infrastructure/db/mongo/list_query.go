package mongo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

// ListQuery shapes a collection listing from one options bundle: free-text
// keyword search, exact-match field filtering and pagination, applied as
// three chainable refinements over the same pending predicate.
//
// The two-pass contract: execute a count on Predicate() before calling
// Pagination(), compute the page count from that total, then run the page
// fetch with FindOptions() on a fresh cursor over the same predicate.
// Counting after pagination caps the total at one page.
type ListQuery struct {
	opts         ports.ListOptions
	searchFields []string
	conditions   []bson.M
	findOpts     *options.FindOptions
}

// NewListQuery builds a ListQuery over the given options bundle.
// searchFields configures which document fields Search matches against.
func NewListQuery(opts ports.ListOptions, searchFields ...string) *ListQuery {
	return &ListQuery{
		opts:         opts,
		searchFields: searchFields,
		findOpts:     options.Find(),
	}
}

// Search restricts the predicate to documents where any configured field
// case-insensitively contains the keyword as a substring. An empty or
// blank keyword is the identity transform. The keyword is regex-escaped:
// metacharacters match literally rather than being interpreted.
func (q *ListQuery) Search() *ListQuery {
	keyword := strings.TrimSpace(q.opts.Keyword)
	if keyword == "" || len(q.searchFields) == 0 {
		return q
	}

	pattern := regexp.QuoteMeta(keyword)
	or := make([]bson.M, 0, len(q.searchFields))
	for _, field := range q.searchFields {
		or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	q.conditions = append(q.conditions, bson.M{"$or": or})
	return q
}

// Filter intersects the predicate with an exact-match condition per entry
// of the filter map. An empty or nil map is the identity transform. Filter
// contents are trusted as-is: callers may pre-inject constraints before
// the bundle reaches the builder.
func (q *ListQuery) Filter() *ListQuery {
	for field, value := range q.opts.Filter {
		q.conditions = append(q.conditions, bson.M{field: value})
	}
	return q
}

// Pagination applies skip = perpage × (page−1) and limit = perpage to the
// find options, defaulting page to 1 and perpage to 4 when zero or absent.
func (q *ListQuery) Pagination() *ListQuery {
	page := q.opts.Pagination.EffectivePage()
	perpage := q.opts.Pagination.EffectivePerPage()
	q.findOpts.SetSkip(perpage * (page - 1))
	q.findOpts.SetLimit(perpage)
	return q
}

// Sort orders results by the given field, descending when desc is true.
func (q *ListQuery) Sort(field string, desc bool) *ListQuery {
	order := 1
	if desc {
		order = -1
	}
	q.findOpts.SetSort(bson.D{{Key: field, Value: order}})
	return q
}

// Predicate returns the accumulated match predicate. With no refinements
// applied it matches every document.
func (q *ListQuery) Predicate() bson.M {
	switch len(q.conditions) {
	case 0:
		return bson.M{}
	case 1:
		return q.conditions[0]
	default:
		return bson.M{"$and": q.conditions}
	}
}

// FindOptions returns the find options carrying sort and pagination.
func (q *ListQuery) FindOptions() *options.FindOptions {
	return q.findOpts
}
