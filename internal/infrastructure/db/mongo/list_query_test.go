package mongo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

func TestListQuery_EmptyOptionsMatchesEverything(t *testing.T) {
	q := NewListQuery(ports.ListOptions{}, "username", "email").Search().Filter()
	if got := q.Predicate(); !reflect.DeepEqual(got, bson.M{}) {
		t.Fatalf("expected empty predicate, got %v", got)
	}
}

func TestListQuery_BlankKeywordIsIdentity(t *testing.T) {
	q := NewListQuery(ports.ListOptions{Keyword: "   "}, "username").Search()
	if got := q.Predicate(); !reflect.DeepEqual(got, bson.M{}) {
		t.Fatalf("expected empty predicate, got %v", got)
	}
}

func TestListQuery_SearchBuildsCaseInsensitiveOr(t *testing.T) {
	q := NewListQuery(ports.ListOptions{Keyword: "alice"}, "username", "email").Search()

	want := bson.M{"$or": []bson.M{
		{"username": bson.M{"$regex": "alice", "$options": "i"}},
		{"email": bson.M{"$regex": "alice", "$options": "i"}},
	}}
	if got := q.Predicate(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected predicate:\n got %v\nwant %v", got, want)
	}
}

func TestListQuery_SearchEscapesMetacharacters(t *testing.T) {
	q := NewListQuery(ports.ListOptions{Keyword: "a.b*"}, "username").Search()

	want := bson.M{"$or": []bson.M{
		{"username": bson.M{"$regex": `a\.b\*`, "$options": "i"}},
	}}
	if got := q.Predicate(); !reflect.DeepEqual(got, want) {
		t.Fatalf("metacharacters must match literally:\n got %v\nwant %v", got, want)
	}
}

func TestListQuery_FilterAndSearchIntersect(t *testing.T) {
	opts := ports.ListOptions{
		Keyword: "bob",
		Filter:  map[string]any{"role": "user"},
	}
	q := NewListQuery(opts, "username").Search().Filter()

	got := q.Predicate()
	and, ok := got["$and"].([]bson.M)
	if !ok {
		t.Fatalf("expected $and predicate, got %v", got)
	}
	if len(and) != 2 {
		t.Fatalf("expected 2 conditions, got %d: %v", len(and), and)
	}
	if !reflect.DeepEqual(and[1], bson.M{"role": "user"}) {
		t.Fatalf("unexpected filter condition: %v", and[1])
	}
}

func TestListQuery_PaginationDefaults(t *testing.T) {
	q := NewListQuery(ports.ListOptions{}).Pagination()

	fo := q.FindOptions()
	if fo.Skip == nil || *fo.Skip != 0 {
		t.Fatalf("expected skip 0, got %v", fo.Skip)
	}
	if fo.Limit == nil || *fo.Limit != ports.DefaultPerPage {
		t.Fatalf("expected limit %d, got %v", ports.DefaultPerPage, fo.Limit)
	}
}

func TestListQuery_PaginationSkipAndLimit(t *testing.T) {
	opts := ports.ListOptions{Pagination: ports.Pagination{Page: 3, PerPage: 10}}
	q := NewListQuery(opts).Pagination()

	fo := q.FindOptions()
	if fo.Skip == nil || *fo.Skip != 20 {
		t.Fatalf("expected skip 20, got %v", fo.Skip)
	}
	if fo.Limit == nil || *fo.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", fo.Limit)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total   int64
		perpage int64
		want    int64
	}{
		{total: 0, perpage: 4, want: 0},
		{total: 4, perpage: 4, want: 1},
		{total: 5, perpage: 4, want: 2},
		{total: 10, perpage: 4, want: 3},
		{total: 10, perpage: 0, want: 3}, // perpage defaults to 4
	}
	for _, tc := range cases {
		got := ports.PageCount(tc.total, ports.Pagination{PerPage: tc.perpage})
		if got != tc.want {
			t.Fatalf("PageCount(%d, perpage=%d) = %d, want %d", tc.total, tc.perpage, got, tc.want)
		}
	}
}
