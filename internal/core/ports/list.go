package ports

// Defaults applied when pagination fields are zero or absent.
const (
	DefaultPage    int64 = 1
	DefaultPerPage int64 = 4
)

// Pagination selects one page of a result set.
type Pagination struct {
	Page    int64 `json:"page"`
	PerPage int64 `json:"perpage"`
}

// EffectivePerPage returns the page size with the default applied.
func (p Pagination) EffectivePerPage() int64 {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

// EffectivePage returns the page number with the default applied.
func (p Pagination) EffectivePage() int64 {
	if p.Page <= 0 {
		return DefaultPage
	}
	return p.Page
}

// ListOptions is the options bundle accepted by every paginated listing:
// a free-text keyword, an exact-match field filter, and a page selector.
// Filter contents are trusted as-is; callers may inject additional
// constraints (e.g. restricting an admin's view to role=user) before the
// bundle reaches the repository.
type ListOptions struct {
	Keyword    string         `json:"keyword"`
	Filter     map[string]any `json:"filter"`
	Pagination Pagination     `json:"pagination"`
}

// PageCount computes ceil(total/perpage) for a total obtained from the
// un-paginated predicate. The count pass must run before pagination is
// applied; a paginated count caps out at one page.
func PageCount(total int64, pagination Pagination) int64 {
	perpage := pagination.EffectivePerPage()
	return (total + perpage - 1) / perpage
}
