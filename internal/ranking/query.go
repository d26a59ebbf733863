package ranking

import "strings"

// DefaultPageSize is the listing page size when the client does not send one.
const DefaultPageSize = 9

// SortKey identifies one of the closed set of listing sort modes. Unknown
// sort strings resolve to SortNewest rather than erroring.
type SortKey int

const (
	// SortNewest orders by descending creation time (the default).
	SortNewest SortKey = iota
	// SortOldest orders by ascending creation time.
	SortOldest
	// SortMostLiked orders by descending likes count, ties broken by
	// descending creation time.
	SortMostLiked
)

// ParseSortKey maps a client-supplied sort parameter onto a SortKey.
func ParseSortKey(s string) SortKey {
	switch s {
	case "oldest":
		return SortOldest
	case "likesCount":
		return SortMostLiked
	default:
		return SortNewest
	}
}

// OrderBy returns the SQL ORDER BY expression for the sort mode. likes_count
// is an output column computed by the listing query, so ordering on it keeps
// the annotate-then-sort pipeline in a single statement.
func (k SortKey) OrderBy() string {
	switch k {
	case SortOldest:
		return "p.created_at ASC"
	case SortMostLiked:
		return "likes_count DESC, p.created_at DESC"
	default:
		return "p.created_at DESC"
	}
}

// ListQuery is the normalized plan for a paginated post listing: match
// predicate inputs, sort key and page window.
type ListQuery struct {
	Search   string
	Category string
	Sort     SortKey
	Page     int
	Limit    int
}

// Normalize clamps the page window and trims filter text. Empty filters mean
// "no predicate", not "match everything".
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	return q
}

// Offset returns the number of rows to skip for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages reports the page count for a filtered total. An empty result
// set still reports one page so pagination UIs always have a page to stand
// on.
func TotalPages(total, limit int) int {
	if limit < 1 {
		limit = DefaultPageSize
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// EscapeLike escapes LIKE/ILIKE metacharacters in user-supplied search text
// so it matches as a literal substring.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
