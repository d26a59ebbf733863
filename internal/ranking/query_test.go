package ranking

import "testing"

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"", SortNewest},
		{"newest", SortNewest},
		{"oldest", SortOldest},
		{"likesCount", SortMostLiked},
		{"likescount", SortNewest},
		{"garbage", SortNewest},
	}
	for _, tt := range tests {
		if got := ParseSortKey(tt.in); got != tt.want {
			t.Errorf("ParseSortKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		key  SortKey
		want string
	}{
		{SortNewest, "p.created_at DESC"},
		{SortOldest, "p.created_at ASC"},
		{SortMostLiked, "likes_count DESC, p.created_at DESC"},
	}
	for _, tt := range tests {
		if got := tt.key.OrderBy(); got != tt.want {
			t.Errorf("OrderBy(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{
			"defaults",
			ListQuery{},
			ListQuery{Page: 1, Limit: DefaultPageSize},
		},
		{
			"negative page and limit",
			ListQuery{Page: -3, Limit: -1},
			ListQuery{Page: 1, Limit: DefaultPageSize},
		},
		{
			"filters trimmed",
			ListQuery{Search: "  go  ", Category: " Tech ", Page: 2, Limit: 5},
			ListQuery{Search: "go", Category: "Tech", Page: 2, Limit: 5},
		},
		{
			"whitespace-only filters become empty",
			ListQuery{Search: "   ", Category: "\t", Page: 1, Limit: 9},
			ListQuery{Page: 1, Limit: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 9, 0},
		{2, 9, 9},
		{3, 5, 10},
	}
	for _, tt := range tests {
		q := ListQuery{Page: tt.page, Limit: tt.limit}
		if got := q.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 9, 1},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{27, 9, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
