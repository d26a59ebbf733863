package database

import (
	"strings"
	"testing"

	"inkpress/internal/ranking"
)

func TestListPredicates(t *testing.T) {
	tests := []struct {
		name      string
		q         ranking.ListQuery
		wantWhere []string
		wantArgs  []interface{}
	}{
		{
			"no filters",
			ranking.ListQuery{},
			nil,
			nil,
		},
		{
			"category only",
			ranking.ListQuery{Category: "Tech"},
			[]string{"p.category = $1"},
			[]interface{}{"Tech"},
		},
		{
			"search only",
			ranking.ListQuery{Search: "go"},
			[]string{"(p.title ILIKE $1 OR p.summary ILIKE $1)"},
			[]interface{}{"%go%"},
		},
		{
			"search with LIKE metacharacters",
			ranking.ListQuery{Search: "100%_done"},
			[]string{"(p.title ILIKE $1 OR p.summary ILIKE $1)"},
			[]interface{}{`%100\%\_done%`},
		},
		{
			"category and search",
			ranking.ListQuery{Category: "Tech", Search: "go"},
			[]string{"p.category = $1", "(p.title ILIKE $2 OR p.summary ILIKE $2)"},
			[]interface{}{"Tech", "%go%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := listPredicates(tt.q)
			if len(where) != len(tt.wantWhere) {
				t.Fatalf("where = %v, want %v", where, tt.wantWhere)
			}
			for i := range where {
				if where[i] != tt.wantWhere[i] {
					t.Errorf("where[%d] = %q, want %q", i, where[i], tt.wantWhere[i])
				}
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestBuildListQuery(t *testing.T) {
	q := ranking.ListQuery{
		Category: "Tech",
		Search:   "go",
		Sort:     ranking.SortMostLiked,
		Page:     2,
		Limit:    9,
	}
	query, args := buildListQuery(q)

	for _, frag := range []string{
		"COUNT(*) OVER () AS total_posts",
		"p.category = $1",
		"(p.title ILIKE $2 OR p.summary ILIKE $2)",
		"ORDER BY likes_count DESC, p.created_at DESC",
		"LIMIT $3 OFFSET $4",
		"LEFT JOIN users u ON u.id = p.author_id",
	} {
		if !strings.Contains(query, frag) {
			t.Errorf("query missing %q:\n%s", frag, query)
		}
	}

	want := []interface{}{"Tech", "%go%", 9, 9}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range args {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildListQueryNoFilters(t *testing.T) {
	query, args := buildListQuery(ranking.ListQuery{Page: 1, Limit: 9})
	if strings.Contains(query, "WHERE") {
		t.Errorf("unfiltered query has a WHERE clause:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY p.created_at DESC") {
		t.Errorf("default sort missing:\n%s", query)
	}
	want := []interface{}{9, 0}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range args {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestScoreExpr(t *testing.T) {
	got := scoreExpr("q")
	want := "(2*q.likes_count + 3*q.comments_count + 1*q.shares)"
	if got != want {
		t.Errorf("scoreExpr = %q, want %q", got, want)
	}
}
