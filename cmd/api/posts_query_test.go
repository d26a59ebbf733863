package main

import (
	"net/url"
	"testing"

	"inkpress/internal/ranking"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ranking.ListQuery
	}{
		{
			"defaults",
			"",
			ranking.ListQuery{Page: 1, Limit: ranking.DefaultPageSize, Sort: ranking.SortNewest},
		},
		{
			"all parameters",
			"search=go&category=Tech&sort=likesCount&page=3&limit=5",
			ranking.ListQuery{Search: "go", Category: "Tech", Sort: ranking.SortMostLiked, Page: 3, Limit: 5},
		},
		{
			"non-numeric page falls back",
			"page=abc&limit=xyz",
			ranking.ListQuery{Page: 1, Limit: ranking.DefaultPageSize, Sort: ranking.SortNewest},
		},
		{
			"negative page clamped",
			"page=-2&limit=0",
			ranking.ListQuery{Page: 1, Limit: ranking.DefaultPageSize, Sort: ranking.SortNewest},
		},
		{
			"unknown sort falls back to newest",
			"sort=random",
			ranking.ListQuery{Page: 1, Limit: ranking.DefaultPageSize, Sort: ranking.SortNewest},
		},
		{
			"oldest sort",
			"sort=oldest",
			ranking.ListQuery{Page: 1, Limit: ranking.DefaultPageSize, Sort: ranking.SortOldest},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			if got := parseListQuery(values); got != tt.want {
				t.Errorf("parseListQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestEmptyEnvelope(t *testing.T) {
	env := emptyEnvelope()
	if env.Posts == nil {
		t.Error("Posts is nil; must serialize as [] not null")
	}
	if env.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", env.CurrentPage)
	}
	if env.TotalPosts != 0 || env.TotalPages != 0 {
		t.Errorf("totals = (%d, %d), want (0, 0)", env.TotalPosts, env.TotalPages)
	}
}
