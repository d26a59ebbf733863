package ranking

import (
	"errors"
	"testing"
)

type fakeTrendingSource struct {
	posts    []TrendingPost
	err      error
	gotLimit int
}

func (f *fakeTrendingSource) TopPosts(limit int) ([]TrendingPost, error) {
	f.gotLimit = limit
	return f.posts, f.err
}

func TestTrending(t *testing.T) {
	src := &fakeTrendingSource{posts: []TrendingPost{{ID: "a", TrendingScore: 17}, {ID: "b", TrendingScore: 12}}}
	s := NewSelector(src)

	got, err := s.Trending()
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if src.gotLimit != TrendingLimit {
		t.Errorf("limit = %d, want %d", src.gotLimit, TrendingLimit)
	}
	if len(got) != 2 || got[0].ID != "a" {
		t.Errorf("unexpected feed: %+v", got)
	}
}

func TestTrendingError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSelector(&fakeTrendingSource{err: boom})
	if _, err := s.Trending(); !errors.Is(err, boom) {
		t.Errorf("source error not surfaced: %v", err)
	}
}
