package ranking

import (
	"errors"
	"regexp"
	"testing"
)

// fakeSource is an in-memory PostSource for recommender tests.
type fakeSource struct {
	byCategory []RelatedPost
	recent     []RelatedPost

	categoryErr error
	recentErr   error

	gotExcludeID string
	gotPattern   string
	gotLimit     int
}

func (f *fakeSource) SameCategoryPosts(excludeID, pattern string, limit int) ([]RelatedPost, error) {
	f.gotExcludeID = excludeID
	f.gotPattern = pattern
	f.gotLimit = limit
	return f.byCategory, f.categoryErr
}

func (f *fakeSource) RecentPosts(excludeID string, limit int) ([]RelatedPost, error) {
	f.gotExcludeID = excludeID
	f.gotLimit = limit
	return f.recent, f.recentErr
}

func TestRelatedPrimary(t *testing.T) {
	src := &fakeSource{
		byCategory: []RelatedPost{{ID: "a"}, {ID: "b"}},
		recent:     []RelatedPost{{ID: "should-not-appear"}},
	}
	r := NewRecommender(src)

	got, err := r.Related("post-1", "Tech")
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if got.Fallback {
		t.Error("Fallback = true for a non-empty category match")
	}
	if len(got.Posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(got.Posts))
	}
	for _, p := range got.Posts {
		if p.IsFallback {
			t.Errorf("post %s tagged as fallback in primary result", p.ID)
		}
	}
	if src.gotExcludeID != "post-1" {
		t.Errorf("excludeID = %q, want %q", src.gotExcludeID, "post-1")
	}
	if src.gotLimit != RelatedLimit {
		t.Errorf("limit = %d, want %d", src.gotLimit, RelatedLimit)
	}
}

func TestRelatedFallback(t *testing.T) {
	src := &fakeSource{
		recent: []RelatedPost{{ID: "x"}, {ID: "y"}, {ID: "z"}},
	}
	r := NewRecommender(src)

	got, err := r.Related("post-1", "Obscure")
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if !got.Fallback {
		t.Error("Fallback = false when the category produced no candidates")
	}
	for _, p := range got.Posts {
		if !p.IsFallback {
			t.Errorf("fallback post %s not tagged", p.ID)
		}
	}
}

func TestRelatedEmptyEitherWay(t *testing.T) {
	r := NewRecommender(&fakeSource{})

	got, err := r.Related("only-post", "Tech")
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if !got.Fallback {
		t.Error("Fallback = false for an empty fallback result")
	}
	if len(got.Posts) != 0 {
		t.Errorf("got %d posts, want 0", len(got.Posts))
	}
}

func TestRelatedErrors(t *testing.T) {
	boom := errors.New("boom")

	r := NewRecommender(&fakeSource{categoryErr: boom})
	if _, err := r.Related("p", "Tech"); !errors.Is(err, boom) {
		t.Errorf("category stage error not surfaced: %v", err)
	}

	r = NewRecommender(&fakeSource{recentErr: boom})
	if _, err := r.Related("p", "Tech"); !errors.Is(err, boom) {
		t.Errorf("fallback stage error not surfaced: %v", err)
	}
}

func TestCategoryPattern(t *testing.T) {
	tests := []struct {
		name     string
		category string
		matches  []string
		rejects  []string
	}{
		{
			"plain category",
			"Tech",
			[]string{"Tech", "  Tech", "Tech  ", "\tTech "},
			[]string{"Technology", "a Tech"},
		},
		{
			"regex metacharacters quoted",
			"C++ Tips",
			[]string{"C++ Tips", " C++ Tips "},
			[]string{"Cxx Tips", "C Tips"},
		},
		{
			"empty falls back to default category",
			"",
			[]string{DefaultCategory, " " + DefaultCategory},
			[]string{"Tech"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := regexp.Compile(CategoryPattern(tt.category))
			if err != nil {
				t.Fatalf("pattern for %q does not compile: %v", tt.category, err)
			}
			for _, s := range tt.matches {
				if !re.MatchString(s) {
					t.Errorf("pattern for %q should match %q", tt.category, s)
				}
			}
			for _, s := range tt.rejects {
				if re.MatchString(s) {
					t.Errorf("pattern for %q should not match %q", tt.category, s)
				}
			}
		})
	}
}
