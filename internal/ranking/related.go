package ranking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// RelatedLimit is the number of suggestions returned for a post.
	RelatedLimit = 3

	// DefaultCategory is assumed when a post carries no category.
	DefaultCategory = "Uncategorized"
)

// RelatedPost is a suggestion row: a post annotated with engagement metrics
// and tagged with whether it came from the recency fallback.
type RelatedPost struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Summary         string    `db:"summary" json:"summary"`
	CoverImage      string    `db:"cover_image" json:"coverImage"`
	Category        string    `db:"category" json:"category"`
	Slug            string    `db:"slug" json:"slug"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	AuthorID        string    `db:"author_id" json:"-"`
	AuthorUsername  string    `db:"author_username" json:"-"`
	LikesCount      int       `db:"likes_count" json:"likesCount"`
	CommentsCount   int       `db:"comments_count" json:"commentsCount"`
	SuggestionScore int       `db:"suggestion_score" json:"suggestionScore"`
	IsFallback      bool      `db:"-" json:"isFallback"`
}

// PostSource supplies candidate sets for the recommender. Both methods must
// exclude the post identified by excludeID.
type PostSource interface {
	// SameCategoryPosts returns posts matching pattern against their stored
	// category, ranked by suggestion score descending then recency.
	SameCategoryPosts(excludeID, pattern string, limit int) ([]RelatedPost, error)
	// RecentPosts returns the most recently created posts.
	RecentPosts(excludeID string, limit int) ([]RelatedPost, error)
}

// RelatedResult is the tagged outcome of the two-stage recommendation: the
// primary category-scoped set, or the recency fallback when the category has
// no peers.
type RelatedResult struct {
	Posts    []RelatedPost
	Fallback bool
}

// Recommender suggests posts related to a source post, never returning an
// empty section while other posts exist.
type Recommender struct {
	src PostSource
}

// NewRecommender creates a recommender over the given candidate source.
func NewRecommender(src PostSource) *Recommender {
	return &Recommender{src: src}
}

// Related runs the two-stage strategy for the post identified by postID with
// the given stored category. Stage one matches the normalized category
// case-insensitively, tolerating stray whitespace in historical rows. Stage
// two drops the category filter and falls back to recency.
func (r *Recommender) Related(postID, category string) (RelatedResult, error) {
	pattern := CategoryPattern(category)

	primary, err := r.src.SameCategoryPosts(postID, pattern, RelatedLimit)
	if err != nil {
		return RelatedResult{}, fmt.Errorf("category candidates: %w", err)
	}
	if len(primary) > 0 {
		return RelatedResult{Posts: primary}, nil
	}

	fallback, err := r.src.RecentPosts(postID, RelatedLimit)
	if err != nil {
		return RelatedResult{}, fmt.Errorf("fallback candidates: %w", err)
	}
	for i := range fallback {
		fallback[i].IsFallback = true
	}
	return RelatedResult{Posts: fallback, Fallback: true}, nil
}

// CategoryPattern builds the anchored, case-insensitive-ready regex used to
// match a category against historical rows with inconsistent whitespace.
// The category text is quoted so punctuation in a stored category (e.g.
// "C++ Tips") cannot produce a malformed pattern.
func CategoryPattern(category string) string {
	cat := strings.TrimSpace(category)
	if cat == "" {
		cat = DefaultCategory
	}
	return `^\s*` + regexp.QuoteMeta(cat) + `\s*$`
}
