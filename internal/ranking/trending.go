package ranking

import "time"

// TrendingLimit is the size of the global trending feed.
const TrendingLimit = 10

// TrendingPost is a post annotated with engagement metrics for the global
// trending feed. Author fields are empty strings when the author reference
// does not resolve.
type TrendingPost struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Summary        string    `db:"summary" json:"summary"`
	CoverImage     string    `db:"cover_image" json:"coverImage"`
	Category       string    `db:"category" json:"category"`
	Slug           string    `db:"slug" json:"slug"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	AuthorID       string    `db:"author_id" json:"-"`
	AuthorUsername string    `db:"author_username" json:"-"`
	LikesCount     int       `db:"likes_count" json:"likesCount"`
	CommentsCount  int       `db:"comments_count" json:"commentsCount"`
	Shares         int       `db:"shares" json:"shares"`
	TrendingScore  int       `db:"trending_score" json:"trendingScore"`
}

// TrendingSource supplies the globally top-scored posts.
type TrendingSource interface {
	TopPosts(limit int) ([]TrendingPost, error)
}

// Selector produces the global trending feed: top posts by trending score,
// independent of any listing filter.
type Selector struct {
	src TrendingSource
}

// NewSelector creates a trending selector over the given source.
func NewSelector(src TrendingSource) *Selector {
	return &Selector{src: src}
}

// Trending returns the top-N posts by weighted engagement score, ties broken
// by recency.
func (s *Selector) Trending() ([]TrendingPost, error) {
	return s.src.TopPosts(TrendingLimit)
}
