// Package database implements the Postgres store: entity models, CRUD and
// the aggregation queries behind the listing, trending and related-post
// read models.
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Sentinel errors surfaced to handlers for status mapping.
var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
)

// DB wraps the database connection
type DB struct {
	*sqlx.DB
}

// User represents a registered account
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserRef is a minimal user projection used for author joins and follow lists
type UserRef struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}

// Post represents a stored blog post. Engagement metrics (likes count,
// comments count, scores) are never stored; they are derived at query time.
type Post struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Summary    string    `db:"summary" json:"summary"`
	Content    string    `db:"content" json:"content"`
	CoverImage string    `db:"cover_image" json:"coverImage"`
	Category   string    `db:"category" json:"category"`
	AuthorID   string    `db:"author_id" json:"authorId"`
	Shares     int       `db:"shares" json:"shares"`
	Slug       string    `db:"slug" json:"slug"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// PostDetail is a single post with its likes set and author username joined in
type PostDetail struct {
	Post
	Likes          pq.StringArray `db:"likes" json:"likes"`
	AuthorUsername string         `db:"author_username" json:"-"`
}

// ListedPost is one row of the paginated listing projection
type ListedPost struct {
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Summary        string         `db:"summary" json:"summary"`
	CoverImage     string         `db:"cover_image" json:"coverImage"`
	Category       string         `db:"category" json:"category"`
	Slug           string         `db:"slug" json:"slug"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	Likes          pq.StringArray `db:"likes" json:"likes"`
	LikesCount     int            `db:"likes_count" json:"likesCount"`
	CommentsCount  int            `db:"comments_count" json:"commentsCount"`
	AuthorID       string         `db:"author_id" json:"-"`
	AuthorUsername string         `db:"author_username" json:"-"`
	TotalPosts     int            `db:"total_posts" json:"-"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"postId"`
	AuthorID  string    `db:"author_id" json:"authorId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CommentWithAuthor is a comment with the author's username joined in
type CommentWithAuthor struct {
	Comment
	AuthorUsername string `db:"author_username" json:"-"`
}

// NewDB creates a new database connection
func NewDB(connectionString string) (*DB, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// isUniqueViolation reports whether err is a Postgres unique violation on a
// constraint whose name contains frag.
func isUniqueViolation(err error, frag string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, frag)
}
