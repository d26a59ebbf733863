package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/ranking"
	"inkpress/internal/slug"
)

// listColumns is the projection for paginated listings. likes_count is an
// output column so the sort stage can order on it, and COUNT(*) OVER ()
// carries the filtered total alongside the page in the same statement.
const listColumns = `
	p.id, p.title, p.summary, p.cover_image, p.category, p.slug, p.created_at,
	COALESCE(u.id::text, '') AS author_id,
	COALESCE(u.username, '') AS author_username,
	(SELECT COALESCE(ARRAY_AGG(pl.user_id::text), ARRAY[]::text[]) FROM post_likes pl WHERE pl.post_id = p.id) AS likes,
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
	COUNT(*) OVER () AS total_posts`

// scoreExpr builds the SQL engagement score expression from the ranking
// weights, so SQL and in-process scoring can never drift apart.
func scoreExpr(alias string) string {
	return fmt.Sprintf("(%d*%s.likes_count + %d*%s.comments_count + %d*%s.shares)",
		ranking.LikeWeight, alias, ranking.CommentWeight, alias, ranking.ShareWeight, alias)
}

// listPredicates translates the plan's filters into WHERE fragments and
// args. Absent filters contribute nothing rather than a match-all predicate.
func listPredicates(q ranking.ListQuery) ([]string, []interface{}) {
	var where []string
	var args []interface{}

	if q.Category != "" {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+ranking.EscapeLike(q.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.summary ILIKE $%d)", n, n))
	}
	return where, args
}

// buildListQuery assembles the full match -> annotate -> sort -> paginate ->
// join -> project pipeline as one SQL statement.
func buildListQuery(q ranking.ListQuery) (string, []interface{}) {
	where, args := listPredicates(q)
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	args = append(args, q.Limit, q.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		listColumns, clause, q.Sort.OrderBy(), len(args)-1, len(args))
	return query, args
}

// ListPosts runs the ranked listing pipeline and returns the page plus the
// total over the same filtered set.
func (db *DB) ListPosts(q ranking.ListQuery) ([]ListedPost, int, error) {
	query, args := buildListQuery(q)

	var rows []ListedPost
	if err := db.Select(&rows, query, args...); err != nil {
		return nil, 0, err
	}
	if len(rows) > 0 {
		return rows, rows[0].TotalPosts, nil
	}

	// The requested window is past the end of the filtered set, so no row
	// carried the windowed total. Re-run the count alone with the same
	// predicates.
	where, cargs := listPredicates(q)
	countQuery := "SELECT COUNT(*) FROM posts p"
	if len(where) > 0 {
		countQuery += " WHERE " + strings.Join(where, " AND ")
	}
	var total int
	if err := db.Get(&total, countQuery, cargs...); err != nil {
		return nil, 0, err
	}
	return []ListedPost{}, total, nil
}

// ListUserPosts returns one page of a user's posts, newest first, with the
// same projection and totals contract as ListPosts.
func (db *DB) ListUserPosts(userID string, limit, offset int) ([]ListedPost, int, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`, listColumns)

	var rows []ListedPost
	if err := db.Select(&rows, query, userID, limit, offset); err != nil {
		return nil, 0, err
	}
	if len(rows) > 0 {
		return rows, rows[0].TotalPosts, nil
	}

	var total int
	if err := db.Get(&total, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, userID); err != nil {
		return nil, 0, err
	}
	return []ListedPost{}, total, nil
}

// CreatePost inserts a new post. The caller is responsible for having
// assigned a unique slug.
func (db *DB) CreatePost(post *Post) error {
	query := `
		INSERT INTO posts (id, title, summary, content, cover_image, category, author_id, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return db.QueryRow(query,
		post.ID, post.Title, post.Summary, post.Content,
		post.CoverImage, post.Category, post.AuthorID, post.Slug,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
}

// GetPostByIDOrSlug resolves a post by canonical id or human slug. Id-shaped
// identifiers match either column; slug and UUID formats are disjoint in
// practice, so a slug never accidentally parses as an id.
func (db *DB) GetPostByIDOrSlug(idOrSlug string) (*PostDetail, error) {
	where := "p.slug = $1"
	args := []interface{}{idOrSlug}
	if _, err := uuid.Parse(idOrSlug); err == nil {
		where = "(p.id = $1 OR p.slug = $2)"
		args = []interface{}{idOrSlug, idOrSlug}
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.summary, p.content, p.cover_image, p.category,
		       p.author_id, p.shares, p.slug, p.created_at, p.updated_at,
		       (SELECT COALESCE(ARRAY_AGG(pl.user_id::text), ARRAY[]::text[]) FROM post_likes pl WHERE pl.post_id = p.id) AS likes,
		       COALESCE(u.username, '') AS author_username
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE %s`, where)

	var post PostDetail
	err := db.Get(&post, query, args...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost persists the mutable fields of a post.
func (db *DB) UpdatePost(post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, summary = $2, content = $3, cover_image = $4,
		    category = $5, slug = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := db.QueryRow(query,
		post.Title, post.Summary, post.Content, post.CoverImage,
		post.Category, post.Slug, post.ID,
	).Scan(&post.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// DeletePost removes a post. Its comments are intentionally left in place;
// the janitor sweeps orphans out of band.
func (db *DB) DeletePost(id string) error {
	res, err := db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// resolvePostID maps an id or slug to the post's id.
func (db *DB) resolvePostID(idOrSlug string) (string, error) {
	where := "slug = $1"
	args := []interface{}{idOrSlug}
	if _, err := uuid.Parse(idOrSlug); err == nil {
		where = "(id = $1 OR slug = $2)"
		args = []interface{}{idOrSlug, idOrSlug}
	}

	var postID string
	err := db.Get(&postID, `SELECT id FROM posts WHERE `+where, args...)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return postID, err
}

// ToggleLike flips the caller's like on the given post and returns the new
// count and liked state. The read-modify-write sequence is not guarded
// against a concurrent toggle from the same user; last write wins.
func (db *DB) ToggleLike(idOrSlug, userID string) (int, bool, error) {
	postID, err := db.resolvePostID(idOrSlug)
	if err != nil {
		return 0, false, err
	}

	var wasLiked bool
	if err := db.Get(&wasLiked,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID); err != nil {
		return 0, false, err
	}
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID); err != nil {
		return 0, false, err
	}

	liked, newCount := ranking.ToggleLike(wasLiked, count)
	if liked {
		_, err = db.Exec(
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, userID)
	} else {
		_, err = db.Exec(`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	}
	if err != nil {
		return 0, false, err
	}
	return newCount, liked, nil
}

// IncrementShares bumps the share counter in a single atomic update.
func (db *DB) IncrementShares(idOrSlug string) (int, error) {
	postID, err := db.resolvePostID(idOrSlug)
	if err != nil {
		return 0, err
	}

	var shares int
	err = db.Get(&shares, `UPDATE posts SET shares = shares + 1 WHERE id = $1 RETURNING shares`, postID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return shares, err
}

// UniqueSlug disambiguates a candidate slug against existing posts. The
// post's own row is excluded from the collision check so re-saving an
// unchanged title keeps its slug.
func (db *DB) UniqueSlug(base, selfID string) (string, error) {
	return slug.Unique(base, func(candidate string) (bool, error) {
		var exists bool
		err := db.Get(&exists,
			`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`,
			candidate, selfID)
		return exists, err
	})
}

// relatedInner is the annotated candidate projection shared by the
// recommender queries.
const relatedInner = `
		SELECT p.id, p.title, p.summary, p.cover_image, p.category, p.slug,
		       p.created_at, p.shares,
		       COALESCE(u.id::text, '') AS author_id,
		       COALESCE(u.username, 'Anonymous') AS author_username,
		       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id`

// SameCategoryPosts returns posts whose stored category matches pattern
// (case-insensitive regex, whitespace-tolerant), excluding the source post,
// ranked by suggestion score then recency.
func (db *DB) SameCategoryPosts(excludeID, pattern string, limit int) ([]ranking.RelatedPost, error) {
	query := fmt.Sprintf(`
		SELECT q.id, q.title, q.summary, q.cover_image, q.category, q.slug,
		       q.created_at, q.author_id, q.author_username,
		       q.likes_count, q.comments_count,
		       %s AS suggestion_score
		FROM (%s
		WHERE p.category ~* $1 AND p.id <> $2
		) q
		ORDER BY suggestion_score DESC, q.created_at DESC
		LIMIT $3`, scoreExpr("q"), relatedInner)

	var posts []ranking.RelatedPost
	err := db.Select(&posts, query, pattern, excludeID, limit)
	return posts, err
}

// RecentPosts returns the most recently created posts excluding the source
// post. Used as the recommender's fallback set.
func (db *DB) RecentPosts(excludeID string, limit int) ([]ranking.RelatedPost, error) {
	query := fmt.Sprintf(`
		SELECT q.id, q.title, q.summary, q.cover_image, q.category, q.slug,
		       q.created_at, q.author_id, q.author_username,
		       q.likes_count, q.comments_count,
		       %s AS suggestion_score
		FROM (%s
		WHERE p.id <> $1
		) q
		ORDER BY q.created_at DESC
		LIMIT $2`, scoreExpr("q"), relatedInner)

	var posts []ranking.RelatedPost
	err := db.Select(&posts, query, excludeID, limit)
	return posts, err
}

// TopPosts returns the globally top-scored posts for the trending feed.
// Author fields stay empty when the reference is dangling; the row is kept.
func (db *DB) TopPosts(limit int) ([]ranking.TrendingPost, error) {
	query := fmt.Sprintf(`
		SELECT q.id, q.title, q.summary, q.cover_image, q.category, q.slug,
		       q.created_at, q.author_id, q.author_username,
		       q.likes_count, q.comments_count, q.shares,
		       %s AS trending_score
		FROM (
		SELECT p.id, p.title, p.summary, p.cover_image, p.category, p.slug,
		       p.created_at, p.shares,
		       COALESCE(u.id::text, '') AS author_id,
		       COALESCE(u.username, '') AS author_username,
		       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		) q
		ORDER BY trending_score DESC, q.created_at DESC
		LIMIT $1`, scoreExpr("q"))

	var posts []ranking.TrendingPost
	err := db.Select(&posts, query, limit)
	return posts, err
}
