package database

import (
	"database/sql"

	"github.com/google/uuid"
)

// ListComments returns a post's comments, newest first, with author
// usernames joined in.
func (db *DB) ListComments(postID string) ([]CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       COALESCE(u.username, '') AS author_username
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
	`
	var comments []CommentWithAuthor
	err := db.Select(&comments, query, postID)
	return comments, err
}

// AddComment inserts a comment and fills in its generated id and timestamp.
func (db *DB) AddComment(comment *Comment) error {
	comment.ID = uuid.New().String()
	query := `
		INSERT INTO comments (id, post_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return db.QueryRow(query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt)
}

// GetComment fetches a single comment by id.
func (db *DB) GetComment(id string) (*Comment, error) {
	var comment Comment
	err := db.Get(&comment,
		`SELECT id, post_id, author_id, content, created_at FROM comments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment by id.
func (db *DB) DeleteComment(id string) error {
	res, err := db.Exec(`DELETE FROM comments WHERE id = $1`, id)
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

// CountOrphanedComments counts comments whose post no longer exists. Post
// deletion does not cascade, so these accumulate until the janitor runs.
func (db *DB) CountOrphanedComments() (int, error) {
	var count int
	err := db.Get(&count, `
		SELECT COUNT(*)
		FROM comments c
		WHERE NOT EXISTS (SELECT 1 FROM posts p WHERE p.id = c.post_id)
	`)
	return count, err
}

// DeleteOrphanedComments removes comments whose post no longer exists and
// returns how many were deleted.
func (db *DB) DeleteOrphanedComments() (int64, error) {
	res, err := db.Exec(`
		DELETE FROM comments c
		WHERE NOT EXISTS (SELECT 1 FROM posts p WHERE p.id = c.post_id)
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
