package database

// ToggleFollow flips whether followerID follows followeeID and returns the
// new relation state plus the followee's follower count. Like the like
// toggle, concurrent toggles from the same user race with last write wins.
func (db *DB) ToggleFollow(followerID, followeeID string) (bool, int, error) {
	res, err := db.Exec(
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return false, 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	following := false
	if removed == 0 {
		if _, err := db.Exec(
			`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			followerID, followeeID,
		); err != nil {
			return false, 0, err
		}
		following = true
	}

	count, err := db.FollowerCount(followeeID)
	if err != nil {
		return following, 0, err
	}
	return following, count, nil
}

// FollowerCount returns how many users follow userID.
func (db *DB) FollowerCount(userID string) (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM follows WHERE followee_id = $1`, userID)
	return count, err
}

// FollowingCount returns how many users userID follows.
func (db *DB) FollowingCount(userID string) (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	return count, err
}

// FollowerIDs returns the ids of users following userID.
func (db *DB) FollowerIDs(userID string) ([]string, error) {
	var ids []string
	err := db.Select(&ids,
		`SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY created_at DESC`, userID)
	return ids, err
}

// Followers returns the users following userID.
func (db *DB) Followers(userID string) ([]UserRef, error) {
	query := `
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY u.username
	`
	var users []UserRef
	err := db.Select(&users, query, userID)
	return users, err
}

// Following returns the users userID follows.
func (db *DB) Following(userID string) ([]UserRef, error) {
	query := `
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`
	var users []UserRef
	err := db.Select(&users, query, userID)
	return users, err
}
