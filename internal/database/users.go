package database

import "database/sql"

// CreateUser inserts a new account, mapping unique violations onto the
// taken-email/taken-username sentinels.
func (db *DB) CreateUser(user *User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := db.QueryRow(query, user.ID, user.Username, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
	if isUniqueViolation(err, "email") {
		return ErrEmailTaken
	}
	if isUniqueViolation(err, "username") {
		return ErrUsernameTaken
	}
	return err
}

// GetUserByEmail fetches an account by email.
func (db *DB) GetUserByEmail(email string) (*User, error) {
	var user User
	err := db.Get(&user,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches an account by id.
func (db *DB) GetUserByID(id string) (*User, error) {
	var user User
	err := db.Get(&user,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserExists reports whether an account row exists for the given id.
func (db *DB) UserExists(id string) (bool, error) {
	var exists bool
	err := db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
	return exists, err
}
