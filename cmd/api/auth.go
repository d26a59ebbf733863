package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/database"
)

const minPasswordLen = 6

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	user := &database.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.CreateUser(user); err != nil {
		switch {
		case errors.Is(err, database.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, database.ErrUsernameTaken):
			writeMessage(w, http.StatusBadRequest, "Username already taken")
		default:
			log.Printf("Error creating user: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.db.GetUserByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("Error fetching user by email: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	user, err := s.db.GetUserByID(userID)
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching user: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(userID); err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := s.db.GetUserByID(userID)
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching user profile: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	followers, err := s.db.FollowerIDs(userID)
	if err != nil {
		log.Printf("Error listing followers: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	following, err := s.db.FollowingCount(userID)
	if err != nil {
		log.Printf("Error counting following: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if followers == nil {
		followers = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":             user.ID,
		"username":       user.Username,
		"followersCount": len(followers),
		"followingCount": following,
		"followers":      followers,
	})
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	followerID, _ := auth.UserIDFrom(r.Context())

	targetID := chi.URLParam(r, "userID")
	if targetID == followerID {
		writeMessage(w, http.StatusBadRequest, "You can't follow yourself")
		return
	}
	if _, err := uuid.Parse(targetID); err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	exists, err := s.db.UserExists(targetID)
	if err != nil {
		log.Printf("Error checking user: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	following, followerCount, err := s.db.ToggleFollow(followerID, targetID)
	if err != nil {
		log.Printf("Error toggling follow: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"following":      following,
		"followersCount": followerCount,
	})
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	s.writeFollowList(w, chi.URLParam(r, "userID"), s.db.Followers)
}

func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	s.writeFollowList(w, chi.URLParam(r, "userID"), s.db.Following)
}

func (s *Server) writeFollowList(w http.ResponseWriter, userID string, list func(string) ([]database.UserRef, error)) {
	if _, err := uuid.Parse(userID); err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	users, err := list(userID)
	if err != nil {
		log.Printf("Error listing follow relations: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if users == nil {
		users = []database.UserRef{}
	}
	writeJSON(w, http.StatusOK, users)
}
