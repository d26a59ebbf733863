package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/database"
)

// commentItem is a single comment in a response
type commentItem struct {
	ID        string     `json:"id"`
	PostID    string     `json:"postId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    *authorRef `json:"author"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	post, err := s.db.GetPostByIDOrSlug(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error resolving post for comments: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	comments, err := s.db.ListComments(post.ID)
	if err != nil {
		log.Printf("Error listing comments: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	items := make([]commentItem, len(comments))
	for i, c := range comments {
		items[i] = commentItem{
			ID:        c.ID,
			PostID:    c.PostID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
		if c.AuthorID != "" {
			items[i].Author = &authorRef{ID: c.AuthorID, Username: c.AuthorUsername}
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeMessage(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	post, err := s.db.GetPostByIDOrSlug(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error resolving post for comment: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	comment := &database.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  strings.TrimSpace(req.Content),
	}
	if err := s.db.AddComment(comment); err != nil {
		log.Printf("Error adding comment: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	item := commentItem{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if author, err := s.db.GetUserByID(userID); err == nil {
		item.Author = &authorRef{ID: author.ID, Username: author.Username}
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	commentID := chi.URLParam(r, "commentID")
	if _, err := uuid.Parse(commentID); err != nil {
		writeMessage(w, http.StatusNotFound, "Comment not found")
		return
	}

	comment, err := s.db.GetComment(commentID)
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching comment: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if comment.AuthorID != userID {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := s.db.DeleteComment(commentID); err != nil && !errors.Is(err, database.ErrNotFound) {
		log.Printf("Error deleting comment: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}
