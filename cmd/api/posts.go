package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/content"
	"inkpress/internal/database"
	"inkpress/internal/ranking"
	"inkpress/internal/slug"
	"inkpress/internal/urlutil"
)

// userPostsPageSize is the default page size for a profile's post listing.
const userPostsPageSize = 6

// authorRef is the author projection included in post responses
type authorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// postItem is a single post in a listing response
type postItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Summary       string     `json:"summary"`
	CoverImage    string     `json:"coverImage"`
	Category      string     `json:"category"`
	Slug          string     `json:"slug"`
	CreatedAt     time.Time  `json:"createdAt"`
	Likes         []string   `json:"likes"`
	LikesCount    int        `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
	Author        *authorRef `json:"author"`
}

// listEnvelope is the paginated listing response
type listEnvelope struct {
	Posts       []postItem `json:"posts"`
	TotalPosts  int        `json:"totalPosts"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

// emptyEnvelope is the degenerate-but-well-formed response returned when the
// listing pipeline fails; the client UI never sees a malformed shape.
func emptyEnvelope() listEnvelope {
	return listEnvelope{Posts: []postItem{}, TotalPosts: 0, TotalPages: 0, CurrentPage: 1}
}

// postDetailResponse is a single post with its author populated
type postDetailResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Content    string     `json:"content"`
	CoverImage string     `json:"coverImage"`
	Category   string     `json:"category"`
	Slug       string     `json:"slug"`
	Shares     int        `json:"shares"`
	Likes      []string   `json:"likes"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Author     *authorRef `json:"author"`
}

// trendingItem is one entry of the trending feed
type trendingItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	CoverImage    string    `json:"coverImage"`
	Category      string    `json:"category"`
	Slug          string    `json:"slug"`
	CreatedAt     time.Time `json:"createdAt"`
	Author        authorRef `json:"author"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	Shares        int       `json:"shares"`
	TrendingScore int       `json:"trendingScore"`
}

// relatedItem is one related-post suggestion
type relatedItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	CoverImage      string    `json:"coverImage"`
	Category        string    `json:"category"`
	Slug            string    `json:"slug"`
	CreatedAt       time.Time `json:"createdAt"`
	Author          authorRef `json:"author"`
	LikesCount      int       `json:"likesCount"`
	CommentsCount   int       `json:"commentsCount"`
	SuggestionScore int       `json:"suggestionScore"`
	IsFallback      bool      `json:"isFallback"`
}

// parseListQuery extracts the listing plan from query parameters. Bad or
// missing numbers fall back to the defaults instead of erroring.
func parseListQuery(values url.Values) ranking.ListQuery {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))
	return ranking.ListQuery{
		Search:   values.Get("search"),
		Category: values.Get("category"),
		Sort:     ranking.ParseSortKey(values.Get("sort")),
		Page:     page,
		Limit:    limit,
	}.Normalize()
}

func toPostItems(rows []database.ListedPost) []postItem {
	items := make([]postItem, len(rows))
	for i, row := range rows {
		items[i] = postItem{
			ID:            row.ID,
			Title:         row.Title,
			Summary:       row.Summary,
			CoverImage:    row.CoverImage,
			Category:      row.Category,
			Slug:          row.Slug,
			CreatedAt:     row.CreatedAt,
			Likes:         []string(row.Likes),
			LikesCount:    row.LikesCount,
			CommentsCount: row.CommentsCount,
		}
		// Dangling author references leave the author null, not the row dropped
		if row.AuthorID != "" {
			items[i].Author = &authorRef{ID: row.AuthorID, Username: row.AuthorUsername}
		}
	}
	return items
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r.URL.Query())

	rows, total, err := s.db.ListPosts(q)
	if err != nil {
		log.Printf("Error running post listing pipeline: %v", err)
		writeJSON(w, http.StatusInternalServerError, emptyEnvelope())
		return
	}

	writeJSON(w, http.StatusOK, listEnvelope{
		Posts:       toPostItems(rows),
		TotalPosts:  total,
		TotalPages:  ranking.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
	})
}

func (s *Server) handleUserPosts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(userID); err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = userPostsPageSize
	}

	rows, total, err := s.db.ListUserPosts(userID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("Error listing posts for user %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, emptyEnvelope())
		return
	}

	writeJSON(w, http.StatusOK, listEnvelope{
		Posts:       toPostItems(rows),
		TotalPosts:  total,
		TotalPages:  ranking.TotalPages(total, limit),
		CurrentPage: page,
	})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	posts, err := s.trending.Trending()
	if err != nil {
		// The trending surface stays available with a degenerate response
		log.Printf("Error selecting trending posts: %v", err)
		writeJSON(w, http.StatusInternalServerError, []trendingItem{})
		return
	}

	items := make([]trendingItem, len(posts))
	for i, p := range posts {
		items[i] = trendingItem{
			ID:            p.ID,
			Title:         p.Title,
			Summary:       p.Summary,
			CoverImage:    p.CoverImage,
			Category:      p.Category,
			Slug:          p.Slug,
			CreatedAt:     p.CreatedAt,
			Author:        authorRef{ID: p.AuthorID, Username: p.AuthorUsername},
			LikesCount:    p.LikesCount,
			CommentsCount: p.CommentsCount,
			Shares:        p.Shares,
			TrendingScore: p.TrendingScore,
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleRelatedPosts(w http.ResponseWriter, r *http.Request) {
	post, err := s.db.GetPostByIDOrSlug(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error resolving post for related lookup: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	result, err := s.recommender.Related(post.ID, post.Category)
	if err != nil {
		log.Printf("Error computing related posts for %s: %v", post.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	items := make([]relatedItem, len(result.Posts))
	for i, p := range result.Posts {
		items[i] = relatedItem{
			ID:              p.ID,
			Title:           p.Title,
			Summary:         p.Summary,
			CoverImage:      p.CoverImage,
			Category:        p.Category,
			Slug:            p.Slug,
			CreatedAt:       p.CreatedAt,
			Author:          authorRef{ID: p.AuthorID, Username: p.AuthorUsername},
			LikesCount:      p.LikesCount,
			CommentsCount:   p.CommentsCount,
			SuggestionScore: p.SuggestionScore,
			IsFallback:      p.IsFallback,
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func toDetailResponse(post *database.PostDetail) postDetailResponse {
	resp := postDetailResponse{
		ID:         post.ID,
		Title:      post.Title,
		Summary:    post.Summary,
		Content:    post.Content,
		CoverImage: post.CoverImage,
		Category:   post.Category,
		Slug:       post.Slug,
		Shares:     post.Shares,
		Likes:      []string(post.Likes),
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
		Author:     &authorRef{ID: post.AuthorID, Username: post.AuthorUsername},
	}
	if resp.Likes == nil {
		resp.Likes = []string{}
	}
	return resp
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.db.GetPostByIDOrSlug(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching post: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(post))
}

type postRequest struct {
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Content    string  `json:"content"`
	CoverImage *string `json:"coverImage"`
	Category   string  `json:"category"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		writeMessage(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		summary = content.Excerpt(req.Content, content.DefaultExcerptLen)
	}

	cover := ""
	if req.CoverImage != nil && strings.TrimSpace(*req.CoverImage) != "" {
		normalized, err := urlutil.NormalizeImageURL(strings.TrimSpace(*req.CoverImage))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid cover image URL")
			return
		}
		cover = normalized
	} else if img := content.FirstImage(req.Content); img != "" {
		// Derived cover images are best effort; silently dropped if bogus
		if normalized, err := urlutil.NormalizeImageURL(img); err == nil {
			cover = normalized
		}
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = ranking.DefaultCategory
	}

	post := &database.Post{
		ID:         uuid.New().String(),
		Title:      title,
		Summary:    summary,
		Content:    req.Content,
		CoverImage: cover,
		Category:   category,
		AuthorID:   userID,
	}

	uniqueSlug, err := s.db.UniqueSlug(slug.Make(title), post.ID)
	if err != nil {
		log.Printf("Error assigning slug: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	post.Slug = uniqueSlug

	if err := s.db.CreatePost(post); err != nil {
		log.Printf("Error creating post: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	author, _ := s.db.GetUserByID(userID)
	resp := postDetailResponse{
		ID:         post.ID,
		Title:      post.Title,
		Summary:    post.Summary,
		Content:    post.Content,
		CoverImage: post.CoverImage,
		Category:   post.Category,
		Slug:       post.Slug,
		Likes:      []string{},
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
	if author != nil {
		resp.Author = &authorRef{ID: author.ID, Username: author.Username}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	existing, err := s.db.GetPostByIDOrSlug(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching post for update: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if existing.AuthorID != userID {
		writeMessage(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post := existing.Post
	titleChanged := false
	if t := strings.TrimSpace(req.Title); t != "" && t != post.Title {
		post.Title = t
		titleChanged = true
	}
	if v := strings.TrimSpace(req.Summary); v != "" {
		post.Summary = v
	}
	if strings.TrimSpace(req.Content) != "" {
		post.Content = req.Content
	}
	if v := strings.TrimSpace(req.Category); v != "" {
		post.Category = v
	}
	// coverImage follows provided-vs-absent semantics: an explicit empty
	// string clears it, a missing field leaves it untouched
	if req.CoverImage != nil {
		cover := strings.TrimSpace(*req.CoverImage)
		if cover == "" {
			post.CoverImage = ""
		} else {
			normalized, err := urlutil.NormalizeImageURL(cover)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid cover image URL")
				return
			}
			post.CoverImage = normalized
		}
	}

	// Slug regenerates whenever the title changes, re-checked for uniqueness
	if titleChanged || post.Slug == "" {
		uniqueSlug, err := s.db.UniqueSlug(slug.Make(post.Title), post.ID)
		if err != nil {
			log.Printf("Error reassigning slug: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		post.Slug = uniqueSlug
	}

	if err := s.db.UpdatePost(&post); err != nil {
		log.Printf("Error updating post: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	updated := &database.PostDetail{Post: post, Likes: existing.Likes, AuthorUsername: existing.AuthorUsername}
	writeJSON(w, http.StatusOK, toDetailResponse(updated))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	post, err := s.db.GetPostByIDOrSlug(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching post for delete: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if post.AuthorID != userID {
		writeMessage(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	// Comments are not cascaded; the janitor sweeps orphans out of band
	if err := s.db.DeletePost(post.ID); err != nil {
		log.Printf("Error deleting post: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Post removed"})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	count, liked, err := s.db.ToggleLike(chi.URLParam(r, "id"), userID)
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error toggling like: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"likes": count, "liked": liked})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	shares, err := s.db.IncrementShares(chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error incrementing shares: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"shares": shares})
}
