package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"inkpress/internal/auth"
	"inkpress/internal/config"
	"inkpress/internal/database"
	"inkpress/internal/ranking"
)

// Server wraps the HTTP server
type Server struct {
	db          *database.DB
	recommender *ranking.Recommender
	trending    *ranking.Selector
	tokens      *auth.TokenManager
	router      *chi.Mux
	config      *config.Config
}

func main() {
	// Optional .env for local development; production uses real env vars
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration (supports env vars)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database (log safe connection string without password)
	log.Printf("Connecting to database: %s", cfg.Database.DatabaseConnStringSafe())
	db, err := database.NewDB(cfg.Database.DatabaseConnString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	server := &Server{
		db:          db,
		recommender: ranking.NewRecommender(db),
		trending:    ranking.NewSelector(db),
		tokens:      tokens,
		router:      chi.NewRouter(),
		config:      cfg,
	}

	server.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	// Start server with or without TLS
	if cfg.Server.IsTLSEnabled() {
		log.Printf("Starting HTTPS server on %s", addr)
		if err := http.ListenAndServeTLS(addr, cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile, server.router); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	} else {
		log.Printf("Starting HTTP server on %s (TLS not configured)", addr)
		if err := http.ListenAndServe(addr, server.router); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

func (s *Server) setupRoutes() {
	// Middleware stack (order matters)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Security middleware
	s.router.Use(s.securityHeadersMiddleware)
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.rateLimitMiddleware)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.With(s.requireAuth).Get("/me", s.handleMe)
			r.Get("/users/{userID}", s.handleUserProfile)
			r.With(s.requireAuth).Post("/users/{userID}/follow", s.handleToggleFollow)
			r.Get("/users/{userID}/followers", s.handleFollowers)
			r.Get("/users/{userID}/following", s.handleFollowing)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Get("/trending", s.handleTrending)
			r.Get("/user/{userID}", s.handleUserPosts)
			r.With(s.requireAuth).Post("/", s.handleCreatePost)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetPost)
				r.Get("/related", s.handleRelatedPosts)
				r.With(s.requireAuth).Put("/", s.handleUpdatePost)
				r.With(s.requireAuth).Delete("/", s.handleDeletePost)
				r.With(s.requireAuth).Post("/like", s.handleToggleLike)
				r.Post("/share", s.handleShare)

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", s.handleListComments)
					r.With(s.requireAuth).Post("/", s.handleAddComment)
					r.With(s.requireAuth).Delete("/{commentID}", s.handleDeleteComment)
				})
			})
		})
	})

	s.router.Get("/health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
