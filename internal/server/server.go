// Package server wires the application together: database, services,
// handlers, routes, and the HTTP server lifecycle. It is the
// composition root — every dependency is constructed and connected
// here, nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/devconnect/internal/auth"
	"github.com/sakif/devconnect/internal/github"
	"github.com/sakif/devconnect/internal/handler"
	"github.com/sakif/devconnect/internal/middleware"
	sqliteRepo "github.com/sakif/devconnect/internal/repository/sqlite"
	"github.com/sakif/devconnect/internal/service"
)

// Config holds everything the server needs, assembled once in main
// from environment variables. No component reads the environment
// directly.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	GithubToken string // optional; raises the GitHub API rate limit
	TemplateDir string
	StaticDir   string
}

// Server owns the router and the database connection. The connection
// is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph:
//
//	sqlite.DB → services (auth, profile, post) → handlers → routes
//
// Construction fails fast on a bad JWT secret or an unopenable
// database — better at startup than on the first request.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db.Users(), s.db.Profiles(), tokens, passwords, s.logger)
	profileService := service.NewProfileService(s.db.Profiles(), s.logger)
	postService := service.NewPostService(s.db.Posts(), s.db.Users(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)
	githubHandler := handler.NewGithubHandler(github.NewClient(s.config.GithubToken), s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Page shell + static assets. The template dir is optional so the
	// API can run headless (tests, API-only deployments).
	if s.config.TemplateDir != "" {
		pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
		if err != nil {
			return fmt.Errorf("creating page handler: %w", err)
		}
		s.router.Get("/", pageHandler.HandleHome)

		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	s.router.Route("/api", func(r chi.Router) {
		// Registration and login are the only routes that mint tokens.
		r.Post("/users", authHandler.HandleRegister)
		r.Post("/auth", authHandler.HandleLogin)
		r.With(requireAuth).Get("/auth", authHandler.HandleMe)

		r.Route("/profile", func(r chi.Router) {
			// Public reads
			r.Get("/all", profileHandler.HandleList)
			r.Get("/user/{userID}", profileHandler.HandleGetByUserID)
			r.Get("/github/{username}", githubHandler.HandleRepos)

			// Authenticated profile management
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", profileHandler.HandleGetMine)
				r.Post("/", profileHandler.HandleUpsert)
				r.Delete("/", authHandler.HandleDeleteAccount)
				r.Put("/experience", profileHandler.HandleAddExperience)
				r.Delete("/experience/{entryID}", profileHandler.HandleRemoveExperience)
				r.Put("/education", profileHandler.HandleAddEducation)
				r.Delete("/education/{entryID}", profileHandler.HandleRemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", postHandler.HandleCreate)
			r.Get("/", postHandler.HandleList)
			r.Get("/{id}", postHandler.HandleGetByID)
			r.Delete("/{id}", postHandler.HandleDelete)
			r.Put("/like/{id}", postHandler.HandleLike)
			r.Delete("/unlike/{id}", postHandler.HandleUnlike)
			r.Post("/comment/{id}", postHandler.HandleAddComment)
			r.Delete("/comment/{id}/{commentID}", postHandler.HandleRemoveComment)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains
// in-flight requests (30s budget) and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
