// Package server wires the application together: database, services,
// handlers, middleware, and routes, plus graceful startup and shutdown.
// It is the composition root — nothing outside this package and main
// constructs cross-layer dependencies.
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

	"github.com/sakif/krishi-mitra/internal/ai"
	"github.com/sakif/krishi-mitra/internal/auth"
	"github.com/sakif/krishi-mitra/internal/handler"
	"github.com/sakif/krishi-mitra/internal/middleware"
	sqliteRepo "github.com/sakif/krishi-mitra/internal/repository/sqlite"
	"github.com/sakif/krishi-mitra/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// Initial passwords for the seeded accounts. Empty skips seeding
	// that account.
	AdminPassword  string
	FarmerPassword string
}

// Server owns the router, the database connection, and the HTTP
// lifecycle. The database is closed during shutdown in Start.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database → services →
// handlers → routes. The AI generator is built by the caller and may be
// nil, in which case the AI routes respond 503.
func New(cfg Config, logger *slog.Logger, generator ai.Generator) (*Server, error) {
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

	if err := s.setupRoutes(generator); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the service and handler
// layers, and registers every route.
//
//	public:         /api/signup /api/login /api/request-password-otp
//	                /api/verify-password-otp /api/reset-password /api/products
//	authenticated:  /api/users/me /api/chats /api/chats/{id} /api/ai/*
//	admin:          /api/admin/users /api/admin/users/{username} /api/admin/stats
func (s *Server) setupRoutes(generator ai.Generator) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: s.config.JWTSecret})
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, s.db.OTPs(), tokens, passwords, s.logger, nil)
	chatService := service.NewChatService(s.db.Chats(), s.logger)
	adminService := service.NewAdminService(s.db, s.db.Chats(), s.logger)
	catalogService := service.NewCatalogService()

	if err := authService.SeedDefaults(context.Background(), s.config.AdminPassword, s.config.FarmerPassword); err != nil {
		return fmt.Errorf("seeding default accounts: %w", err)
	}

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(authService, s.logger)
	chatHandler := handler.NewChatHandler(chatService, s.logger)
	adminHandler := handler.NewAdminHandler(adminService, s.logger)
	productHandler := handler.NewProductHandler(catalogService, s.logger)
	aiHandler := handler.NewAIHandler(generator, s.logger)

	requireAuth := auth.RequireAuth(tokens, s.db)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes. The catalog is static data and needs no login.
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/request-password-otp", authHandler.HandleRequestOTP)
		r.Post("/verify-password-otp", authHandler.HandleVerifyOTP)
		r.Post("/reset-password", authHandler.HandleResetPassword)
		r.Get("/products", productHandler.HandleSearch)

		// Routes requiring a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/me", userHandler.HandleMe)
			r.Put("/users/me", userHandler.HandleUpdateMe)

			r.Get("/chats", chatHandler.HandleList)
			r.Post("/chats", chatHandler.HandleSave)
			r.Delete("/chats/{id}", chatHandler.HandleDelete)
			r.Delete("/chats", chatHandler.HandleDeleteAll)

			r.Post("/ai/generate-stream", aiHandler.HandleGenerateStream)
			r.Post("/ai/generate-title", aiHandler.HandleGenerateTitle)
			r.Post("/ai/generate-image", aiHandler.HandleGenerateImage)
		})

		// Admin panel, gated on the admin role.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(auth.RequireAdmin())

			r.Get("/admin/users", adminHandler.HandleListUsers)
			r.Delete("/admin/users/{username}", adminHandler.HandleDeleteUser)
			r.Get("/admin/stats", adminHandler.HandleStats)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
//
// WriteTimeout is generous because the AI streaming endpoint holds a
// response open for as long as the model keeps producing chunks.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
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
