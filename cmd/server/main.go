package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idoevents/api/internal/config"
	"github.com/idoevents/api/internal/database"
	"github.com/idoevents/api/internal/handler"
	"github.com/idoevents/api/internal/middleware"
	"github.com/idoevents/api/internal/repository"
	"github.com/idoevents/api/internal/service"
	"github.com/idoevents/api/pkg/token"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize token service
	tokenService, err := token.NewService(token.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize realtime hub
	hub := service.NewHub()
	defer hub.Close()

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Tokens:   tokenService,
	})

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo: eventRepo,
		Members:   userRepo,
		Hub:       hub,
	})

	commentService := service.NewCommentService(service.CommentServiceConfig{
		CommentRepo: commentRepo,
		Members:     userRepo,
		Hub:         hub,
	})

	// Seed the default admin account
	if err := authService.EnsureDefaultAdmin(ctx, service.AdminSeed{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	}); err != nil {
		slog.Error("failed to seed admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	commentHandler := handler.NewCommentHandler(commentService)
	streamHandler := handler.NewStreamHandler(hub)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)

	// Realtime stream (public; every connected client sees every broadcast)
	mux.HandleFunc("GET /api/stream", streamHandler.Stream)

	// Protected endpoints
	authMiddleware := middleware.Auth(tokenService)

	mux.Handle("GET /api/users", authMiddleware(http.HandlerFunc(authHandler.ListUsers)))

	mux.Handle("GET /api/events", authMiddleware(http.HandlerFunc(eventHandler.List)))
	mux.Handle("POST /api/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PUT /api/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /api/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))

	mux.Handle("GET /api/events/{eventId}/comments", authMiddleware(http.HandlerFunc(commentHandler.List)))
	mux.Handle("POST /api/events/{eventId}/comments", authMiddleware(http.HandlerFunc(commentHandler.Add)))

	mux.Handle("GET /api/statistics", authMiddleware(http.HandlerFunc(eventHandler.Statistics)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
