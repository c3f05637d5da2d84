package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/billsplit/docs"
	"github.com/fkhayef/billsplit/internal/config"
	"github.com/fkhayef/billsplit/internal/database"
	"github.com/fkhayef/billsplit/internal/session"
	"github.com/fkhayef/billsplit/internal/split"
	"github.com/fkhayef/billsplit/internal/user"
	"github.com/fkhayef/billsplit/pkg/logging"
	mw "github.com/fkhayef/billsplit/pkg/middleware"
)

// @title        Billsplit API
// @version      1.0
// @description  Split a shared bill evenly or by custom amounts and keep a per-user session history.
// @BasePath     /api/v1
func main() {
	logging.Setup()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Connected to database")

	// Split strategy factory
	splitFactory := split.NewFactory()

	// User feature (credential store + tokens)
	tokens := user.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, tokens)
	userHandler := user.NewHandler(userService)

	// Session feature (split computation + history ledger)
	sessionRepo := session.NewRepository(db)
	sessionService := session.NewService(sessionRepo, splitFactory)
	sessionHandler := session.NewHandler(sessionService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.Routes())

		// Split computation and session history require a logged-in user
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(tokens))
			r.Mount("/splits", sessionHandler.SplitRoutes())
			r.Mount("/sessions", sessionHandler.Routes())
		})
	})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
