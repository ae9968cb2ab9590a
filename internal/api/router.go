package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/covidslayer/covidslayer-go/internal/api/handler"
	apimiddleware "github.com/covidslayer/covidslayer-go/internal/api/middleware"
	"github.com/covidslayer/covidslayer-go/internal/middleware"
	"github.com/covidslayer/covidslayer-go/internal/services/auth"
	"github.com/covidslayer/covidslayer-go/internal/services/game"
	"github.com/covidslayer/covidslayer-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	GameEngine   *game.Engine
	StatsService *stats.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameEngine, cfg.StatsService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required to sign up or log in)
	api.HandleFunc("/auth/signup", playerHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", playerHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/profile", playerHandler.Profile).Methods(http.MethodGet)

	// Game routes (all require auth). Fixed paths are registered before the
	// {game_id} routes so "active" and friends never match as IDs.
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/active", gameHandler.Active).Methods(http.MethodGet)
	games.HandleFunc("/history", gameHandler.History).Methods(http.MethodGet)
	games.HandleFunc("/stats", gameHandler.Stats).Methods(http.MethodGet)
	games.HandleFunc("/forfeit", gameHandler.Forfeit).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/action", gameHandler.Action).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/timer", gameHandler.Timer).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/logs", gameHandler.Logs).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
