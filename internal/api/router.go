package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tiletally/tiletally-go/internal/api/apierr"
	"github.com/tiletally/tiletally-go/internal/api/handler"
	"github.com/tiletally/tiletally-go/internal/middleware"
	"github.com/tiletally/tiletally-go/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.SessionController)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session lifecycle
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Reset).Methods(http.MethodDelete)

	// Setup stage
	api.HandleFunc("/sessions/{id}/player-count", sessionHandler.SetPlayerCount).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/naming", sessionHandler.BeginNaming).Methods(http.MethodPost)

	// Naming stage
	api.HandleFunc("/sessions/{id}/players/{player_id}/name", sessionHandler.RenamePlayer).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{id}/players/{player_id}/avatar", sessionHandler.SetAvatar).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{id}/play", sessionHandler.StartPlaying).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/setup", sessionHandler.BackToSetup).Methods(http.MethodPost)

	// Play stage
	api.HandleFunc("/sessions/{id}/input", sessionHandler.SetInput).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/turns", sessionHandler.AddTurn).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/turns/last", sessionHandler.UndoLast).Methods(http.MethodDelete)

	// Static data
	api.HandleFunc("/palette", sessionHandler.Palette).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
