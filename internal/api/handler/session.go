package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tiletally/tiletally-go/internal/api/apierr"
	"github.com/tiletally/tiletally-go/internal/api/request"
	"github.com/tiletally/tiletally-go/internal/api/response"
	"github.com/tiletally/tiletally-go/internal/model"
	"github.com/tiletally/tiletally-go/internal/session"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	controller *session.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *session.Controller) *SessionHandler {
	return &SessionHandler{controller: controller}
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["player_id"])
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.Create(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.SessionFromModel(s))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.Get(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// SetPlayerCount handles PUT /api/v1/sessions/{id}/player-count
func (h *SessionHandler) SetPlayerCount(w http.ResponseWriter, r *http.Request) {
	var req request.SetPlayerCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.controller.SetPlayerCount(r.Context(), sessionID(r), req.Count)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// BeginNaming handles POST /api/v1/sessions/{id}/naming
func (h *SessionHandler) BeginNaming(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.BeginNaming(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// RenamePlayer handles PATCH /api/v1/sessions/{id}/players/{player_id}/name
func (h *SessionHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	var req request.RenamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.controller.RenamePlayer(r.Context(), sessionID(r), playerID(r), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// SetAvatar handles PATCH /api/v1/sessions/{id}/players/{player_id}/avatar
func (h *SessionHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req request.SetAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.controller.SetAvatar(r.Context(), sessionID(r), playerID(r), req.Avatar)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// StartPlaying handles POST /api/v1/sessions/{id}/play
func (h *SessionHandler) StartPlaying(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.StartPlaying(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// BackToSetup handles POST /api/v1/sessions/{id}/setup
func (h *SessionHandler) BackToSetup(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.BackToSetup(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// SetInput handles PUT /api/v1/sessions/{id}/input
func (h *SessionHandler) SetInput(w http.ResponseWriter, r *http.Request) {
	var req request.SetInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.controller.SetInput(r.Context(), sessionID(r), req.Text)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// AddTurn handles POST /api/v1/sessions/{id}/turns
func (h *SessionHandler) AddTurn(w http.ResponseWriter, r *http.Request) {
	var req request.AddTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.controller.AddTurn(r.Context(), sessionID(r), req.Points)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.SessionFromModel(s))
}

// UndoLast handles DELETE /api/v1/sessions/{id}/turns/last
func (h *SessionHandler) UndoLast(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller.UndoLast(r.Context(), sessionID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Reset handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := h.controller.Reset(r.Context(), sessionID(r)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Palette handles GET /api/v1/palette
func (h *SessionHandler) Palette(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Palette{Avatars: model.AvatarPalette})
}
