package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/covidslayer/covidslayer-go/internal/api/middleware"
	"github.com/covidslayer/covidslayer-go/internal/api/request"
	"github.com/covidslayer/covidslayer-go/internal/api/response"
	"github.com/covidslayer/covidslayer-go/internal/services/auth"
)

// PlayerHandler handles auth and profile endpoints
type PlayerHandler struct {
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *PlayerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if len(strings.TrimSpace(req.FullName)) < 2 {
		WriteError(w, NewInvalidRequestError("fullname must be at least 2 characters"))
		return
	}
	if !strings.Contains(req.Email, "@") {
		WriteError(w, NewInvalidRequestError("a valid email is required"))
		return
	}
	if len(req.Password) < 6 {
		WriteError(w, NewInvalidRequestError("password must be at least 6 characters"))
		return
	}

	result, err := h.authService.Signup(r.Context(), req.FullName, req.Email, req.Password, req.Avatar)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromResult(result))
}

// Login handles POST /api/v1/auth/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromResult(result))
}

// Profile handles GET /api/v1/auth/profile
func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
