package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/covidslayer/covidslayer-go/internal/api/middleware"
	"github.com/covidslayer/covidslayer-go/internal/api/request"
	"github.com/covidslayer/covidslayer-go/internal/api/response"
	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/services/game"
	"github.com/covidslayer/covidslayer-go/internal/services/stats"
)

// Timer bounds enforced at the request boundary
const (
	minTimer     = 10
	maxTimer     = 300
	defaultTimer = 60

	maxDecrement     = 60
	defaultDecrement = 1
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	engine       *game.Engine
	statsService *stats.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(engine *game.Engine, statsService *stats.Service) *GameHandler {
	return &GameHandler{
		engine:       engine,
		statsService: statsService,
	}
}

// Start handles POST /api/v1/games/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	req := request.StartGameRequest{Timer: defaultTimer}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
		if req.Timer == 0 {
			req.Timer = defaultTimer
		}
	}

	if req.Timer < minTimer || req.Timer > maxTimer {
		WriteError(w, model.ErrInvalidTimer)
		return
	}

	g, err := h.engine.CreateGame(r.Context(), player.ID, req.Timer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Active handles GET /api/v1/games/active
func (h *GameHandler) Active(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.engine.GetActiveGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	var resp response.ActiveGame
	if g != nil {
		full := response.GameFromModel(g)
		resp.ActiveGame = &full
	}
	response.JSON(w, http.StatusOK, resp)
}

// History handles GET /api/v1/games/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	games, err := h.engine.GetHistory(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.GameSummary, len(games))
	for i, g := range games {
		summaries[i] = response.GameSummaryFromModel(g)
	}
	response.JSON(w, http.StatusOK, response.History{Games: summaries})
}

// Stats handles GET /api/v1/games/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	playerStats, err := h.statsService.ComputeStats(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(playerStats))
}

// Forfeit handles POST /api/v1/games/forfeit
func (h *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.engine.ForfeitAll(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.loadOwnedGame(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Action handles POST /api/v1/games/{game_id}/action
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	g, err := h.loadOwnedGame(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	action := model.ActionType(req.Action)
	if !model.ValidAction(action) {
		WriteError(w, model.ErrInvalidAction)
		return
	}

	result, err := h.engine.ResolveAction(r.Context(), g.ID, action)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		PlayerHealth: result.PlayerHealth,
		CovidHealth:  result.CovidHealth,
		Status:       string(result.Status),
		Winner:       response.WinnerString(result.Winner),
		LastAction:   response.ActionLogFromModel(result.LastAction),
		GameEnded:    result.GameEnded,
	})
}

// Timer handles POST /api/v1/games/{game_id}/timer
func (h *GameHandler) Timer(w http.ResponseWriter, r *http.Request) {
	g, err := h.loadOwnedGame(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req := request.TimerRequest{DecrementBy: defaultDecrement}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
		if req.DecrementBy == 0 {
			req.DecrementBy = defaultDecrement
		}
	}

	if req.DecrementBy < 1 || req.DecrementBy > maxDecrement {
		WriteError(w, model.ErrInvalidDecrement)
		return
	}

	result, err := h.engine.Tick(r.Context(), g.ID, req.DecrementBy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TimerResponse{
		Timer:     result.Timer,
		Status:    string(result.Status),
		Winner:    response.WinnerString(result.Winner),
		GameEnded: result.GameEnded,
	})
}

// Logs handles GET /api/v1/games/{game_id}/logs
func (h *GameHandler) Logs(w http.ResponseWriter, r *http.Request) {
	g, err := h.loadOwnedGame(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	logs, err := h.engine.GetLogs(r.Context(), g.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	entries := make([]response.ActionLog, len(logs))
	for i, entry := range logs {
		entries[i] = response.ActionLogFromModel(entry)
	}
	response.JSON(w, http.StatusOK, response.Logs{Logs: entries})
}

// loadOwnedGame loads the routed game and verifies the caller owns it
func (h *GameHandler) loadOwnedGame(r *http.Request) (*model.GameRecord, error) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	g, err := h.engine.GetGame(r.Context(), gameID)
	if err != nil {
		return nil, err
	}

	if g.OwnerID != player.ID {
		return nil, model.ErrAccessDenied
	}

	return g, nil
}
