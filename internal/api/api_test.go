package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covidslayer/covidslayer-go/internal/api"
	"github.com/covidslayer/covidslayer-go/internal/api/response"
	"github.com/covidslayer/covidslayer-go/internal/factory"
	"github.com/covidslayer/covidslayer-go/internal/services/auth"
	"github.com/covidslayer/covidslayer-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{
			Secret:        "api-test-secret",
			TokenDuration: time.Hour,
		},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		GameEngine:   app.GameEngine,
		StatsService: app.StatsService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// signup registers a player and returns the auth token
func (ts *testServer) signup(t *testing.T, name, email string) string {
	t.Helper()

	body := map[string]string{
		"fullname": name,
		"email":    email,
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

// startGame starts a game for the token's player and returns its ID
func (ts *testServer) startGame(t *testing.T, token string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/games/start", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)

	signupBody := map[string]string{
		"fullname": "Alice Smith",
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup", signupBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var signupResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signupResp))
	assert.Equal(t, "Alice Smith", signupResp.Player.FullName)
	assert.NotEmpty(t, signupResp.Token)

	loginBody := map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, signupResp.Player.ID, loginResp.Player.ID)
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{
		"fullname": "Alice Smith",
		"email":    "alice@example.com",
		"password": "short",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "Alice Smith", "alice@example.com")

	body := map[string]string{
		"fullname": "Other Alice",
		"email":    "alice@example.com",
		"password": "different1",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMAIL_EXISTS")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "Alice Smith", "alice@example.com")

	body := map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpass",
	}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")

	rr := ts.request(http.MethodGet, "/api/v1/auth/profile", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Alice Smith", resp.FullName)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/profile"},
		{http.MethodPost, "/api/v1/games/start"},
		{http.MethodGet, "/api/v1/games/active"},
		{http.MethodGet, "/api/v1/games/stats"},
	}

	for _, p := range paths {
		rr := ts.request(p.method, p.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, p.path)
	}

	rr := ts.request(http.MethodGet, "/api/v1/auth/profile", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStartGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")

	rr := ts.request(http.MethodPost, "/api/v1/games/start", map[string]int{"timer": 120}, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.PlayerHealth)
	assert.Equal(t, 100, resp.CovidHealth)
	assert.Equal(t, 120, resp.Timer)
	assert.Equal(t, "IN_PROGRESS", resp.Status)
}

func TestStartGameRejectsBadTimer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")

	rr := ts.request(http.MethodPost, "/api/v1/games/start", map[string]int{"timer": 5}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/start", map[string]int{"timer": 301}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStartGameConflictsWithActive(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/start", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ACTIVE_GAME_EXISTS")
}

func TestActiveGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")

	rr := ts.request(http.MethodGet, "/api/v1/games/active", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var empty response.ActiveGame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.Nil(t, empty.ActiveGame)

	gameID := ts.startGame(t, token)

	rr = ts.request(http.MethodGet, "/api/v1/games/active", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var active response.ActiveGame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &active))
	require.NotNil(t, active.ActiveGame)
	assert.Equal(t, gameID, active.ActiveGame.ID)
}

func TestGameAction(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "ATTACK"}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ActionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.LessOrEqual(t, resp.PlayerHealth, 100)
	assert.LessOrEqual(t, resp.CovidHealth, 100)
	assert.Equal(t, "ATTACK", resp.LastAction.Type)
	assert.NotEmpty(t, resp.LastAction.Description)
}

func TestGameActionInvalid(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "SNEEZE"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_ACTION")
}

func TestGameActionAfterEnd(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "SURRENDER"}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ActionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.GameEnded)
	assert.Equal(t, "PLAYER_LOST", resp.Status)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "ATTACK"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_ALREADY_ENDED")
}

func TestGameTimer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/timer", map[string]int{"decrement_by": 10}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.TimerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 50, resp.Timer)
	assert.False(t, resp.GameEnded)
}

func TestGameTimerRejectsBadDecrement(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/timer", map[string]int{"decrement_by": 61}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameTimerExpiryEndsGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	// 60s default timer, one tick of 60 exhausts it; equal starting health
	// means a draw
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/timer", map[string]int{"decrement_by": 60}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.TimerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Timer)
	assert.True(t, resp.GameEnded)
	assert.Equal(t, "DRAW", resp.Status)
}

func TestGameLogs(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	gameID := ts.startGame(t, token)

	_ = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "ATTACK"}, token)
	_ = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "HEAL"}, token)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/logs", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Logs
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Logs, 2)
	// Newest first
	assert.Equal(t, "HEAL", resp.Logs[0].Type)
	assert.Equal(t, "ATTACK", resp.Logs[1].Type)
}

func TestGameOwnershipEnforced(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.signup(t, "Alice Smith", "alice@example.com")
	bobToken := ts.signup(t, "Bob Jones", "bob@example.com")
	gameID := ts.startGame(t, aliceToken)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "ACCESS_DENIED")

	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "ATTACK"}, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGameNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")

	rr := ts.request(http.MethodGet, "/api/v1/games/nonexistent", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestForfeitAndHistory(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")
	ts.startGame(t, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/forfeit", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/history", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.History
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Games, 1)
	assert.Equal(t, "PLAYER_LOST", resp.Games[0].Status)
	require.NotNil(t, resp.Games[0].Winner)
	assert.Equal(t, "covid", *resp.Games[0].Winner)
}

func TestStatsAfterGames(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Alice Smith", "alice@example.com")

	// No games yet
	rr := ts.request(http.MethodGet, "/api/v1/games/stats", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var empty response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.Equal(t, 0, empty.TotalGames)

	// Play one game to a surrender
	gameID := ts.startGame(t, token)
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/action", map[string]string{"action": "SURRENDER"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/stats", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Surrenders)
	assert.Equal(t, 0, stats.WinRate)
}
