package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/covidslayer/covidslayer-go/internal/dependencies/clock"
	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailExists        = errors.New("email already registered")
)

// Claims is the JWT payload issued on signup and login
type Claims struct {
	PlayerID string `json:"player_id"`
	jwt.RegisteredClaims
}

// AuthResult pairs a freshly issued token with its player
type AuthResult struct {
	Token  string
	Player model.Player
}

// Config holds configuration for the auth service
type Config struct {
	Secret        string
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// Service handles signup, login, and bearer-token validation
type Service struct {
	storage       storage.Storage
	clock         clock.Clock
	secret        []byte
	tokenDuration time.Duration
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		secret:        []byte(cfg.Secret),
		tokenDuration: cfg.TokenDuration,
	}
}

// Signup registers a new player account and issues a token. Emails are
// stored lowercased and must be unique.
func (s *Service) Signup(ctx context.Context, fullName, email, password, avatarURL string) (*AuthResult, error) {
	email = normalizeEmail(email)

	_, err := s.storage.GetPlayerByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if avatarURL == "" {
		avatarURL = defaultAvatarURL(email)
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:           model.PlayerID("p_" + uuid.NewString()),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		AvatarURL:    avatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return s.issueToken(player)
}

// Login authenticates a player by email and password and issues a token
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	player, err := s.storage.GetPlayerByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(player)
}

// ValidateToken verifies a bearer token and returns the player it names
func (s *Service) ValidateToken(tokenString string) (model.PlayerID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.PlayerID == "" {
		return "", ErrInvalidToken
	}

	return model.PlayerID(claims.PlayerID), nil
}

// GetPlayer loads a player by ID
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// issueToken signs a JWT for the player
func (s *Service) issueToken(player *model.Player) (*AuthResult, error) {
	now := s.clock.Now()
	claims := Claims{
		PlayerID: string(player.ID),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
			Subject:   string(player.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:  signed,
		Player: *player,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// defaultAvatarURL mirrors the dicebear avatar the frontend expects when a
// player signs up without one
func defaultAvatarURL(email string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", email)
}
