package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carprice/internal/config"
	"carprice/internal/domain"
)

const tokenAudience = "carprice"

// Claims represents the JWT claims. SessionID scopes batch state.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
}

// TokenResponse is returned by a successful login or refresh.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	SessionID   string    `json:"session_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*TokenResponse, error)
	Refresh(ctx context.Context, claims *Claims) (*TokenResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	username     string
	passwordHash []byte
	cfg          config.AuthConfig
}

// NewAuthService creates a new AuthService for the single configured operator.
// A plain password from config is hashed once here unless a bcrypt hash is
// configured directly.
func NewAuthService(cfg config.AuthConfig) (AuthService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth.NewAuthService: secret is required")
	}
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth.NewAuthService: hashing password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("auth.NewAuthService: invalid password hash: %w", err)
	}
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = 12 * time.Hour
	}
	return &authService{
		username:     cfg.Username,
		passwordHash: hash,
		cfg:          cfg,
	}, nil
}

func (s *authService) Login(_ context.Context, input LoginInput) (*TokenResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(input.Username, uuid.New().String())
}

// Refresh issues a fresh token for the same session so batch state survives.
func (s *authService) Refresh(_ context.Context, claims *Claims) (*TokenResponse, error) {
	if claims == nil || claims.SessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.issueToken(claims.Username, claims.SessionID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) issueToken(username, sessionID string) (*TokenResponse, error) {
	now := time.Now()
	expiry := now.Add(s.cfg.TokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{tokenAudience},
		},
		SessionID: sessionID,
		Username:  username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		SessionID:   sessionID,
		ExpiresAt:   expiry,
	}, nil
}
