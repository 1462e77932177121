package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alpersoy/polls/internal/pkg/apperrors"
	"github.com/alpersoy/polls/internal/pkg/auth"
)

// AuthService handles admin authentication. The single admin account
// comes from configuration; the plain password is hashed once at
// construction so login always compares against a bcrypt hash.
type AuthService struct {
	jwtService   *auth.JWTService
	username     string
	passwordHash string
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(jwtService *auth.JWTService, username, password string, logger zerolog.Logger) (*AuthService, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		jwtService:   jwtService,
		username:     username,
		passwordHash: passwordHash,
		logger:       logger,
	}, nil
}

// Login validates admin credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (accessToken string, expiresIn int, err error) {
	if username != s.username || !auth.CheckPassword(s.passwordHash, password) {
		s.logger.Warn().Str("username", username).Msg("Failed login attempt")
		return "", 0, apperrors.ErrInvalidCredentials
	}

	accessToken, expiresIn, err = s.jwtService.GenerateToken(username)
	if err != nil {
		return "", 0, err
	}

	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return accessToken, expiresIn, nil
}
