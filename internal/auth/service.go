package auth

import (
	"log/slog"

	"github.com/jortega/finanzas/internal"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore looks up login credentials. Only active accounts are
// returned; the caller cannot distinguish a missing user from an
// inactive one.
type CredentialStore interface {
	GetCredentials(email string) (userID int64, passwordHash string, err error)
	GetActiveUser(userID int64) (*User, error)
}

type Service struct {
	store      CredentialStore
	tokens     TokenGenerator
	logger     *slog.Logger
	bcryptCost int
}

func NewService(store CredentialStore, tokens TokenGenerator, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:      store,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Authenticate validates credentials and returns a fresh token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	userID, storedHash, err := s.store.GetCredentials(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown or inactive user", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", userID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(userID, dto.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	s.logger.Info("user authenticated", "user_id", userID)
	return tokens, nil
}

// RefreshTokens validates the refresh token and rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	// the account may have been deactivated since the token was issued
	user, err := s.store.GetActiveUser(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(user.ID, user.Email)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

// GetActiveUser resolves the token subject to a live account.
func (s *Service) GetActiveUser(userID int64) (*User, error) {
	return s.store.GetActiveUser(userID)
}

// HashPassword creates a bcrypt hash, used by the seeder and user signup.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issueTokens(userID int64, email string) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "user_id", userID)
		return AuthTokens{}, internal.NewInternalError("could not issue tokens", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		s.logger.Error("failed to sign refresh token", "error", err, "user_id", userID)
		return AuthTokens{}, internal.NewInternalError("could not issue tokens", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
