// Package auth is the identity provider: Postgres-backed accounts with
// bcrypt passwords and JWT session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

const bcryptCost = 12

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// UserRepository persists and looks up users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// Service implements sign-up, sign-in and token verification.
type Service struct {
	repo   UserRepository
	tokens *TokenManager
	log    *slog.Logger
}

// NewService creates an auth service.
func NewService(repo UserRepository, tokens *TokenManager, log *slog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, log: log}
}

// SignUp registers an email/password account and signs the first token pair.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (domain.User, domain.TokenPair, error) {
	if len(password) < MinPasswordLength {
		return domain.User{}, domain.TokenPair{}, apperrors.InvalidInput(
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		DisplayName:  displayName,
		Provider:     domain.ProviderEmail,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	s.log.Info("user registered", slog.String("user_id", user.ID))
	return user, pair, nil
}

// SignIn verifies credentials and signs a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, apperrors.Unauthorized("invalid email or password")
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if user.Provider != domain.ProviderEmail {
		return domain.User{}, domain.TokenPair{}, apperrors.Unauthorized("account uses a federated provider")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.TokenPair{}, apperrors.Unauthorized("invalid email or password")
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// FederatedSignIn signs in a user asserted by an external provider,
// creating the account on first sign-in. The provider popup flow itself
// lives in the client; this endpoint trusts its assertion.
func (s *Service) FederatedSignIn(ctx context.Context, email, displayName string) (domain.User, domain.TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		user, err = s.repo.Create(ctx, domain.User{
			Email:       email,
			DisplayName: displayName,
			Provider:    domain.ProviderGoogle,
		})
	}
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// CurrentUser resolves the user behind an access token.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (domain.User, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.User{}, apperrors.Unauthorized("account no longer exists")
		}
		return domain.User{}, err
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.TokenPair{}, apperrors.Unauthorized("account no longer exists")
		}
		return domain.TokenPair{}, err
	}
	return s.tokens.IssuePair(user)
}
