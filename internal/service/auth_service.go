package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeroongit/Smart-news-hub/internal/auth"
	"github.com/zeroongit/Smart-news-hub/internal/domain"
	"github.com/zeroongit/Smart-news-hub/internal/logger"
	"github.com/zeroongit/Smart-news-hub/internal/repository"
	"github.com/zeroongit/Smart-news-hub/internal/validator"
)

// AuthService handles registration and login. It hands out the signed
// identity tokens that the middleware later turns back into a
// domain.Identity.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	validator  *validator.Validator
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, v *validator.Validator, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		validator:  v,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account with the user role. A taken email
// surfaces as a Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := s.validator.ValidateRegistration(in.Email, in.Name, in.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "User registered",
		slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and returns the user with a signed token.
// A missing account and a wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	logger.InfoContext(ctx, "User logged in",
		slog.String("user_id", user.ID))
	return user, token, nil
}
