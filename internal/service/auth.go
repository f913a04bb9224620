package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/civreg/civreg/internal/domain"
)

// AuthService handles user registration and credential verification.
type AuthService struct {
	users      domain.UserRepository
	tokens     *TokenService
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed bearer token. Unknown
// usernames fail with domain.ErrNotFound, wrong passwords with
// domain.ErrUnauthorized; the two are distinguished on the wire (404 vs 401)
// to match the original contract.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
