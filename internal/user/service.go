package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmptyUsername      = errors.New("username is required")
)

// Service handles account business logic
type Service struct {
	store  Store
	tokens *TokenManager
}

// NewService creates a new user service with dependencies injected
func NewService(store Store, tokens *TokenManager) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
	}
}

// Register creates a new account, storing only a bcrypt hash of the password
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	existing, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.Create(ctx, username, string(hash))
}

// Login verifies the credentials and returns a signed token on success.
// A missing user and a wrong password produce the same error, so responses
// don't leak which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	u, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, u, nil
}
