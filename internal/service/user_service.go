package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ananyapurwar/ALGOTRACK/internal/auth"
	dom "github.com/ananyapurwar/ALGOTRACK/internal/domain"
	"github.com/ananyapurwar/ALGOTRACK/internal/repo"
	"github.com/ananyapurwar/ALGOTRACK/internal/utils"
)

// ErrInvalidCredentials covers both unknown username and wrong password,
// deliberately indistinguishable so login never leaks which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

var ErrUsernameTaken = errors.New("username already taken")
var ErrMissingFields = errors.New("required field missing")

// UserService handles user auth logic over the credential store.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// ValidateCredentials checks username and password; returns user if valid.
// Unknown usernames and password mismatches fail with the same error.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new non-admin user with a hashed password. The
// store's unique constraint is the sole authority on duplicates; no
// pre-check is made.
func (s *UserService) Register(ctx context.Context, username, password, handle string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrMissingFields
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return dom.User{}, err
	}
	var h *string
	if handle != "" {
		h = &handle
	}
	u, err := s.repo.Create(ctx, username, hash, h, false)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// UpdateHandle sets a new handle for the user in the store.
func (s *UserService) UpdateHandle(ctx context.Context, userID int64, handle string) error {
	if strings.TrimSpace(handle) == "" {
		return ErrMissingFields
	}
	return s.repo.UpdateHandle(ctx, userID, handle)
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]dom.User, error) {
	return s.repo.List(ctx)
}
