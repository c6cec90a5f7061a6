package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ananyapurwar/ALGOTRACK/internal/auth"
	"github.com/ananyapurwar/ALGOTRACK/internal/repo"
	"github.com/ananyapurwar/ALGOTRACK/internal/utils"
)

// Default accounts created by bootstrap. The admin password is fixed;
// rotate it through the admin surface after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"

	defaultTestUsername = "test"
	defaultTestPassword = "test123"
	defaultTestHandle   = "testhandle"
)

// EnsureDefaults creates the default admin account if it is absent.
// Idempotent; safe to run on every server start. A concurrent create
// losing the race on the unique constraint is treated as success.
func (s *UserService) EnsureDefaults(ctx context.Context) error {
	_, err := s.repo.GetByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("check admin user: %w", err)
	}
	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := s.repo.Create(ctx, DefaultAdminUsername, hash, nil, true); err != nil {
		if utils.IsPGUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

// ResetAndSeed wipes the user table and recreates the default admin and
// test accounts from scratch. Destructive; intended for fresh setup
// only and never run from the request path.
func (s *UserService) ResetAndSeed(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}
	adminHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}
	if _, err := s.repo.Create(ctx, DefaultAdminUsername, adminHash, nil, true); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	testHash, err := auth.HashPassword(defaultTestPassword)
	if err != nil {
		return err
	}
	handle := defaultTestHandle
	if _, err := s.repo.Create(ctx, defaultTestUsername, testHash, &handle, false); err != nil {
		return fmt.Errorf("seed test user: %w", err)
	}
	return nil
}
