package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthnet/healthnet/internal/platform/auth"
)

type Service struct {
	accounts AccountRepository
}

func NewService(accounts AccountRepository) *Service {
	return &Service{accounts: accounts}
}

// CreateAccount hashes the password and persists a new account.
func (s *Service) CreateAccount(ctx context.Context, username, password string, isStaff bool) (*Account, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if existing, err := s.accounts.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, fmt.Errorf("username already taken: %s", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &Account{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      isStaff,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate checks credentials and the active flag. The returned state
// drives the login page: invalid credentials and unknown usernames are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, LoginState) {
	a, err := s.accounts.GetByUsername(ctx, username)
	if err != nil || a == nil {
		return nil, LoginInvalid
	}
	if !auth.VerifyPassword(a.PasswordHash, password) {
		return nil, LoginInvalid
	}
	if !a.IsActive {
		return a, LoginInactive
	}
	return a, LoginSuccess
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *Service) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	return s.accounts.GetByUsername(ctx, username)
}

// SyncNames copies display name and email onto the account. Called after a
// profile save so the account always reflects the latest profile info.
func (s *Service) SyncNames(ctx context.Context, accountID uuid.UUID, firstName, lastName, email string) error {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	a.FirstName = firstName
	a.LastName = lastName
	a.Email = email
	return s.accounts.Update(ctx, a)
}

func (s *Service) ListAccounts(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	return s.accounts.List(ctx, limit, offset)
}
