package auth

import (
	"context"
	"strings"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// GetAccount returns the hash-free projection of one account.
func (s *Service) GetAccount(ctx context.Context, username string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Account{}, domain.ErrMissingField("username")
	}

	a, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}
	return a.Sanitized(), nil
}

// ListAccounts returns all accounts without password hashes.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i] = accounts[i].Sanitized()
	}
	return accounts, nil
}

// UnlockAccount is the administrative unlock: clears the lock flag and resets
// the failure counter, returning the account to Active.
func (s *Service) UnlockAccount(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.ErrMissingField("username")
	}

	unlock := s.lockAccount(username)
	defer unlock()

	if err := s.accounts.Unlock(ctx, username); err != nil {
		return err
	}
	s.audit("account_unlocked", map[string]string{"username": username})
	return nil
}

// RemoveAccount is administrative deletion; never part of the login flow.
// Audit events for the username are kept (weak reference by design).
func (s *Service) RemoveAccount(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.ErrMissingField("username")
	}

	if err := s.accounts.Remove(ctx, username); err != nil {
		return err
	}
	s.audit("account_removed", map[string]string{"username": username})
	return nil
}

// ListEvents exposes the authentication trail to administrative callers.
func (s *Service) ListEvents(ctx context.Context) ([]domain.AuthEvent, error) {
	return s.events.List(ctx)
}
