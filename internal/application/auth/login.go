package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// Login verifies a credential pair and drives the lockout state machine.
// IMPORTANT: must not leak whether the username exists (avoid enumeration);
// unknown user and wrong password both come back as invalid_credentials.
// Every attempt, whatever its outcome, appends exactly one AuthEvent.
func (s *Service) Login(ctx context.Context, username, password string) (domain.Account, error) {
	username = strings.TrimSpace(username)

	unlock := s.lockAccount(username)
	defer unlock()

	a, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if domain.Is(err, "account_not_found") {
			// Hide not-found behind invalid credentials.
			s.record(ctx, username, domain.OutcomeLoginFailure, "login attempt for unknown username")
			s.audit("login_failed", map[string]string{"username": username, "reason": "unknown_username"})
			return domain.Account{}, domain.ErrInvalidCredentials()
		}
		// Storage trouble is NOT "no such user"; surface it distinctly.
		return domain.Account{}, storageErr(err)
	}

	if a.Locked {
		// No hash comparison and no counter mutation on a locked account.
		// The attempt still lands in the trail.
		s.record(ctx, username, domain.OutcomeLoginFailure, "login attempt on locked account")
		s.audit("login_failed", map[string]string{"username": username, "reason": "account_locked"})
		return domain.Account{}, domain.ErrAccountLocked()
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return domain.Account{}, s.handleFailedPassword(ctx, username)
	}

	if err := s.accounts.ResetFailedAttempts(ctx, username); err != nil {
		return domain.Account{}, storageErr(err)
	}

	s.record(ctx, username, domain.OutcomeLoginSuccess, "user logged in successfully")
	s.audit("login_success", map[string]string{"username": username, "role": string(a.Role)})

	return a.Sanitized(), nil
}

// handleFailedPassword increments the failure counter and locks the account
// when the count reaches the threshold. Runs under the per-account mutex.
func (s *Service) handleFailedPassword(ctx context.Context, username string) error {
	n, err := s.accounts.IncrementFailedAttempts(ctx, username)
	if err != nil {
		return storageErr(err)
	}

	if n >= domain.LockoutThreshold {
		if err := s.accounts.Lock(ctx, username); err != nil {
			return storageErr(err)
		}
		s.record(ctx, username, domain.OutcomeLoginFailure, "invalid password, account locked")
		s.audit("account_locked", map[string]string{
			"username": username,
			"attempts": fmt.Sprintf("%d", n),
		})
		if s.pub != nil {
			if err := s.pub.PublishAccountLocked(ctx, AccountLockedEvent{Username: username, Attempts: n}); err != nil {
				s.audit("publish_failed", map[string]string{"event": "account_locked", "error": err.Error()})
			}
		}
		return domain.ErrAccountLocked()
	}

	s.record(ctx, username, domain.OutcomeLoginFailure,
		fmt.Sprintf("invalid password (attempt %d of %d)", n, domain.LockoutThreshold))
	s.audit("login_failed", map[string]string{
		"username": username,
		"reason":   "invalid_password",
		"attempt":  fmt.Sprintf("%d", n),
	})
	return domain.ErrInvalidCredentialsAttempt(n, domain.LockoutThreshold)
}

// storageErr keeps domain errors intact and wraps anything else as a
// storage outage.
func storageErr(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.ErrStorageUnavailable(err)
}
