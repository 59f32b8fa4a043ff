package auth

import (
	"context"
	"strings"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// Register creates a new account with the least-privileged role.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (domain.Account, error) {
	return s.register(ctx, username, password, confirm, domain.RoleClient)
}

// RegisterWithRole is the admin-assigned variant for elevated roles.
func (s *Service) RegisterWithRole(ctx context.Context, username, password, confirm string, role domain.Role) (domain.Account, error) {
	if !domain.IsValidRole(string(role)) {
		return domain.Account{}, domain.ErrValidationFailed("role", "unknown role")
	}
	return s.register(ctx, username, password, confirm, role)
}

func (s *Service) register(ctx context.Context, username, password, confirm string, role domain.Role) (domain.Account, error) {
	username = strings.TrimSpace(username)

	if err := ValidateRegistration(username, password, confirm); err != nil {
		return domain.Account{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Account{}, err
	}

	created, err := s.accounts.Create(ctx, domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return domain.Account{}, err
	}

	s.audit("account_registered", map[string]string{
		"username": created.Username,
		"role":     string(created.Role),
	})
	if s.pub != nil {
		if err := s.pub.PublishAccountRegistered(ctx, AccountRegisteredEvent{
			Username: created.Username,
			Role:     string(created.Role),
		}); err != nil {
			s.audit("publish_failed", map[string]string{"event": "account_registered", "error": err.Error()})
		}
	}

	return created.Sanitized(), nil
}
