package dto

import (
	"strings"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// -------- Core auth --------

// RegisterRequest carries the raw registration input. Rule-level validation
// (username format, password strength, confirmation) lives in the application
// layer so the CLI and HTTP surfaces share one rulebook.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return domain.ErrMissingField("username")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

// -------- Admin --------

// CreateAccountRequest is the admin-assigned variant: the role is chosen by
// the caller instead of defaulting to client.
type CreateAccountRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

func (r *CreateAccountRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Role = strings.TrimSpace(r.Role)
	if r.Role == "" {
		return domain.ErrMissingField("role")
	}
	if !domain.IsValidRole(r.Role) {
		return domain.ErrValidationFailed("role", "unknown role")
	}
	return nil
}
