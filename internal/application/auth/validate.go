package auth

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/securitysvcs/auth-service/internal/domain"
)

var validate = validator.New()

// specialChars is the accepted special-character set for passwords.
const specialChars = "@$!%*?&"

// ValidateRegistration applies the registration rules sequentially and
// returns the first violation. No side effects.
func ValidateRegistration(username, password, confirm string) error {
	if validate.Var(username, "required") != nil {
		return domain.ErrValidationFailed("username_required", "username cannot be empty")
	}
	if validate.Var(password, "required") != nil {
		return domain.ErrValidationFailed("password_required", "password cannot be empty")
	}
	if validate.Var(confirm, "required") != nil {
		return domain.ErrValidationFailed("confirm_required", "confirm password cannot be empty")
	}
	if validate.Var(username, "alphanum,min=4,max=20") != nil {
		return domain.ErrValidationFailed("username_format", "username must be alphanumeric and 4-20 characters long")
	}
	if validate.Var(password, "min=8") != nil {
		return domain.ErrValidationFailed("password_length", "password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasLower {
		return domain.ErrValidationFailed("password_lowercase", "password must contain a lowercase letter")
	}
	if !hasUpper {
		return domain.ErrValidationFailed("password_uppercase", "password must contain an uppercase letter")
	}
	if !hasDigit {
		return domain.ErrValidationFailed("password_digit", "password must contain a digit")
	}
	if !strings.ContainsAny(password, specialChars) {
		return domain.ErrValidationFailed("password_special", "password must contain one of "+specialChars)
	}
	if password != confirm {
		return domain.ErrValidationFailed("password_mismatch", "passwords do not match")
	}
	return nil
}
