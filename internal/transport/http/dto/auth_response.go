package dto

import (
	"time"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// AccountView is the wire projection of an account. There is deliberately no
// field for the password hash.
type AccountView struct {
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	Level          int       `json:"level"`
	Locked         bool      `json:"locked"`
	FailedAttempts int       `json:"failed_attempts"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAccountView(a domain.Account) AccountView {
	return AccountView{
		Username:       a.Username,
		Role:           string(a.Role),
		Level:          a.Role.Level(),
		Locked:         a.Locked,
		FailedAttempts: a.FailedAttempts,
		CreatedAt:      a.CreatedAt,
	}
}

func NewAccountViews(accounts []domain.Account) []AccountView {
	out := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewAccountView(a))
	}
	return out
}

type EventView struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Outcome     string    `json:"outcome"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewEventViews(events []domain.AuthEvent) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			ID:          e.ID,
			Username:    e.Username,
			Outcome:     string(e.Outcome),
			Description: e.Description,
			Timestamp:   e.Timestamp,
		})
	}
	return out
}
