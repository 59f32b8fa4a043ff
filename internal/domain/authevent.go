package domain

import "time"

// EventOutcome tags an authentication event.
type EventOutcome string

const (
	OutcomeLoginSuccess EventOutcome = "successful_login"
	OutcomeLoginFailure EventOutcome = "failed_login"
)

// AuthEvent is one append-only record of the authentication trail.
// Events reference accounts by username only; they survive account removal.
type AuthEvent struct {
	ID          string
	Username    string
	Outcome     EventOutcome
	Description string
	Timestamp   time.Time
}
