package auth

import (
	"context"

	"github.com/securitysvcs/auth-service/internal/domain"
)

/*
AccountRepo
-----------
Persistence port for credential records.
Only describes WHAT the auth service needs, not HOW it's stored.
*/
type AccountRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	// List returns a hash-free projection: PasswordHash is empty on every row.
	List(ctx context.Context) ([]domain.Account, error)

	// IncrementFailedAttempts atomically bumps the counter and returns the new
	// value. Unknown usernames are a no-op returning 0.
	IncrementFailedAttempts(ctx context.Context, username string) (int, error)
	ResetFailedAttempts(ctx context.Context, username string) error
	Lock(ctx context.Context, username string) error
	// Unlock is the administrative action: clears the flag AND resets the counter.
	Unlock(ctx context.Context, username string) error
	Remove(ctx context.Context, username string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. Compare returns nil on match; any error,
malformed hashes included, is treated as a mismatch.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

/*
EventRecorder
-------------
Append-only authentication trail. Record failures must never change the
outcome of the login they describe; the service logs and moves on.
*/
type EventRecorder interface {
	Record(ctx context.Context, e domain.AuthEvent) error
	List(ctx context.Context) ([]domain.AuthEvent, error)
}

/*
EventPublisher
--------------
Publishes security events to the message broker so downstream consumers
(notifier, SIEM forwarder) can react. Best-effort from the service's view.
*/
type EventPublisher interface {
	PublishAccountLocked(ctx context.Context, evt AccountLockedEvent) error
	PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error
}

type AccountLockedEvent struct {
	Username string `json:"username"`
	Attempts int    `json:"attempts"`
}

type AccountRegisteredEvent struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
