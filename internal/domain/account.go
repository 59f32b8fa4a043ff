package domain

import "time"

// Account is the stored credential record for one user of the system.
// FailedAttempts and Locked move together: once Locked is true the counter
// stays at or above LockoutThreshold until an administrative Unlock resets both.
type Account struct {
	Username       string
	PasswordHash   string
	Role           Role
	Locked         bool
	FailedAttempts int
	CreatedAt      time.Time
}

// LockoutThreshold is the number of consecutive failed logins that locks an
// account. The third failure triggers the lock.
const LockoutThreshold = 3

// Sanitized returns a copy safe to hand to callers outside the core:
// the password hash never leaves the service boundary.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}
