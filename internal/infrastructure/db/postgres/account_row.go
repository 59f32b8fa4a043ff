package postgres

import "time"

type accountRow struct {
	Username       string
	PasswordHash   string
	RoleLevel      int
	Locked         bool
	FailedAttempts int
	CreatedAt      time.Time
}
