package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// AccountRepo persists credential records. The role is stored as its numeric
// level so the table stays compatible with the legacy schema.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// ---------- helpers ----------

func (r *AccountRepo) scanAccountRow(row *sql.Row) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.Username,
		&ar.PasswordHash,
		&ar.RoleLevel,
		&ar.Locked,
		&ar.FailedAttempts,
		&ar.CreatedAt,
	)
	return ar, err
}

func toDomainAccount(ar accountRow) domain.Account {
	return domain.Account{
		Username:       ar.Username,
		PasswordHash:   ar.PasswordHash,
		Role:           domain.RoleFromLevel(ar.RoleLevel),
		Locked:         ar.Locked,
		FailedAttempts: ar.FailedAttempts,
		CreatedAt:      ar.CreatedAt,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------- auth.AccountRepo ----------

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	if a.Username == "" {
		return domain.Account{}, domain.ErrMissingField("username")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}
	if a.Role == "" {
		a.Role = domain.RoleClient
	}

	const q = `
INSERT INTO accounts (username, password_hash, role_level, locked, failed_attempts)
VALUES ($1,$2,$3,FALSE,0)
RETURNING username, password_hash, role_level, locked, failed_attempts, created_at;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, a.Username, a.PasswordHash, a.Role.Level()))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.Account{}, domain.ErrDuplicateUsername()
		}
		return domain.Account{}, domain.ErrStorageUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	if username == "" {
		return domain.Account{}, domain.ErrMissingField("username")
	}

	const q = `
SELECT username, password_hash, role_level, locked, failed_attempts, created_at
FROM accounts
WHERE username = $1
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, username))
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrStorageUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	const q = `
SELECT username, role_level, locked, failed_attempts, created_at
FROM accounts
ORDER BY username;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var ar accountRow
		if err := rows.Scan(&ar.Username, &ar.RoleLevel, &ar.Locked, &ar.FailedAttempts, &ar.CreatedAt); err != nil {
			return nil, domain.ErrStorageUnavailable(err)
		}
		out = append(out, toDomainAccount(ar))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	return out, nil
}

// IncrementFailedAttempts bumps the counter in a single statement so
// concurrent failures never read a stale value. Unknown usernames are a
// no-op reported as zero.
func (r *AccountRepo) IncrementFailedAttempts(ctx context.Context, username string) (int, error) {
	const q = `
UPDATE accounts
SET failed_attempts = failed_attempts + 1
WHERE username = $1
RETURNING failed_attempts;
`
	var n int
	err := r.db.QueryRowContext(ctx, q, username).Scan(&n)
	if err != nil {
		if isNoRows(err) {
			return 0, nil
		}
		return 0, domain.ErrStorageUnavailable(err)
	}
	return n, nil
}

func (r *AccountRepo) ResetFailedAttempts(ctx context.Context, username string) error {
	const q = `
UPDATE accounts
SET failed_attempts = 0
WHERE username = $1;
`
	if _, err := r.db.ExecContext(ctx, q, username); err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	return nil
}

func (r *AccountRepo) Lock(ctx context.Context, username string) error {
	const q = `
UPDATE accounts
SET locked = TRUE
WHERE username = $1;
`
	res, err := r.db.ExecContext(ctx, q, username)
	if err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}

func (r *AccountRepo) Unlock(ctx context.Context, username string) error {
	const q = `
UPDATE accounts
SET locked = FALSE,
    failed_attempts = 0
WHERE username = $1;
`
	res, err := r.db.ExecContext(ctx, q, username)
	if err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}

func (r *AccountRepo) Remove(ctx context.Context, username string) error {
	const q = `DELETE FROM accounts WHERE username = $1;`

	res, err := r.db.ExecContext(ctx, q, username)
	if err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}
