package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// AccountRepo is the in-memory credential store used in tests and when the
// service runs without a database. All mutations happen under one mutex, so
// IncrementFailedAttempts is atomic by construction.
type AccountRepo struct {
	mu         sync.RWMutex
	byUsername map[string]domain.Account
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{byUsername: make(map[string]domain.Account)}
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[a.Username]; exists {
		return domain.Account{}, domain.ErrDuplicateUsername()
	}
	a.Locked = false
	a.FailedAttempts = 0
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.byUsername[a.Username] = a
	return a, nil
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byUsername[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.byUsername))
	for _, a := range r.byUsername {
		a.PasswordHash = ""
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *AccountRepo) IncrementFailedAttempts(ctx context.Context, username string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byUsername[username]
	if !ok {
		return 0, nil
	}
	a.FailedAttempts++
	r.byUsername[username] = a
	return a.FailedAttempts, nil
}

func (r *AccountRepo) ResetFailedAttempts(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byUsername[username]
	if !ok {
		return nil
	}
	a.FailedAttempts = 0
	r.byUsername[username] = a
	return nil
}

func (r *AccountRepo) Lock(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byUsername[username]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Locked = true
	r.byUsername[username] = a
	return nil
}

func (r *AccountRepo) Unlock(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byUsername[username]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Locked = false
	a.FailedAttempts = 0
	r.byUsername[username] = a
	return nil
}

func (r *AccountRepo) Remove(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[username]; !ok {
		return domain.ErrAccountNotFound()
	}
	delete(r.byUsername, username)
	return nil
}
