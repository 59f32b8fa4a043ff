package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/securitysvcs/auth-service/internal/domain"
)

type Service struct {
	accounts AccountRepo
	hasher   PasswordHasher
	events   EventRecorder
	pub      EventPublisher

	audit func(action string, fields map[string]string)
	now   func() time.Time

	// Per-account serialization for the verify/increment/lock sequence.
	// The map is bounded by the number of distinct usernames seen.
	mu           sync.Mutex
	accountLocks map[string]*sync.Mutex
}

func NewService(accounts AccountRepo, hasher PasswordHasher, events EventRecorder, pub EventPublisher) *Service {
	return &Service{
		accounts:     accounts,
		hasher:       hasher,
		events:       events,
		pub:          pub,
		audit:        func(string, map[string]string) {},
		now:          time.Now,
		accountLocks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// WithClock overrides the timestamp source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// lockAccount acquires the per-username mutex and returns its release func.
// Two concurrent logins against the same account run one at a time; unrelated
// accounts proceed in parallel.
func (s *Service) lockAccount(username string) func() {
	s.mu.Lock()
	m, ok := s.accountLocks[username]
	if !ok {
		m = &sync.Mutex{}
		s.accountLocks[username] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// record appends one AuthEvent. Best-effort: a persistence failure is surfaced
// to the audit log but never to the caller.
func (s *Service) record(ctx context.Context, username string, outcome domain.EventOutcome, desc string) {
	e := domain.AuthEvent{
		ID:          uuid.NewString(),
		Username:    username,
		Outcome:     outcome,
		Description: desc,
		Timestamp:   s.now(),
	}
	if err := s.events.Record(ctx, e); err != nil {
		s.audit("auth_event_append_failed", map[string]string{
			"username": username,
			"outcome":  string(outcome),
			"error":    err.Error(),
		})
	}
}
