package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/securitysvcs/auth-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeAccountRepo struct {
	mu sync.Mutex

	byUsername map[string]domain.Account

	// injected errors (if set, method returns error)
	getErr       error
	createErr    error
	listErr      error
	incrementErr error
	resetErr     error
	lockErr      error
	unlockErr    error
	removeErr    error

	// record calls
	lockCalls   int
	unlockCalls int
	removed     []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byUsername: map[string]domain.Account{}}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	if _, exists := f.byUsername[a.Username]; exists {
		return domain.Account{}, domain.ErrDuplicateUsername()
	}
	f.byUsername[a.Username] = a
	return a, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Account{}, f.getErr
	}
	a, ok := f.byUsername[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Account, 0, len(f.byUsername))
	for _, a := range f.byUsername {
		a.PasswordHash = ""
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAccountRepo) IncrementFailedAttempts(ctx context.Context, username string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.incrementErr != nil {
		return 0, f.incrementErr
	}
	a, ok := f.byUsername[username]
	if !ok {
		return 0, nil
	}
	a.FailedAttempts++
	f.byUsername[username] = a
	return a.FailedAttempts, nil
}

func (f *fakeAccountRepo) ResetFailedAttempts(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resetErr != nil {
		return f.resetErr
	}
	a, ok := f.byUsername[username]
	if !ok {
		return nil
	}
	a.FailedAttempts = 0
	f.byUsername[username] = a
	return nil
}

func (f *fakeAccountRepo) Lock(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lockErr != nil {
		return f.lockErr
	}
	f.lockCalls++
	a, ok := f.byUsername[username]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Locked = true
	f.byUsername[username] = a
	return nil
}

func (f *fakeAccountRepo) Unlock(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unlockErr != nil {
		return f.unlockErr
	}
	f.unlockCalls++
	a, ok := f.byUsername[username]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	a.Locked = false
	a.FailedAttempts = 0
	f.byUsername[username] = a
	return nil
}

func (f *fakeAccountRepo) Remove(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.byUsername[username]; !ok {
		return domain.ErrAccountNotFound()
	}
	delete(f.byUsername, username)
	f.removed = append(f.removed, username)
	return nil
}

func (f *fakeAccountRepo) get(username string) domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byUsername[username]
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return domain.ErrInvalidCredentials()
}

type fakeRecorder struct {
	mu sync.Mutex

	events    []domain.AuthEvent
	recordErr error
	listErr   error
}

func (r *fakeRecorder) Record(ctx context.Context, e domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recordErr != nil {
		return r.recordErr
	}
	r.events = append(r.events, e)
	return nil
}

func (r *fakeRecorder) List(ctx context.Context) ([]domain.AuthEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *fakeRecorder) countOutcome(o domain.EventOutcome) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

type fakePublisher struct {
	mu sync.Mutex

	locked     []AccountLockedEvent
	registered []AccountRegisteredEvent
	publishErr error
}

func (p *fakePublisher) PublishAccountLocked(ctx context.Context, evt AccountLockedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.locked = append(p.locked, evt)
	return nil
}

func (p *fakePublisher) PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.registered = append(p.registered, evt)
	return nil
}

/*
Harness
*/

func newSvcForTest(t *testing.T) (*Service, *fakeAccountRepo, *fakeHasher, *fakeRecorder, *fakePublisher) {
	t.Helper()

	repo := newFakeAccountRepo()
	hasher := &fakeHasher{}
	rec := &fakeRecorder{}
	pub := &fakePublisher{}

	svc := NewService(repo, hasher, rec, pub)
	return svc, repo, hasher, rec, pub
}

// seedAccount stores an account whose password verifies via the fake hasher.
func seedAccount(repo *fakeAccountRepo, username, password string, role domain.Role) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.byUsername[username] = domain.Account{
		Username:     username,
		PasswordHash: "hash:" + password,
		Role:         role,
	}
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
