package memory

import (
	"context"
	"sync"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// EventRecorder keeps the authentication trail in memory, append-only.
type EventRecorder struct {
	mu     sync.RWMutex
	events []domain.AuthEvent
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Record(ctx context.Context, e domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *EventRecorder) List(ctx context.Context) ([]domain.AuthEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}
