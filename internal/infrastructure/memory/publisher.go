package memory

import (
	"context"
	"log"

	"github.com/securitysvcs/auth-service/internal/application/auth"
)

// NoopPublisher stands in for the broker when RabbitMQ is unavailable (dev).
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishAccountLocked(ctx context.Context, evt auth.AccountLockedEvent) error {
	log.Printf("[noop-pub] account locked: username=%s attempts=%d", evt.Username, evt.Attempts)
	return nil
}

func (p *NoopPublisher) PublishAccountRegistered(ctx context.Context, evt auth.AccountRegisteredEvent) error {
	log.Printf("[noop-pub] account registered: username=%s role=%s", evt.Username, evt.Role)
	return nil
}
