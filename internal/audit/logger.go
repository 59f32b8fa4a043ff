package audit

import (
	"github.com/rs/zerolog"
)

// Logger provides structured audit logging for auth business events
type Logger struct {
	log zerolog.Logger
}

// New creates a new audit logger
func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Sink adapts the logger to the auth service's audit callback.
func (l *Logger) Sink() func(action string, fields map[string]string) {
	return func(action string, fields map[string]string) {
		evt := l.log.Info()
		if warnActions[action] {
			evt = l.log.Warn()
		}
		evt = evt.Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg(actionMessage(action))
	}
}

var warnActions = map[string]bool{
	"account_locked":           true,
	"auth_event_append_failed": true,
}

func actionMessage(action string) string {
	switch action {
	case "account_locked":
		return "Account locked after repeated failures"
	case "account_unlocked":
		return "Account unlocked by administrator"
	case "account_registered":
		return "Account registered"
	case "account_removed":
		return "Account removed"
	case "auth_event_append_failed":
		return "Auth event could not be persisted"
	default:
		return "Audit event"
	}
}
