package postgres

import (
	"context"
	"database/sql"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// EventRepo writes the authentication trail. Rows are insert-only; there is
// deliberately no update or delete path.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Record(ctx context.Context, e domain.AuthEvent) error {
	const q = `
INSERT INTO auth_events (id, username, outcome, description, occurred_at)
VALUES ($1,$2,$3,$4,$5);
`
	if _, err := r.db.ExecContext(ctx, q, e.ID, e.Username, string(e.Outcome), e.Description, e.Timestamp); err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	return nil
}

func (r *EventRepo) List(ctx context.Context) ([]domain.AuthEvent, error) {
	const q = `
SELECT id, username, outcome, description, occurred_at
FROM auth_events
ORDER BY occurred_at, id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	defer rows.Close()

	var out []domain.AuthEvent
	for rows.Next() {
		var e domain.AuthEvent
		var outcome string
		if err := rows.Scan(&e.ID, &e.Username, &outcome, &e.Description, &e.Timestamp); err != nil {
			return nil, domain.ErrStorageUnavailable(err)
		}
		e.Outcome = domain.EventOutcome(outcome)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	return out, nil
}
