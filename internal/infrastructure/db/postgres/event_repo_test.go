package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securitysvcs/auth-service/internal/domain"
)

func setupEventMockDB(t *testing.T) (sqlmock.Sqlmock, *EventRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, NewEventRepo(db)
}

func TestEventRepo_Record_Success(t *testing.T) {
	mock, repo := setupEventMockDB(t)

	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO auth_events`).
		WithArgs("evt-1", "client1", "failed_login", "invalid password (attempt 1 of 3)", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Record(context.Background(), domain.AuthEvent{
		ID:          "evt-1",
		Username:    "client1",
		Outcome:     domain.OutcomeLoginFailure,
		Description: "invalid password (attempt 1 of 3)",
		Timestamp:   ts,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Record_DatabaseError(t *testing.T) {
	mock, repo := setupEventMockDB(t)

	mock.ExpectExec(`INSERT INTO auth_events`).
		WillReturnError(errors.New("connection refused"))

	err := repo.Record(context.Background(), domain.AuthEvent{ID: "evt-1", Username: "client1"})

	require.Error(t, err)
	assert.True(t, domain.Is(err, "storage_unavailable"))
}

func TestEventRepo_List_OrderedByTime(t *testing.T) {
	mock, repo := setupEventMockDB(t)

	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	mock.ExpectQuery(`SELECT id, username, outcome, description, occurred_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "outcome", "description", "occurred_at"}).
			AddRow("evt-1", "client1", "failed_login", "invalid password (attempt 1 of 3)", t1).
			AddRow("evt-2", "client1", "successful_login", "login ok", t2))

	events, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.OutcomeLoginFailure, events[0].Outcome)
	assert.Equal(t, domain.OutcomeLoginSuccess, events[1].Outcome)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))
}
