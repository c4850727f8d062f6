package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOutboxRepo(t *testing.T, now time.Time) (*gorm.DB, *outboxRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&OutboxEvent{}))

	return db, &outboxRepository{db: db, now: func() time.Time { return now }}
}

func TestNewDecidedEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")

	evt, err := NewDecidedEvent(ctx, events.LeaveRequestDecidedEvent{
		RequestID:       "vac-1",
		Kind:            events.KindVacation,
		EmployeeID:      "emp-1",
		Status:          "APPROVED",
		LedgerDeltaDays: 5,
	})

	require.NoError(t, err)
	assert.NoError(t, ValidateOutboxEvent(evt))
	assert.Equal(t, "rid-1", evt.RequestID)
	assert.Equal(t, "emp-1", evt.AggregateID)
	assert.Equal(t, events.LeaveRequestDecidedTopic, evt.Topic)
	assert.Equal(t, OutboxStatusPending, evt.Status)

	var payload events.LeaveRequestDecidedEvent
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, events.EventTypeLeaveRequestDecided, payload.EventType)
	assert.Equal(t, 5, payload.LedgerDeltaDays)
	assert.False(t, payload.OccurredAt.IsZero())
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	db, repo := setupOutboxRepo(t, now)

	evt, err := NewDecidedEvent(ctx, events.LeaveRequestDecidedEvent{
		RequestID:  "vac-1",
		Kind:       events.KindVacation,
		EmployeeID: "emp-1",
		Status:     "REJECTED",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, evt))

	pending, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, repo.MarkFailed(ctx, evt.ID, "broker unavailable"))

	var stored OutboxEvent
	require.NoError(t, db.First(&stored, "id = ?", evt.ID).Error)
	assert.Equal(t, OutboxStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	require.NotNil(t, stored.NextRetryAt)
	assert.True(t, stored.NextRetryAt.Equal(now.Add(retryStep)))

	pending, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "not due before backoff elapses")

	repo.now = func() time.Time { return now.Add(time.Minute) }
	pending, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, repo.MarkSent(ctx, evt.ID))
	pending, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	_, repo := setupOutboxRepo(t, time.Now().UTC())

	err := repo.Create(context.Background(), OutboxEvent{ID: "x", Topic: "t", Status: OutboxStatusPending})

	assert.EqualError(t, err, "outbox payload is required")
}
